// Package assistant runs the interactive developer assistant: the operator
// names a task, the model drives a fixed set of local operations, and the
// operator answers whenever the model replies with text.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ehudso7/StatTact/internal/history"
	"github.com/ehudso7/StatTact/internal/llm"
	"github.com/ehudso7/StatTact/internal/logger"
	"github.com/ehudso7/StatTact/internal/ui"
	"github.com/ehudso7/StatTact/pkg/tools"

	"github.com/mitchellh/go-homedir"
	"github.com/qmuntal/stateless"
	"github.com/sashabaranov/go-openai"
)

// FSM States
const (
	StateAwaitingModel       = "AwaitingModel"
	StateExecutingOperations = "ExecutingOperations"
	StateAwaitingOperator    = "AwaitingOperator"
	StateDone                = "Done"   // Terminal: operator ended the session
	StateFailed              = "Failed" // Terminal: model call or input failed
)

// FSM Triggers
const (
	TriggerModelRequestedOperations = "ModelRequestedOperations"
	TriggerModelReplied             = "ModelReplied"
	TriggerOperationsCompleted      = "OperationsCompleted"
	TriggerOperatorReplied          = "OperatorReplied"
	TriggerOperatorExited           = "OperatorExited"
	TriggerErrorOccurred            = "ErrorOccurred"
)

const systemPrompt = `You are an expert AI assistant for the StatTact project, a soccer tactics platform.
The project consists of a Next.js frontend and a FastAPI backend.
Help solve deployment issues, implement features, and provide clear guidance.
Focus on solving one task at a time completely before moving to the next.
Always check your work before making changes to the codebase.`

const operatorPrompt = "\nYour response (or type 'exit' to quit): "

// Options configures an Agent.
type Options struct {
	Model    string
	Recorder history.Recorder
	In       ui.LineReader
	Out      io.Writer
	Palette  ui.Palette
}

// Agent is one interactive assistant session.
type Agent struct {
	llmClient llm.Client
	tools     *tools.ToolManager
	model     string
	conv      *history.Conversation
	in        ui.LineReader
	out       io.Writer
	palette   ui.Palette

	reply   openai.ChatCompletionMessage
	lastErr error
}

// New creates a new assistant session.
func New(llmClient llm.Client, toolManager *tools.ToolManager, opts Options) *Agent {
	return &Agent{
		llmClient: llmClient,
		tools:     toolManager,
		model:     opts.Model,
		conv:      history.NewConversation(opts.Recorder),
		in:        opts.In,
		out:       opts.Out,
		palette:   opts.Palette,
	}
}

// Conversation exposes the session log.
func (a *Agent) Conversation() *history.Conversation { return a.conv }

// Run asks for the project and the task, then converses until the operator
// exits. An invalid menu choice ends the session without error.
func (a *Agent) Run(ctx context.Context) error {
	a.printf("%s\n", a.palette.Header("🚀 StatTact AI Assistant"))
	a.printf("This assistant will help you solve your StatTact project tasks.\n\n")

	projectPath, err := a.in.ReadLine("Enter the path to your StatTact project (e.g., ~/StatTact): ")
	if err != nil {
		return a.inputErr(err)
	}
	if expanded, err := homedir.Expand(strings.TrimSpace(projectPath)); err == nil {
		projectPath = expanded
	}

	a.printf("\nWhat would you like help with today?\n")
	for _, m := range Menu() {
		a.printf("%s. %s\n", m.Key, m.Label)
	}
	choice, err := a.in.ReadLine("\nEnter your choice (1-5): ")
	if err != nil {
		return a.inputErr(err)
	}
	item, err := TaskForChoice(strings.TrimSpace(choice))
	if err != nil {
		a.printf("%s\n", a.palette.Error("Invalid choice. Exiting."))
		return nil
	}
	task := item.Task
	if task == "" {
		if task, err = a.in.ReadLine("Describe your custom task: "); err != nil {
			return a.inputErr(err)
		}
	}

	logger.L.Debug("assistant session started", "session", a.conv.SessionID(), "project", projectPath, "choice", item.Key)
	return a.Converse(ctx, task, projectPath)
}

// Converse seeds the conversation with the system prompt and the task and
// runs the model/operation/operator loop to completion.
func (a *Agent) Converse(ctx context.Context, task, projectPath string) error {
	if projectPath != "" {
		task += "\n\nThe project is located at: " + projectPath
	}
	if err := a.conv.Append(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt}); err != nil {
		return err
	}
	if err := a.conv.Append(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: task}); err != nil {
		return err
	}

	fsm := stateless.NewStateMachine(StateAwaitingModel)
	fsm.Configure(StateAwaitingModel).
		Permit(TriggerModelRequestedOperations, StateExecutingOperations).
		Permit(TriggerModelReplied, StateAwaitingOperator).
		Permit(TriggerErrorOccurred, StateFailed)
	fsm.Configure(StateExecutingOperations).
		Permit(TriggerOperationsCompleted, StateAwaitingModel).
		Permit(TriggerErrorOccurred, StateFailed)
	fsm.Configure(StateAwaitingOperator).
		Permit(TriggerOperatorReplied, StateAwaitingModel).
		Permit(TriggerOperatorExited, StateDone).
		Permit(TriggerErrorOccurred, StateFailed)

	for {
		state, err := fsm.State(ctx)
		if err != nil {
			return fmt.Errorf("FSM internal error: %w", err)
		}

		var trigger string
		switch state {
		case StateAwaitingModel:
			trigger = a.callModel(ctx)
		case StateExecutingOperations:
			trigger = a.executeOperations(ctx)
		case StateAwaitingOperator:
			trigger = a.awaitOperator()
		case StateDone:
			logger.L.Debug("assistant session finished", "session", a.conv.SessionID(), "messages", a.conv.Len())
			return nil
		case StateFailed:
			if a.lastErr == nil {
				return errors.New("assistant ended in failed state without a specific error")
			}
			return a.lastErr
		default:
			return fmt.Errorf("FSM ended in an unexpected state: %v", state)
		}

		logger.L.Debug("FSM transition", "from", state, "trigger", trigger)
		if err := fsm.FireCtx(ctx, trigger); err != nil {
			return fmt.Errorf("FSM fire %s from %v: %w", trigger, state, err)
		}
	}
}

func (a *Agent) callModel(ctx context.Context) string {
	a.printf("\n%s\n", a.palette.Info("⏳ Thinking..."))

	resp, err := a.llmClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:      a.model,
		Messages:   a.conv.Messages(),
		Tools:      a.tools.OpenAITools(),
		ToolChoice: "auto",
	})
	if err != nil {
		logger.L.Error("LLM call failed", "error", err)
		return a.fail(fmt.Errorf("chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return a.fail(errors.New("chat completion returned no choices"))
	}

	a.reply = resp.Choices[0].Message
	if a.reply.Role == "" {
		a.reply.Role = openai.ChatMessageRoleAssistant
	}
	if err := a.conv.Append(a.reply); err != nil {
		return a.fail(err)
	}

	if len(a.reply.ToolCalls) > 0 {
		return TriggerModelRequestedOperations
	}
	return TriggerModelReplied
}

func (a *Agent) executeOperations(ctx context.Context) string {
	if a.reply.Content != "" {
		a.printf("%s\n", a.palette.Info(a.reply.Content))
	}

	for _, tc := range a.reply.ToolCalls {
		name := tc.Function.Name
		a.printf("\n%s\n", a.palette.Info("🔍 Executing: "+name))

		call, result := a.tools.Dispatch(ctx, name, tc.Function.Arguments)
		logger.L.Debug("operation executed", "tool", name, "arguments", tc.Function.Arguments, "result_bytes", len(result))

		if err := a.conv.AppendToolResult(tc.ID, name, result); err != nil {
			return a.fail(err)
		}

		if call == nil {
			a.printf("%s\n", a.palette.Error("❌ "+result))
			continue
		}
		a.printf("%s\n", a.palette.OK("✅ Executed "+name))
		if note := summary(call); note != "" {
			a.printf("%s\n", note)
		}
	}
	return TriggerOperationsCompleted
}

func (a *Agent) awaitOperator() string {
	a.printf("\n%s\n%s\n", a.palette.Reply("🤖 Assistant:"), a.reply.Content)

	line, err := a.in.ReadLine(operatorPrompt)
	if errors.Is(err, io.EOF) {
		return TriggerOperatorExited
	}
	if err != nil {
		return a.fail(fmt.Errorf("read operator input: %w", err))
	}
	if strings.EqualFold(strings.TrimSpace(line), "exit") {
		return TriggerOperatorExited
	}

	if err := a.conv.Append(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: line}); err != nil {
		return a.fail(err)
	}
	return TriggerOperatorReplied
}

func (a *Agent) fail(err error) string {
	a.lastErr = err
	return TriggerErrorOccurred
}

func (a *Agent) inputErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("read operator input: %w", err)
}

func (a *Agent) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// summary is the one-line note printed after an operation.
func summary(call tools.Call) string {
	switch c := call.(type) {
	case tools.UpdateRenderYAML:
		return "Updated render.yaml file"
	case tools.GitCommitAndPush:
		return "Committed and pushed changes with message: " + c.Message
	case tools.AnalyzeProjectStructure, tools.CheckRenderYAML, tools.CheckRequirementsTxt:
		return "Analyzed project files"
	default:
		return ""
	}
}
