package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/ehudso7/StatTact/internal/logger"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

// ErrUnpairedResult is returned when the tool-call/tool-result pairing
// would be broken.
var ErrUnpairedResult = errors.New("unpaired tool result")

// Recorder receives a copy of every appended message.
type Recorder interface {
	Save(msg Message) error
}

// Conversation is the ordered, append-only message log of one session.
// Every tool call requested by an assistant message must be answered by
// exactly one tool message before the next assistant message.
type Conversation struct {
	sessionID string
	messages  []openai.ChatCompletionMessage
	pending   map[string]string // tool call id -> function name
	recorder  Recorder
}

// NewConversation starts an empty conversation. recorder may be nil.
func NewConversation(recorder Recorder) *Conversation {
	return &Conversation{
		sessionID: uuid.NewString(),
		pending:   make(map[string]string),
		recorder:  recorder,
	}
}

func (c *Conversation) SessionID() string { return c.sessionID }

func (c *Conversation) Len() int { return len(c.messages) }

// Messages returns a copy of the log.
func (c *Conversation) Messages() []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending returns the number of tool calls still waiting for a result.
func (c *Conversation) Pending() int { return len(c.pending) }

// Append adds msg to the end of the log.
func (c *Conversation) Append(msg openai.ChatCompletionMessage) error {
	switch msg.Role {
	case openai.ChatMessageRoleTool:
		name, ok := c.pending[msg.ToolCallID]
		if !ok {
			return fmt.Errorf("%w: no pending call %q", ErrUnpairedResult, msg.ToolCallID)
		}
		if msg.Name == "" {
			msg.Name = name
		}
		delete(c.pending, msg.ToolCallID)
	default:
		if len(c.pending) > 0 {
			return fmt.Errorf("%w: %d tool calls still unanswered", ErrUnpairedResult, len(c.pending))
		}
		for _, tc := range msg.ToolCalls {
			c.pending[tc.ID] = tc.Function.Name
		}
	}

	c.record(len(c.messages), msg)
	c.messages = append(c.messages, msg)
	return nil
}

// AppendToolResult answers the pending tool call id.
func (c *Conversation) AppendToolResult(callID, name, content string) error {
	return c.Append(openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    content,
		Name:       name,
		ToolCallID: callID,
	})
}

func (c *Conversation) record(seq int, msg openai.ChatCompletionMessage) {
	if c.recorder == nil {
		return
	}
	content := msg.Content
	if content == "" && len(msg.ToolCalls) > 0 {
		for _, tc := range msg.ToolCalls {
			content += tc.Function.Name + "(" + tc.Function.Arguments + ")\n"
		}
	}
	err := c.recorder.Save(Message{
		SessionID:  c.sessionID,
		Seq:        seq,
		Role:       msg.Role,
		Name:       msg.Name,
		ToolCallID: msg.ToolCallID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		logger.L.Warn("failed to store message in transcript", "session", c.sessionID, "error", err)
	}
}
