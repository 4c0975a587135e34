// Package tactics turns a team (and optional opponent) into a tactical
// write-up generated by the configured LLM.
package tactics

import (
	"context"
	"errors"
	"fmt"

	"github.com/ehudso7/StatTact/internal/config"
	"github.com/ehudso7/StatTact/internal/llm"
	"github.com/ehudso7/StatTact/internal/logger"

	"github.com/sashabaranov/go-openai"
)

var (
	// ErrInvalidRequest marks a request the transport could not turn into a
	// Request, such as one without a team field.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNoChoices is returned when the completion API answers without any choice.
	ErrNoChoices = errors.New("llm returned no choices")
)

// Request names the team to analyse and, optionally, its opponent.
type Request struct {
	Team     string `json:"team"`
	Opponent string `json:"opponent,omitempty"`
}

// Response is the body returned by both generate routes.
type Response struct {
	Result string `json:"result"`
}

// Service generates tactics through an LLM.
type Service struct {
	llmClient llm.Client
	cfg       config.LLMConfig
}

// New creates a new tactics service.
func New(llmClient llm.Client, cfg config.LLMConfig) *Service {
	return &Service{llmClient: llmClient, cfg: cfg}
}

// Generate builds the prompt for req and returns the model's text.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req.Team, req.Opponent)
	logger.L.Debug("tactics prompt built", "team", req.Team, "opponent", req.Opponent)

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if s.cfg.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: s.cfg.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := s.llmClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	logger.L.Info("tactics generated", "team", req.Team, "model", resp.Model, "total_tokens", resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}
