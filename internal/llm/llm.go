package llm

import (
	"strings"

	"github.com/ehudso7/StatTact/internal/config"
	"github.com/sashabaranov/go-openai"
)

// NewClient builds the chat client shared by the tactics service and the
// assistant. An empty BaseURL keeps the public OpenAI endpoint.
func NewClient(cfg config.LLMConfig) *openai.Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" {
		oc.BaseURL = base
	}
	return openai.NewClientWithConfig(oc)
}
