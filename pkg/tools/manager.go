package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// ToolManager exposes the operation catalogue to the model and dispatches
// the model's calls to the executor.
type ToolManager struct {
	definitions []Definition
	executor    *Executor
}

// NewToolManager creates a new ToolManager
func NewToolManager(executor *Executor) *ToolManager {
	return &ToolManager{
		definitions: Catalogue(),
		executor:    executor,
	}
}

// Definitions returns the registered operations in menu order.
func (m *ToolManager) Definitions() []Definition {
	return m.definitions
}

// OpenAITools renders the catalogue as function tools for a chat request.
func (m *ToolManager) OpenAITools() []openai.Tool {
	out := make([]openai.Tool, 0, len(m.definitions))
	for _, d := range m.definitions {
		schema := d.Schema()
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        string(d.Name),
				Description: d.Description,
				Parameters:  &schema,
			},
		})
	}
	return out
}

// Dispatch decodes and executes one call. A decode failure is returned as an
// error-describing result, never as an error, so it can be fed back to the model.
func (m *ToolManager) Dispatch(ctx context.Context, name, arguments string) (Call, string) {
	call, err := Decode(name, arguments)
	if errors.Is(err, ErrUnknownOperation) {
		return nil, fmt.Sprintf("Error: Function %s not implemented", name)
	}
	if err != nil {
		return nil, "Error: " + err.Error()
	}
	return call, m.executor.Execute(ctx, call)
}
