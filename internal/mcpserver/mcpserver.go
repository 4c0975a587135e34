// Package mcpserver serves the assistant's local operations over the Model
// Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/ehudso7/StatTact/internal/logger"
	"github.com/ehudso7/StatTact/pkg/tools"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "stattact-operations"
	serverVersion = "1.0.0"
)

// New registers every operation of the catalogue as an MCP tool.
func New(executor *tools.Executor) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))
	for _, def := range tools.Catalogue() {
		s.AddTool(toolFor(def), Handler(executor))
	}
	return s
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func ServeStdio(executor *tools.Executor) error {
	return server.ServeStdio(New(executor))
}

func toolFor(def tools.Definition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for _, p := range def.Params {
		opts = append(opts, mcp.WithString(p.Name, mcp.Required(), mcp.Description(p.Description)))
	}
	return mcp.NewTool(string(def.Name), opts...)
}

// Handler decodes an MCP tool call with the same decoder the assistant uses
// and executes it. Decode failures become error results, not protocol errors.
func Handler(executor *tools.Executor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.Params.Name

		args := []byte("{}")
		if request.Params.Arguments != nil {
			b, err := json.Marshal(request.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError("Error: could not encode arguments: " + err.Error()), nil
			}
			args = b
		}

		call, err := tools.Decode(name, string(args))
		if err != nil {
			logger.L.Warn("MCP tool call rejected", "tool", name, "error", err)
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		result := executor.Execute(ctx, call)
		logger.L.Info("MCP tool executed", "tool", name, "result_bytes", len(result))
		return mcp.NewToolResultText(result), nil
	}
}
