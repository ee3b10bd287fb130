package driven

import (
	"context"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

// MCPDriver talks to a single MCP server.
type MCPDriver interface {
	Driver

	// Tools lists the tools exposed by the server.
	Tools(ctx context.Context) ([]domain.Tool, error)

	// Resources lists the resources exposed by the server.
	Resources(ctx context.Context) ([]domain.Resource, error)

	// UseTool invokes a tool with the given arguments.
	UseTool(ctx context.Context, name string, args map[string]any) (*domain.ToolResult, error)

	// AccessResource reads a resource by URI.
	AccessResource(ctx context.Context, uri string) (*domain.ResourceContent, error)
}
