package services

import (
	"context"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// Ensure MCPServerMarketplace implements the interface.
var _ driving.MCPServerMarketplace = (*MCPServerMarketplace)(nil)

// MCPServerMarketplace routes tool and resource calls to the active MCP server driver.
type MCPServerMarketplace struct {
	*Marketplace[driven.MCPDriver]
}

// NewMCPServerMarketplace creates an empty MCP server marketplace.
func NewMCPServerMarketplace() *MCPServerMarketplace {
	return &MCPServerMarketplace{
		Marketplace: NewMarketplace[driven.MCPDriver](domain.MarketplaceMCP),
	}
}

// Tools lists the tools of the active server.
func (m *MCPServerMarketplace) Tools(ctx context.Context) ([]domain.Tool, error) {
	return dispatch(m.Marketplace, func(d driven.MCPDriver) ([]domain.Tool, error) {
		return d.Tools(ctx)
	})
}

// Resources lists the resources of the active server.
func (m *MCPServerMarketplace) Resources(ctx context.Context) ([]domain.Resource, error) {
	return dispatch(m.Marketplace, func(d driven.MCPDriver) ([]domain.Resource, error) {
		return d.Resources(ctx)
	})
}

// UseTool invokes a tool on the active server.
func (m *MCPServerMarketplace) UseTool(
	ctx context.Context, name string, args map[string]any,
) (*domain.ToolResult, error) {
	return dispatch(m.Marketplace, func(d driven.MCPDriver) (*domain.ToolResult, error) {
		return d.UseTool(ctx, name, args)
	})
}

// AccessResource reads a resource from the active server.
func (m *MCPServerMarketplace) AccessResource(ctx context.Context, uri string) (*domain.ResourceContent, error) {
	return dispatch(m.Marketplace, func(d driven.MCPDriver) (*domain.ResourceContent, error) {
		return d.AccessResource(ctx, uri)
	})
}
