package mcp

import (
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Models answers query_model.
	Models driving.ModelMarketplace

	// MCPServers backs call_upstream_tool. Optional.
	MCPServers driving.MCPServerMarketplace

	// Cache backs the cache tools. Optional.
	Cache driving.CacheMarketplace

	// Queue backs the task tools. Optional.
	Queue driving.QueueMarketplace
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Models == nil {
		return ErrMissingModelMarketplace
	}
	// The other marketplaces only add tools when present.
	return nil
}
