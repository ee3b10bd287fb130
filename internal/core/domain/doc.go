// Package domain defines the core types shared by every marketplace.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MarketplaceKind: One of the four driver marketplaces
//   - Tool, Resource, ToolResult: MCP server payloads
//   - Task, TaskStatus: Queue task bookkeeping
//   - Settings: Start-up configuration of the server and its drivers
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
