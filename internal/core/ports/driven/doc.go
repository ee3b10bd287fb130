// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Driver Contracts
//
// Every marketplace routes calls to exactly one active driver. A driver
// satisfies one of these contracts:
//
//   - ModelDriver: Sends queries to a language model
//   - MCPDriver: Lists and invokes tools/resources of an MCP server
//   - CacheDriver: Stores and retrieves values in a cache backend
//   - QueueDriver: Enqueues tasks and reports their status and result
//
// All of them embed Driver (Connect/Disconnect).
//
// # Supporting Interfaces
//
//   - TaskStore: Task persistence for queue drivers
//   - SettingsStore: Start-up configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
