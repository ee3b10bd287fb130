// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The central service is the generic Marketplace: a registry of named
// drivers with a single active driver that every operation is routed to.
// ModelMarketplace, MCPServerMarketplace, CacheMarketplace and
// QueueMarketplace instantiate it for their driver contracts.
package services
