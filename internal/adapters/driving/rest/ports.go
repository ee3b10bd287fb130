package rest

import (
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// Ports aggregates the marketplaces and driver catalogues served over HTTP.
// This provides a single injection point for dependency injection.
type Ports struct {
	Models       driving.ModelMarketplace
	ModelDrivers driving.DriverCatalogue[driven.ModelDriver]

	MCPServers driving.MCPServerMarketplace
	MCPDrivers driving.DriverCatalogue[driven.MCPDriver]

	Cache        driving.CacheMarketplace
	CacheDrivers driving.DriverCatalogue[driven.CacheDriver]

	Queue        driving.QueueMarketplace
	QueueDrivers driving.DriverCatalogue[driven.QueueDriver]
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Models == nil || p.ModelDrivers == nil:
		return ErrMissingModelMarketplace
	case p.MCPServers == nil || p.MCPDrivers == nil:
		return ErrMissingMCPMarketplace
	case p.Cache == nil || p.CacheDrivers == nil:
		return ErrMissingCacheMarketplace
	case p.Queue == nil || p.QueueDrivers == nil:
		return ErrMissingQueueMarketplace
	}
	return nil
}
