package services

import (
	"context"
	"time"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// Ensure CacheMarketplace implements the interface.
var _ driving.CacheMarketplace = (*CacheMarketplace)(nil)

// CacheMarketplace routes key/value operations to the active cache driver.
type CacheMarketplace struct {
	*Marketplace[driven.CacheDriver]
}

// NewCacheMarketplace creates an empty cache marketplace.
func NewCacheMarketplace() *CacheMarketplace {
	return &CacheMarketplace{
		Marketplace: NewMarketplace[driven.CacheDriver](domain.MarketplaceCache),
	}
}

// Set stores value under key in the active cache.
func (m *CacheMarketplace) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return exec(m.Marketplace, func(d driven.CacheDriver) error {
		return d.Set(ctx, key, value, ttl)
	})
}

// Get reads key from the active cache.
func (m *CacheMarketplace) Get(ctx context.Context, key string) (any, bool, error) {
	driver, err := m.Active()
	if err != nil {
		return nil, false, err
	}
	return driver.Get(ctx, key)
}

// Delete removes key from the active cache.
func (m *CacheMarketplace) Delete(ctx context.Context, key string) error {
	return exec(m.Marketplace, func(d driven.CacheDriver) error {
		return d.Delete(ctx, key)
	})
}

// Clear empties the active cache.
func (m *CacheMarketplace) Clear(ctx context.Context) error {
	return exec(m.Marketplace, func(d driven.CacheDriver) error {
		return d.Clear(ctx)
	})
}
