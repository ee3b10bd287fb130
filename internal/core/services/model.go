package services

import (
	"context"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// Ensure ModelMarketplace implements the interface.
var _ driving.ModelMarketplace = (*ModelMarketplace)(nil)

// ModelMarketplace routes queries to the active model driver.
type ModelMarketplace struct {
	*Marketplace[driven.ModelDriver]
}

// NewModelMarketplace creates an empty model marketplace.
func NewModelMarketplace() *ModelMarketplace {
	return &ModelMarketplace{
		Marketplace: NewMarketplace[driven.ModelDriver](domain.MarketplaceModel),
	}
}

// Query sends input to the active model.
func (m *ModelMarketplace) Query(ctx context.Context, input string) (string, error) {
	return dispatch(m.Marketplace, func(d driven.ModelDriver) (string, error) {
		return d.Query(ctx, input)
	})
}
