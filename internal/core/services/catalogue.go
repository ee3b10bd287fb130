package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// Ensure Catalogue implements the interface.
var _ driving.DriverCatalogue[driven.CacheDriver] = (*Catalogue[driven.CacheDriver])(nil)

// Catalogue maps driver kinds to builders.
// It is how drivers named in configuration or HTTP requests get constructed.
type Catalogue[D driven.Driver] struct {
	mu       sync.RWMutex
	builders map[string]driven.Builder[D]
}

// NewCatalogue creates an empty catalogue.
func NewCatalogue[D driven.Driver]() *Catalogue[D] {
	return &Catalogue[D]{
		builders: make(map[string]driven.Builder[D]),
	}
}

// Register adds a builder for kind, replacing any existing one.
func (c *Catalogue[D]) Register(kind string, builder driven.Builder[D]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[kind] = builder
}

// Build constructs a driver of the given kind.
func (c *Catalogue[D]) Build(kind string, cfg map[string]any) (D, error) {
	c.mu.RLock()
	builder, ok := c.builders[kind]
	c.mu.RUnlock()

	if !ok {
		var zero D
		return zero, fmt.Errorf("%w: %s", domain.ErrUnknownDriverKind, kind)
	}
	if cfg == nil {
		cfg = map[string]any{}
	}

	driver, err := builder(cfg)
	if err != nil {
		var zero D
		return zero, fmt.Errorf("build %s driver: %w", kind, err)
	}
	return driver, nil
}

// Has reports whether a builder is registered for kind.
func (c *Catalogue[D]) Has(kind string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.builders[kind]
	return ok
}

// Kinds returns the registered kinds in sorted order.
func (c *Catalogue[D]) Kinds() []string {
	c.mu.RLock()
	kinds := make([]string, 0, len(c.builders))
	for kind := range c.builders {
		kinds = append(kinds, kind)
	}
	c.mu.RUnlock()

	sort.Strings(kinds)
	return kinds
}
