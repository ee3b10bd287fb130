package services

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/logger"
)

// Marketplace holds the drivers registered for one domain and routes
// operations to the active one.
//
// The active driver is remembered by name, so re-registering the active
// name makes the replacement instance active. Driver calls are made after
// the lock is released; a slow driver never blocks registration.
type Marketplace[D driven.Driver] struct {
	kind domain.MarketplaceKind

	mu        sync.RWMutex
	drivers   map[string]D
	active    string
	hasActive bool
}

// NewMarketplace creates an empty marketplace with no active driver.
func NewMarketplace[D driven.Driver](kind domain.MarketplaceKind) *Marketplace[D] {
	return &Marketplace[D]{
		kind:    kind,
		drivers: make(map[string]D),
	}
}

// Kind identifies the marketplace.
func (m *Marketplace[D]) Kind() domain.MarketplaceKind {
	return m.kind
}

// Register constructs a driver with factory and stores it under name.
// A driver already registered under name is discarded.
func (m *Marketplace[D]) Register(name string, factory driven.Factory[D]) {
	driver := factory()

	m.mu.Lock()
	_, replaced := m.drivers[name]
	m.drivers[name] = driver
	m.mu.Unlock()

	if replaced {
		logger.Debug("%s: replaced driver %q", m.kind, name)
		return
	}
	logger.Debug("%s: registered driver %q", m.kind, name)
}

// SetActive routes subsequent operations to the named driver.
func (m *Marketplace[D]) SetActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drivers[name]; !ok {
		return domain.ErrDriverNotFound
	}
	m.active = name
	m.hasActive = true
	logger.Debug("%s: active driver is %q", m.kind, name)
	return nil
}

// Active returns the active driver instance.
// Returns domain.ErrNoActiveDriver if none is active.
func (m *Marketplace[D]) Active() (D, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasActive {
		var zero D
		return zero, domain.ErrNoActiveDriver
	}
	return m.drivers[m.active], nil
}

// ActiveName returns the active driver name, if any.
func (m *Marketplace[D]) ActiveName() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active, m.hasActive
}

// Names returns the registered driver names in sorted order.
func (m *Marketplace[D]) Names() []string {
	m.mu.RLock()
	names := make([]string, 0, len(m.drivers))
	for name := range m.drivers {
		names = append(names, name)
	}
	m.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Has reports whether a driver is registered under name.
func (m *Marketplace[D]) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.drivers[name]
	return ok
}

// Connect connects the active driver.
func (m *Marketplace[D]) Connect(ctx context.Context) error {
	return exec(m, func(d D) error { return d.Connect(ctx) })
}

// Disconnect disconnects the active driver.
func (m *Marketplace[D]) Disconnect(ctx context.Context) error {
	return exec(m, func(d D) error { return d.Disconnect(ctx) })
}

// dispatch resolves the active driver and calls fn with it.
// fn runs without the marketplace lock held.
func dispatch[D driven.Driver, R any](m *Marketplace[D], fn func(D) (R, error)) (R, error) {
	driver, err := m.Active()
	if err != nil {
		var zero R
		return zero, err
	}
	return fn(driver)
}

// exec is dispatch for operations that only return an error.
func exec[D driven.Driver](m *Marketplace[D], fn func(D) error) error {
	driver, err := m.Active()
	if err != nil {
		return err
	}
	return fn(driver)
}
