// Package memory provides an in-process cache driver backed by a map.
// Expired entries are dropped lazily on access.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
)

// Ensure Driver implements the interface.
var _ driven.CacheDriver = (*Driver)(nil)

type entry struct {
	value   any
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Driver is an in-memory cache driver.
type Driver struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates a memory cache driver. The driver is not connected.
func New() *Driver {
	return &Driver{now: time.Now}
}

// Connect allocates the store. Connecting twice keeps existing entries.
func (d *Driver) Connect(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries == nil {
		d.entries = make(map[string]entry)
	}
	return nil
}

// Disconnect drops the store.
func (d *Driver) Disconnect(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = nil
	return nil
}

// Set stores value under key.
func (d *Driver) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries == nil {
		return domain.ErrNotConnected
	}

	e := entry{value: value}
	if ttl > 0 {
		e.expires = d.now().Add(ttl)
	}
	d.entries[key] = e
	return nil
}

// Get returns the value stored under key.
func (d *Driver) Get(_ context.Context, key string) (any, bool, error) {
	d.mu.RLock()
	if d.entries == nil {
		d.mu.RUnlock()
		return nil, false, domain.ErrNotConnected
	}
	e, ok := d.entries[key]
	d.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if e.expired(d.now()) {
		d.mu.Lock()
		if cur, ok := d.entries[key]; ok && cur.expired(d.now()) {
			delete(d.entries, key)
		}
		d.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Delete removes key.
func (d *Driver) Delete(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries == nil {
		return domain.ErrNotConnected
	}
	delete(d.entries, key)
	return nil
}

// Clear removes every entry.
func (d *Driver) Clear(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries == nil {
		return domain.ErrNotConnected
	}
	d.entries = make(map[string]entry)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet dropped.
func (d *Driver) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
