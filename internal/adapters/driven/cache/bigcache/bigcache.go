// Package bigcache provides an in-process cache driver backed by
// allegro/bigcache. BigCache only has a global life window, so each entry
// carries its own expiry in an envelope.
package bigcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/codec"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
)

// Ensure Driver implements the interface.
var _ driven.CacheDriver = (*Driver)(nil)

// DefaultLifeWindow is the global eviction window.
const DefaultLifeWindow = 24 * time.Hour

// Config holds configuration for the bigcache driver.
type Config struct {
	// LifeWindow evicts entries regardless of their TTL (default: 24h).
	LifeWindow time.Duration

	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int

	// HardMaxCacheSizeMB limits memory; 0 means unlimited.
	HardMaxCacheSizeMB int

	Codec codec.Codec
}

// Driver is a bigcache cache driver.
type Driver struct {
	cfg Config
	now func() time.Time

	mu sync.RWMutex
	c  *bc.BigCache
}

// New creates a bigcache driver. The driver is not connected.
func New(cfg Config) *Driver {
	if cfg.LifeWindow == 0 {
		cfg.LifeWindow = DefaultLifeWindow
	}
	if cfg.Codec == nil {
		cfg.Codec = codec.Msgpack{}
	}
	return &Driver{cfg: cfg, now: time.Now}
}

// Connect allocates the cache shards.
func (d *Driver) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.c != nil {
		return nil
	}

	conf := bc.DefaultConfig(d.cfg.LifeWindow)
	conf.Verbose = false
	if d.cfg.CleanWindow > 0 {
		conf.CleanWindow = d.cfg.CleanWindow
	}
	if d.cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = d.cfg.MaxEntriesInWindow
	}
	if d.cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = d.cfg.MaxEntrySize
	}
	if d.cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = d.cfg.HardMaxCacheSizeMB
	}

	c, err := bc.New(ctx, conf)
	if err != nil {
		return fmt.Errorf("bigcache: %w", err)
	}
	d.c = c
	return nil
}

// Disconnect releases the cache.
func (d *Driver) Disconnect(_ context.Context) error {
	d.mu.Lock()
	c := d.c
	d.c = nil
	d.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

func (d *Driver) cache() (*bc.BigCache, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.c == nil {
		return nil, domain.ErrNotConnected
	}
	return d.c, nil
}

// Set stores value under key.
func (d *Driver) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c, err := d.cache()
	if err != nil {
		return err
	}

	b, err := d.cfg.Codec.Encode(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	return c.Set(key, cache.Wrap(b, ttl, d.now()))
}

// Get returns the value stored under key.
func (d *Driver) Get(_ context.Context, key string) (any, bool, error) {
	c, err := d.cache()
	if err != nil {
		return nil, false, err
	}

	raw, err := c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	payload, live, err := cache.Unwrap(raw, d.now())
	if err != nil || !live {
		// Drop expired or unreadable entries.
		_ = c.Delete(key)
		return nil, false, nil
	}

	value, err := d.cfg.Codec.Decode(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode value: %w", err)
	}
	return value, true, nil
}

// Delete removes key.
func (d *Driver) Delete(_ context.Context, key string) error {
	c, err := d.cache()
	if err != nil {
		return err
	}
	if err := c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return err
	}
	return nil
}

// Clear removes every entry.
func (d *Driver) Clear(_ context.Context) error {
	c, err := d.cache()
	if err != nil {
		return err
	}
	return c.Reset()
}
