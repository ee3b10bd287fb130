// Package ristretto provides an in-process cache driver backed by
// dgraph-io/ristretto. Values are stored encoded, with their size as cost.
package ristretto

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/codec"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
)

// Ensure Driver implements the interface.
var _ driven.CacheDriver = (*Driver)(nil)

// Default configuration values.
const (
	DefaultNumCounters = 1e6
	DefaultMaxCost     = 64 << 20
	DefaultBufferItems = 64
)

// ErrRejected indicates ristretto's admission policy dropped a Set.
var ErrRejected = errors.New("ristretto: set rejected by admission policy")

// Config holds configuration for the ristretto driver.
type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Codec       codec.Codec
}

// Driver is a ristretto cache driver.
type Driver struct {
	cfg Config

	mu sync.RWMutex
	c  *rc.Cache
}

// New creates a ristretto driver. Zero fields select defaults.
func New(cfg Config) (*Driver, error) {
	if cfg.NumCounters == 0 {
		cfg.NumCounters = DefaultNumCounters
	}
	if cfg.MaxCost == 0 {
		cfg.MaxCost = DefaultMaxCost
	}
	if cfg.BufferItems == 0 {
		cfg.BufferItems = DefaultBufferItems
	}
	if cfg.NumCounters < 0 || cfg.MaxCost < 0 || cfg.BufferItems < 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	if cfg.Codec == nil {
		cfg.Codec = codec.Msgpack{}
	}
	return &Driver{cfg: cfg}, nil
}

// Connect allocates the cache.
func (d *Driver) Connect(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.c != nil {
		return nil
	}

	c, err := rc.NewCache(&rc.Config{
		NumCounters: d.cfg.NumCounters,
		MaxCost:     d.cfg.MaxCost,
		BufferItems: d.cfg.BufferItems,
	})
	if err != nil {
		return fmt.Errorf("ristretto: %w", err)
	}
	d.c = c
	return nil
}

// Disconnect closes the cache.
func (d *Driver) Disconnect(_ context.Context) error {
	d.mu.Lock()
	c := d.c
	d.c = nil
	d.mu.Unlock()

	if c != nil {
		c.Wait()
		c.Close()
	}
	return nil
}

func (d *Driver) cache() (*rc.Cache, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.c == nil {
		return nil, domain.ErrNotConnected
	}
	return d.c, nil
}

// Set stores value under key. The write is visible to Get once Set returns.
func (d *Driver) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c, err := d.cache()
	if err != nil {
		return err
	}

	b, err := d.cfg.Codec.Encode(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if !c.SetWithTTL(key, b, int64(len(b)), ttl) {
		return ErrRejected
	}
	c.Wait()
	return nil
}

// Get returns the value stored under key.
func (d *Driver) Get(_ context.Context, key string) (any, bool, error) {
	c, err := d.cache()
	if err != nil {
		return nil, false, err
	}

	v, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		c.Del(key)
		return nil, false, nil
	}

	value, err := d.cfg.Codec.Decode(b)
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
	c.Del(key)
	return nil
}

// Clear removes every entry.
func (d *Driver) Clear(_ context.Context) error {
	c, err := d.cache()
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}
