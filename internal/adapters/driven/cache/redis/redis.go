// Package redis provides a cache driver backed by a Redis server.
// Keys are namespaced with a prefix so Clear only touches this driver's keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/codec"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/logger"
)

// Ensure Driver implements the interface.
var _ driven.CacheDriver = (*Driver)(nil)

// Default configuration values.
const (
	DefaultAddr           = "localhost:6379"
	DefaultPrefix         = "zicoder:"
	DefaultConnectRetries = 3
	DefaultRetryBackoff   = 200 * time.Millisecond
	scanBatch             = 500
)

// Config holds configuration for the Redis driver.
type Config struct {
	Addr     string
	Username string
	Password string
	DB       int

	// Prefix namespaces every key (default: "zicoder:").
	Prefix string

	Codec codec.Codec

	// ConnectRetries is the number of PING retries on Connect (default: 3).
	ConnectRetries int

	// RetryBackoff is the base Fibonacci backoff between retries (default: 200ms).
	RetryBackoff time.Duration
}

// Driver is a Redis cache driver.
type Driver struct {
	cfg Config

	mu  sync.RWMutex
	rdb *goredis.Client
}

// New creates a Redis driver. The driver is not connected.
func New(cfg Config) *Driver {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.Codec == nil {
		cfg.Codec = codec.Msgpack{}
	}
	if cfg.ConnectRetries <= 0 {
		cfg.ConnectRetries = DefaultConnectRetries
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	return &Driver{cfg: cfg}
}

// Connect opens a client and waits for the server to answer PING.
func (d *Driver) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rdb != nil {
		return nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     d.cfg.Addr,
		Username: d.cfg.Username,
		Password: d.cfg.Password,
		DB:       d.cfg.DB,
	})

	b := retry.WithMaxRetries(uint64(d.cfg.ConnectRetries), retry.NewFibonacci(d.cfg.RetryBackoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Debug("redis: ping %s failed: %v", d.cfg.Addr, err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis: connect to %s: %w", d.cfg.Addr, err)
	}

	d.rdb = rdb
	logger.Debug("redis: connected to %s (db %d)", d.cfg.Addr, d.cfg.DB)
	return nil
}

// Disconnect closes the client.
func (d *Driver) Disconnect(_ context.Context) error {
	d.mu.Lock()
	rdb := d.rdb
	d.rdb = nil
	d.mu.Unlock()

	if rdb == nil {
		return nil
	}
	if err := rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}

func (d *Driver) client() (*goredis.Client, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.rdb == nil {
		return nil, domain.ErrNotConnected
	}
	return d.rdb, nil
}

func (d *Driver) key(k string) string {
	return d.cfg.Prefix + k
}

// Set stores value under key. A non-positive ttl means no expiry.
func (d *Driver) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	rdb, err := d.client()
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
	return rdb.Set(ctx, d.key(key), b, ttl).Err()
}

// Get returns the value stored under key.
func (d *Driver) Get(ctx context.Context, key string) (any, bool, error) {
	rdb, err := d.client()
	if err != nil {
		return nil, false, err
	}

	b, err := rdb.Get(ctx, d.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	value, err := d.cfg.Codec.Decode(b)
	if err != nil {
		return nil, false, fmt.Errorf("decode value: %w", err)
	}
	return value, true, nil
}

// Delete removes key.
func (d *Driver) Delete(ctx context.Context, key string) error {
	rdb, err := d.client()
	if err != nil {
		return err
	}
	return rdb.Del(ctx, d.key(key)).Err()
}

// Clear removes every key under the driver prefix.
func (d *Driver) Clear(ctx context.Context) error {
	rdb, err := d.client()
	if err != nil {
		return err
	}

	var cursor uint64
	for {
		keys, next, err := rdb.Scan(ctx, cursor, d.cfg.Prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis: scan: %w", err)
		}
		if len(keys) > 0 {
			if err := rdb.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis: unlink: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
