package driven

import (
	"context"
	"time"
)

// CacheDriver stores arbitrary values in a cache backend.
// Values are any JSON-compatible value; drivers choose their own encoding.
type CacheDriver interface {
	Driver

	// Set stores value under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	Get(ctx context.Context, key string) (any, bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by the driver.
	Clear(ctx context.Context) error
}
