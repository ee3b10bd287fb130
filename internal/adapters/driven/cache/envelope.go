// Package cache holds helpers shared by the cache driver adapters.
// Each backend lives in its own subpackage (memory, ristretto, bigcache, redis).
package cache

import (
	"encoding/binary"
	"errors"
	"time"
)

const headerSize = 8

// ErrCorruptEntry indicates stored bytes are too short to hold an envelope.
var ErrCorruptEntry = errors.New("cache: corrupt entry")

// Wrap prefixes payload with its absolute expiry for backends that lack
// per-entry TTL. A non-positive ttl means the entry never expires.
func Wrap(payload []byte, ttl time.Duration, now time.Time) []byte {
	var expires int64
	if ttl > 0 {
		expires = now.Add(ttl).UnixNano()
	}
	b := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint64(b[:headerSize], uint64(expires))
	copy(b[headerSize:], payload)
	return b
}

// Unwrap returns the payload of an envelope and whether it is still live.
func Unwrap(b []byte, now time.Time) ([]byte, bool, error) {
	if len(b) < headerSize {
		return nil, false, ErrCorruptEntry
	}
	expires := int64(binary.BigEndian.Uint64(b[:headerSize]))
	if expires != 0 && now.UnixNano() >= expires {
		return nil, false, nil
	}
	return b[headerSize:], true, nil
}
