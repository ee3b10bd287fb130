// Package llm holds the pieces shared by the model driver adapters.
// Each provider lives in its own subpackage (ollama, openai, anthropic).
package llm

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

// Gate tracks whether a model driver is connected and throttles the
// requests it sends.
type Gate struct {
	mu        sync.RWMutex
	connected bool
	limiter   *rate.Limiter
}

// NewGate creates a closed gate. A non-positive requestsPerSecond
// disables throttling.
func NewGate(requestsPerSecond float64) *Gate {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Gate{limiter: rate.NewLimiter(limit, 1)}
}

// Open marks the driver connected.
func (g *Gate) Open() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.connected = true
}

// Close marks the driver disconnected.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.connected = false
}

// IsOpen reports whether the driver is connected.
func (g *Gate) IsOpen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.connected
}

// Enter blocks until the rate limiter admits one request.
// Returns domain.ErrNotConnected if the gate is closed.
func (g *Gate) Enter(ctx context.Context) error {
	if !g.IsOpen() {
		return domain.ErrNotConnected
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}
