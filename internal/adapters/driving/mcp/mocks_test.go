package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	memorycache "github.com/custodia-labs/zicoder/internal/adapters/driven/cache/memory"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/queue"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/services"
)

var errModel = errors.New("model overloaded")

// mockModel is a mock implementation of driven.ModelDriver.
type mockModel struct {
	err error
}

func (m *mockModel) Connect(_ context.Context) error    { return nil }
func (m *mockModel) Disconnect(_ context.Context) error { return nil }

func (m *mockModel) Query(_ context.Context, input string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "answer to " + input, nil
}

// mockUpstream is a mock implementation of driven.MCPDriver.
type mockUpstream struct{}

func (mockUpstream) Connect(_ context.Context) error    { return nil }
func (mockUpstream) Disconnect(_ context.Context) error { return nil }

func (mockUpstream) Tools(_ context.Context) ([]domain.Tool, error) { return nil, nil }

func (mockUpstream) Resources(_ context.Context) ([]domain.Resource, error) { return nil, nil }

func (mockUpstream) UseTool(_ context.Context, name string, _ map[string]any) (*domain.ToolResult, error) {
	return &domain.ToolResult{
		Content: []domain.Content{{Type: domain.ContentText, Text: "ran " + name}},
		IsError: name == "broken",
	}, nil
}

func (mockUpstream) AccessResource(_ context.Context, uri string) (*domain.ResourceContent, error) {
	return &domain.ResourceContent{URI: uri}, nil
}

// newPorts returns ports with every marketplace populated and active:
// a mock model, a mock upstream MCP server, a memory cache and a local queue.
func newPorts(t *testing.T) (*Ports, *mockModel) {
	t.Helper()
	ctx := context.Background()
	model := &mockModel{}

	models := services.NewModelMarketplace()
	models.Register("mock", func() driven.ModelDriver { return model })
	require.NoError(t, models.SetActive("mock"))

	upstream := services.NewMCPServerMarketplace()
	upstream.Register("mock", func() driven.MCPDriver { return mockUpstream{} })
	require.NoError(t, upstream.SetActive("mock"))

	cache := services.NewCacheMarketplace()
	cache.Register("mem", func() driven.CacheDriver { return memorycache.New() })
	require.NoError(t, cache.SetActive("mem"))
	require.NoError(t, cache.Connect(ctx))

	q := services.NewQueueMarketplace()
	q.Register("local", func() driven.QueueDriver { return queue.New(queue.Config{Workers: 1}) })
	require.NoError(t, q.SetActive("local"))
	require.NoError(t, q.Connect(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = q.Disconnect(ctx)
		_ = cache.Disconnect(ctx)
	})

	return &Ports{Models: models, MCPServers: upstream, Cache: cache, Queue: q}, model
}
