package drivers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/bigcache"
	memorycache "github.com/custodia-labs/zicoder/internal/adapters/driven/cache/memory"
	rediscache "github.com/custodia-labs/zicoder/internal/adapters/driven/cache/redis"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/ristretto"
	anthropicllm "github.com/custodia-labs/zicoder/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/zicoder/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/zicoder/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/mcpclient"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/queue"
	"github.com/custodia-labs/zicoder/internal/core/domain"
)

func TestBuiltin_Kinds(t *testing.T) {
	c := Builtin()

	assert.Equal(t, []string{"anthropic", "ollama", "openai"}, c.Kinds(domain.MarketplaceModel))
	assert.Equal(t, []string{"sse", "stdio", "streamable-http"}, c.Kinds(domain.MarketplaceMCP))
	assert.Equal(t, []string{"bigcache", "memory", "redis", "ristretto"}, c.Kinds(domain.MarketplaceCache))
	assert.Equal(t, []string{"local", "sqlite"}, c.Kinds(domain.MarketplaceQueue))
	assert.Nil(t, c.Kinds(domain.MarketplaceKind("unknown")))
}

func TestModelCatalogue(t *testing.T) {
	c := ModelCatalogue()

	t.Run("ollama with defaults", func(t *testing.T) {
		d, err := c.Build(KindOllama, nil)
		require.NoError(t, err)
		o, ok := d.(*ollamallm.Driver)
		require.True(t, ok)
		assert.Equal(t, ollamallm.DefaultModel, o.ModelName())
	})

	t.Run("ollama with options", func(t *testing.T) {
		d, err := c.Build(KindOllama, map[string]any{
			"model":       "mistral",
			"timeout":     "30s",
			"temperature": 0.2,
			"max_tokens":  int64(256),
		})
		require.NoError(t, err)
		assert.Equal(t, "mistral", d.(*ollamallm.Driver).ModelName())
	})

	t.Run("openai requires key", func(t *testing.T) {
		t.Setenv(EnvOpenAIKey, "")
		_, err := c.Build(KindOpenAI, map[string]any{})
		assert.ErrorIs(t, err, openaillm.ErrMissingAPIKey)
	})

	t.Run("openai key from config", func(t *testing.T) {
		d, err := c.Build(KindOpenAI, map[string]any{"api_key": "sk-test", "model": "gpt-4o"})
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", d.(*openaillm.Driver).ModelName())
	})

	t.Run("anthropic key from environment", func(t *testing.T) {
		t.Setenv(EnvAnthropicKey, "sk-ant-test")
		d, err := c.Build(KindAnthropic, nil)
		require.NoError(t, err)
		_, ok := d.(*anthropicllm.Driver)
		assert.True(t, ok)
	})

	t.Run("anthropic requires key", func(t *testing.T) {
		t.Setenv(EnvAnthropicKey, "")
		_, err := c.Build(KindAnthropic, nil)
		assert.ErrorIs(t, err, anthropicllm.ErrMissingAPIKey)
	})

	t.Run("bad option type", func(t *testing.T) {
		_, err := c.Build(KindOllama, map[string]any{"timeout": true})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := c.Build("gemini", nil)
		assert.ErrorIs(t, err, domain.ErrUnknownDriverKind)
	})
}

func TestMCPCatalogue(t *testing.T) {
	c := MCPCatalogue()

	t.Run("stdio", func(t *testing.T) {
		d, err := c.Build(KindStdio, map[string]any{
			"command": "mcp-server-git",
			"args":    []any{"--repository", "."},
			"env":     map[string]any{"GIT_DIR": ".git"},
		})
		require.NoError(t, err)
		_, ok := d.(*mcpclient.Driver)
		assert.True(t, ok)
	})

	t.Run("stdio without command", func(t *testing.T) {
		_, err := c.Build(KindStdio, nil)
		assert.ErrorIs(t, err, mcpclient.ErrInvalidConfig)
	})

	t.Run("streamable http", func(t *testing.T) {
		_, err := c.Build(KindStreamableHTTP, map[string]any{
			"url":     "http://localhost:9000/mcp",
			"headers": map[string]any{"Authorization": "Bearer x"},
		})
		require.NoError(t, err)
	})

	t.Run("sse without url", func(t *testing.T) {
		_, err := c.Build(KindSSE, map[string]any{})
		assert.ErrorIs(t, err, mcpclient.ErrInvalidConfig)
	})

	t.Run("bad args", func(t *testing.T) {
		_, err := c.Build(KindStdio, map[string]any{"command": "x", "args": "--flag"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCacheCatalogue(t *testing.T) {
	c := CacheCatalogue()

	tests := []struct {
		kind string
		cfg  map[string]any
		want any
	}{
		{KindMemory, nil, &memorycache.Driver{}},
		{KindRedis, map[string]any{"addr": "localhost:6380", "db": int64(2), "codec": "json"}, &rediscache.Driver{}},
		{KindRistretto, map[string]any{"max_cost": int64(1 << 20), "codec": "cbor"}, &ristretto.Driver{}},
		{KindBigcache, map[string]any{"life_window": "1h", "codec": "msgpack"}, &bigcache.Driver{}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			d, err := c.Build(tt.kind, tt.cfg)
			require.NoError(t, err)
			assert.IsType(t, tt.want, d)
		})
	}

	t.Run("unknown codec", func(t *testing.T) {
		_, err := c.Build(KindRedis, map[string]any{"codec": "gob"})
		assert.Error(t, err)
	})

	t.Run("memory round trip", func(t *testing.T) {
		ctx := context.Background()
		d, err := c.Build(KindMemory, nil)
		require.NoError(t, err)
		require.NoError(t, d.Connect(ctx))
		defer d.Disconnect(ctx) //nolint:errcheck

		require.NoError(t, d.Set(ctx, "k", "v", 0))
		v, ok, err := d.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", v)
	})
}

func TestQueueCatalogue(t *testing.T) {
	c := QueueCatalogue()

	t.Run("local", func(t *testing.T) {
		d, err := c.Build(KindLocal, map[string]any{"workers": int64(2), "task_timeout": "5s"})
		require.NoError(t, err)
		assert.IsType(t, &queue.Driver{}, d)
	})

	t.Run("bad workers", func(t *testing.T) {
		_, err := c.Build(KindLocal, map[string]any{"workers": "many"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("sqlite persists under data_dir", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()

		d, err := c.Build(KindSQLite, map[string]any{"data_dir": dir})
		require.NoError(t, err)
		require.NoError(t, d.Connect(ctx))

		id, err := d.Enqueue(ctx, "echo", []any{"hi"}, nil)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			st, err := d.TaskStatus(ctx, id)
			return err == nil && st.State == domain.TaskSucceeded
		}, 5*time.Second, 10*time.Millisecond)

		require.NoError(t, d.Disconnect(ctx))
		assert.FileExists(t, filepath.Join(dir, "tasks.db"))
	})
}
