package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/codec"
	"github.com/custodia-labs/zicoder/internal/core/domain"
)

// liveDriver connects to the server named by ZICODER_TEST_REDIS_ADDR.
func liveDriver(t *testing.T) *Driver {
	t.Helper()
	addr := os.Getenv("ZICODER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ZICODER_TEST_REDIS_ADDR not set")
	}

	d := New(Config{Addr: addr, Prefix: "zicoder-test:" + uuid.NewString() + ":"})
	require.NoError(t, d.Connect(context.Background()))
	t.Cleanup(func() {
		_ = d.Clear(context.Background())
		_ = d.Disconnect(context.Background())
	})
	return d
}

func TestNew_Defaults(t *testing.T) {
	d := New(Config{})

	assert.Equal(t, DefaultAddr, d.cfg.Addr)
	assert.Equal(t, DefaultPrefix, d.cfg.Prefix)
	assert.Equal(t, DefaultConnectRetries, d.cfg.ConnectRetries)
	assert.Equal(t, codec.NameMsgpack, d.cfg.Codec.Name())
	assert.Equal(t, "zicoder:k", d.key("k"))
}

func TestDriver_NotConnected(t *testing.T) {
	d := New(Config{})
	ctx := context.Background()

	assert.ErrorIs(t, d.Set(ctx, "k", "v", 0), domain.ErrNotConnected)
	_, _, err := d.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.ErrorIs(t, d.Delete(ctx, "k"), domain.ErrNotConnected)
	assert.ErrorIs(t, d.Clear(ctx), domain.ErrNotConnected)
	assert.NoError(t, d.Disconnect(ctx))
}

func TestDriver_ConnectUnreachable(t *testing.T) {
	d := New(Config{Addr: "127.0.0.1:1", ConnectRetries: 1, RetryBackoff: time.Millisecond})

	err := d.Connect(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	_, _, err = d.Get(context.Background(), "k")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestDriver_Live_SetGetDelete(t *testing.T) {
	d := liveDriver(t)
	ctx := context.Background()

	require.NoError(t, d.Set(ctx, "k", map[string]any{"v": "1"}, time.Minute))

	v, found, err := d.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]any{"v": "1"}, v)

	require.NoError(t, d.Delete(ctx, "k"))
	_, found, err = d.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDriver_Live_ClearOnlyTouchesPrefix(t *testing.T) {
	d := liveDriver(t)
	ctx := context.Background()
	other := New(Config{Addr: d.cfg.Addr, Prefix: "zicoder-test-other:" + uuid.NewString() + ":"})
	require.NoError(t, other.Connect(ctx))
	defer func() {
		_ = other.Clear(ctx)
		_ = other.Disconnect(ctx)
	}()

	require.NoError(t, d.Set(ctx, "a", "1", 0))
	require.NoError(t, other.Set(ctx, "a", "2", 0))
	require.NoError(t, d.Clear(ctx))

	_, found, err := d.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	v, found, err := other.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", v)
}
