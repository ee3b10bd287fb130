package ristretto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/codec"
	"github.com/custodia-labs/zicoder/internal/core/domain"
)

func connected(t *testing.T) *Driver {
	t.Helper()
	d, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, d.Connect(context.Background()))
	t.Cleanup(func() { _ = d.Disconnect(context.Background()) })
	return d
}

func TestNew_Defaults(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultNumCounters), d.cfg.NumCounters)
	assert.Equal(t, int64(DefaultMaxCost), d.cfg.MaxCost)
	assert.Equal(t, codec.NameMsgpack, d.cfg.Codec.Name())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Config{MaxCost: -1})
	assert.Error(t, err)
}

func TestDriver_NotConnected(t *testing.T) {
	d, err := New(Config{})
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, d.Set(ctx, "k", "v", 0), domain.ErrNotConnected)
	_, _, err = d.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.ErrorIs(t, d.Delete(ctx, "k"), domain.ErrNotConnected)
	assert.ErrorIs(t, d.Clear(ctx), domain.ErrNotConnected)
}

func TestDriver_SetGetDelete(t *testing.T) {
	d := connected(t)
	ctx := context.Background()

	require.NoError(t, d.Set(ctx, "k", "v", time.Minute))

	v, found, err := d.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)

	require.NoError(t, d.Delete(ctx, "k"))
	_, found, err = d.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDriver_Clear(t *testing.T) {
	d := connected(t)
	ctx := context.Background()

	require.NoError(t, d.Set(ctx, "a", "1", 0))
	require.NoError(t, d.Clear(ctx))

	_, found, err := d.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDriver_Miss(t *testing.T) {
	d := connected(t)

	v, found, err := d.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, v)
}
