package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`), 0))
	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, val)

	require.NoError(t, c.Delete(ctx, "k", "missing"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_Expiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryClient()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	now = now.Add(59 * time.Second)
	_, err := c.Get(ctx, "k")
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_IncrWithTTL_FixedWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryClient()
	c.now = func() time.Time { return now }

	n, err := c.IncrWithTTL(ctx, "window", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Incrementos seguintes não estendem a janela.
	now = now.Add(20 * time.Second)
	n, err = c.IncrWithTTL(ctx, "window", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	now = now.Add(10 * time.Second)
	_, err = c.Get(ctx, "window")
	assert.ErrorIs(t, err, ErrCacheMiss)

	n, err = c.IncrWithTTL(ctx, "window", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryClient_IncrWithTTL_OrphanCounterGetsTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryClient()
	c.now = func() time.Time { return now }

	// Contador gravado sem expiração.
	require.NoError(t, c.Set(ctx, "window", 7, 0))

	n, err := c.IncrWithTTL(ctx, "window", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "window")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_IncrWithTTL_NonNumeric(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()
	require.NoError(t, c.Set(ctx, "k", "abc", 0))

	_, err := c.IncrWithTTL(ctx, "k", time.Minute)
	assert.Error(t, err)
}
