//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedisClient(t *testing.T) *RedisClient {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "falha ao subir container redis")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(endpoint)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisClient_IncrWithTTL(t *testing.T) {
	ctx := context.Background()
	c := newRedisClient(t)

	t.Run("primeira contagem abre a janela", func(t *testing.T) {
		n, err := c.IncrWithTTL(ctx, "rl:a", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = c.IncrWithTTL(ctx, "rl:a", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		ttl, err := c.rdb.PTTL(ctx, "rl:a").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("contador sem expiração recebe TTL", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "rl:orphan", 9, 0))

		n, err := c.IncrWithTTL(ctx, "rl:orphan", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(10), n)

		ttl, err := c.rdb.PTTL(ctx, "rl:orphan").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}
