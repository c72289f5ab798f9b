package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	otelMocks "spacebook/infras/otel/mocks"
	"spacebook/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quote struct {
	Days  int     `json:"days"`
	Total float64 `json:"total"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, otelMocks.NewOtel()), server
}

func TestRedisCache_SaveGet(t *testing.T) {
	ctx := context.Background()
	c, server := newCache(t)

	require.NoError(t, c.Save(ctx, "bookings:quote:1", quote{Days: 3, Total: 450}, 60))
	require.NoError(t, c.Save(ctx, "raw", "plain text", 60))

	var got quote
	require.NoError(t, c.Get(ctx, "bookings:quote:1", &got))
	assert.Equal(t, quote{Days: 3, Total: 450}, got)

	var raw string
	require.NoError(t, c.Get(ctx, "raw", &raw))
	assert.Equal(t, "plain text", raw)

	server.FastForward(61 * time.Second)

	assert.ErrorIs(t, c.Get(ctx, "bookings:quote:1", &got), cache.Nil)
}

func TestRedisCache_GetDecodeError(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)

	require.NoError(t, c.Save(ctx, "broken", "{not json", 60))

	var got quote
	err := c.Get(ctx, "broken", &got)

	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.Nil)
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c, server := newCache(t)

	for i := range 250 {
		require.NoError(t, c.Save(ctx, fmt.Sprintf("spaces:list:%d", i), i, 60))
	}

	require.NoError(t, c.Save(ctx, "spaces:detail:1", "x", 60))
	require.NoError(t, c.Save(ctx, "bookings:mine:u1", "y", 60))

	require.NoError(t, c.Delete(ctx, "spaces:detail:1"))
	assert.False(t, server.Exists("spaces:detail:1"))

	require.NoError(t, c.Clear(ctx, "spaces:*"))
	assert.Equal(t, []string{"bookings:mine:u1"}, server.Keys())
}
