package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	Active int `json:"active"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client), server
}

func TestCache_JSONRoundTripAndExpiry(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	found, err := c.GetJSON(ctx, DashboardKey, &summary{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetJSON(ctx, DashboardKey, summary{Active: 4}, 30*time.Second))

	var got summary
	found, err = c.GetJSON(ctx, DashboardKey, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, got.Active)

	server.FastForward(31 * time.Second)
	found, err = c.GetJSON(ctx, DashboardKey, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_InvalidateAggregates(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, DashboardKey, "x", 0))
	require.NoError(t, c.Set(ctx, QueueStatsKey, "y", 0))
	require.NoError(t, c.Set(ctx, "unrelated", "z", 0))

	require.NoError(t, c.InvalidateAggregates(ctx))
	assert.False(t, server.Exists(DashboardKey))
	assert.False(t, server.Exists(QueueStatsKey))
	assert.True(t, server.Exists("unrelated"))
}

func TestCache_DeleteAllByPattern(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "queue_stats_cache", "1", 0))
	require.NoError(t, c.Set(ctx, "queue_other", "2", 0))
	require.NoError(t, c.Set(ctx, "dashboard_cache", "3", 0))

	require.NoError(t, c.DeleteAll(ctx, "queue_*"))
	assert.False(t, server.Exists("queue_stats_cache"))
	assert.False(t, server.Exists("queue_other"))
	assert.True(t, server.Exists("dashboard_cache"))
}

func TestCache_DisabledIsNoop(t *testing.T) {
	c := NewCache(nil)
	ctx := context.Background()

	assert.False(t, c.Enabled())
	require.NoError(t, c.SetJSON(ctx, DashboardKey, summary{Active: 1}, time.Minute))
	found, err := c.GetJSON(ctx, DashboardKey, &summary{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.InvalidateAggregates(ctx))
	assert.NoError(t, c.DeleteAll(ctx, "*"))
}
