package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value int `json:"value"`
}

func newTestCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Minute, nil), mr
}

func TestFetchJSON_CachesUntilBump(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return payload{Value: calls}, nil
	}

	key, err := c.BuildKey(ctx, "dashboard")
	require.NoError(t, err)
	assert.Equal(t, "reports:dashboard:1", key)

	var got payload
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 1, calls, "segunda lectura sale de Redis")
	assert.Equal(t, 1, got.Value)

	c.Invalidate(ctx)
	key, err = c.BuildKey(ctx, "dashboard")
	require.NoError(t, err)
	assert.Equal(t, "reports:dashboard:2", key)

	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, got.Value)
}

func TestFetchJSON_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	var got payload
	require.NoError(t, c.FetchJSON(ctx, "k", &got, func(context.Context) (any, error) { return payload{Value: 7}, nil }))
	assert.Equal(t, time.Minute, mr.TTL("k"))
}

func TestFetchJSON_LoaderError(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")
	var got payload
	err := c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"), "los errores no se cachean")
}

func TestFetchJSON_RedisDownFallsBackToLoader(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	var got payload
	err := c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) { return payload{Value: 3}, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, got.Value)
}

func TestNilClientPassesThrough(t *testing.T) {
	c := NewReportCache(nil, time.Minute, nil)
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "profit", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "reports:profit:2024-01-01", key)

	var got payload
	require.NoError(t, c.FetchJSON(ctx, key, &got, func(context.Context) (any, error) { return payload{Value: 9}, nil }))
	assert.Equal(t, 9, got.Value)
	assert.NoError(t, c.Bump(ctx))
	c.Invalidate(ctx)
}
