package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisWithClient(client)
}

func TestGetSet(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v", 0))

	got, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestGetMissingKey(t *testing.T) {
	r := newTestRedis(t)

	got, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetWithTTL(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v", 5*time.Second))

	got, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestGetMulti(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetMulti(ctx, map[string]string{"a": "1", "b": "2"}))

	m, err := r.GetMulti(ctx, []string{"a", "b", "missing"})
	require.NoError(t, err)
	assert.Equal(t, "1", m["a"])
	assert.Equal(t, "2", m["b"])
	assert.Empty(t, m["missing"], "missing key should map to empty string")
}

func TestGetMultiEmpty(t *testing.T) {
	r := newTestRedis(t)

	m, err := r.GetMulti(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestListOps(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.LPush(ctx, "history", "first", "second"))

	n, err := r.LLen(ctx, "history")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	vals, err := r.LRange(ctx, "history", 0, -1)
	require.NoError(t, err)
	// LPUSH prepends, so "second" comes out first
	assert.Equal(t, []string{"second", "first"}, vals)

	require.NoError(t, r.LTrim(ctx, "history", 0, 0))

	n, err = r.LLen(ctx, "history")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLRangeMissingKey(t *testing.T) {
	r := newTestRedis(t)

	vals, err := r.LRange(context.Background(), "absent", 0, -1)
	require.NoError(t, err)
	assert.Empty(t, vals)
}
