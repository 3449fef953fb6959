package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewFromRedis(rdb, time.Minute), mr
}

func TestAsideCachesFetchedValue(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]string) func() error {
		return func() error {
			calls++
			*dest = []string{"a", "b"}
			return nil
		}
	}

	var first []string
	require.NoError(t, c.Aside(ctx, Key("posts", "trending", 10), &first, fetch(&first)))
	var second []string
	require.NoError(t, c.Aside(ctx, Key("posts", "trending", 10), &second, fetch(&second)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"a", "b"}, second)
	assert.True(t, mr.Exists("posts:trending:10"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("posts:trending:10"))
}

func TestAsideDoesNotCacheErrors(t *testing.T) {
	c, mr := newTestClient(t)
	var dest []string

	err := c.Aside(context.Background(), "posts:featured:10", &dest, func() error { return errors.New("db down") })
	assert.EqualError(t, err, "db down")
	assert.False(t, mr.Exists("posts:featured:10"))
}

func TestAsideFallsBackWhenRedisIsDown(t *testing.T) {
	c, mr := newTestClient(t)
	mr.Close()

	var dest []string
	err := c.Aside(context.Background(), "categories", &dest, func() error {
		dest = []string{"DeFi"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DeFi"}, dest)
}

func TestInvalidateByPrefix(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("posts:trending:10", "[]"))
	require.NoError(t, mr.Set("posts:featured:5", "[]"))
	require.NoError(t, mr.Set("categories", "[]"))

	c.Invalidate(ctx, PrefixPosts)

	assert.False(t, mr.Exists("posts:trending:10"))
	assert.False(t, mr.Exists("posts:featured:5"))
	assert.True(t, mr.Exists("categories"))
}

func TestNilClientPassesThrough(t *testing.T) {
	var c *Client
	var dest int
	require.NoError(t, c.Aside(context.Background(), "k", &dest, func() error {
		dest = 42
		return nil
	}))
	assert.Equal(t, 42, dest)
	c.Invalidate(context.Background(), PrefixPosts)
	assert.NoError(t, c.Close())
}
