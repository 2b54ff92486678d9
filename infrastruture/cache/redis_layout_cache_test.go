package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttlSeconds int) (*RedisLayoutCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c, err := NewRedisLayoutCache(client, ttlSeconds)
	require.NoError(t, err)
	return c.(*RedisLayoutCache), mr
}

func TestNewRedisLayoutCache(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	_, err := NewRedisLayoutCache(client, 0)
	assert.Error(t, err)
}

func TestRedisLayoutCacheGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("miss builds and stores with ttl", func(t *testing.T) {
		c, mr := newTestCache(t, 90)
		builds := 0
		build := func() ([]byte, error) {
			builds++
			return []byte{1, 2, 3}, nil
		}

		layout, err := c.GetOrCreate(ctx, "5x5:0,0:7:newest", build)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, layout)

		stored, err := mr.Get(keyPrefix + "5x5:0,0:7:newest")
		require.NoError(t, err)
		assert.Equal(t, "\x01\x02\x03", stored)
		assert.Equal(t, 90*time.Second, mr.TTL(keyPrefix+"5x5:0,0:7:newest"))
		assert.False(t, mr.Exists(keyPrefix+"5x5:0,0:7:newest"+buildLockSuffix))

		layout, err = c.GetOrCreate(ctx, "5x5:0,0:7:newest", build)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, layout)
		assert.Equal(t, 1, builds)
	})

	t.Run("hit skips build", func(t *testing.T) {
		c, mr := newTestCache(t, 60)
		require.NoError(t, mr.Set(keyPrefix+"k", "cached"))

		layout, err := c.GetOrCreate(ctx, "k", func() ([]byte, error) {
			t.Fatal("build called on a cached key")
			return nil, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []byte("cached"), layout)
	})

	t.Run("build error caches nothing", func(t *testing.T) {
		c, mr := newTestCache(t, 60)
		errBuild := errors.New("build failed")

		_, err := c.GetOrCreate(ctx, "k", func() ([]byte, error) { return nil, errBuild })
		assert.ErrorIs(t, err, errBuild)
		assert.False(t, mr.Exists(keyPrefix+"k"))

		layout, err := c.GetOrCreate(ctx, "k", func() ([]byte, error) { return []byte("ok"), nil })
		require.NoError(t, err)
		assert.Equal(t, []byte("ok"), layout)
	})

	t.Run("concurrent misses build once", func(t *testing.T) {
		c, _ := newTestCache(t, 60)
		var builds atomic.Int32
		build := func() ([]byte, error) {
			builds.Add(1)
			time.Sleep(20 * time.Millisecond)
			return []byte("layout"), nil
		}

		const callers = 4
		var wg sync.WaitGroup
		errs := make([]error, callers)
		layouts := make([][]byte, callers)
		for n := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				layouts[n], errs[n] = c.GetOrCreate(ctx, "shared", build)
			}()
		}
		wg.Wait()

		for n := range callers {
			require.NoError(t, errs[n])
			assert.Equal(t, []byte("layout"), layouts[n])
		}
		assert.Equal(t, int32(1), builds.Load())
	})
}
