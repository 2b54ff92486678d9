package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-carver/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix        = "carver:layout:"
	buildLockSuffix  = ":build_lock"
	buildLockExpiry  = 10 * time.Second
	buildLockRetries = 50
)

// RedisLayoutCache caches encoded maze layouts. A layout is fully determined by its key, so
// concurrent misses on one key are serialized and only the first builds it.
type RedisLayoutCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisLayoutCache creates a cache whose entries expire after ttlSeconds.
func NewRedisLayoutCache(client *redis.Client, ttlSeconds int) (i.LayoutCache, error) {
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("layout cache ttl must be positive, got %d", ttlSeconds)
	}
	return &RedisLayoutCache{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// GetOrCreate implements i.LayoutCache.
func (c *RedisLayoutCache) GetOrCreate(ctx context.Context, key string, build func() ([]byte, error)) ([]byte, error) {
	redisKey := keyPrefix + key
	if layout, ok, err := c.get(ctx, redisKey); err != nil || ok {
		return layout, err
	}

	mutex := c.locker.NewMutex(redisKey+buildLockSuffix,
		redsync.WithExpiry(buildLockExpiry),
		redsync.WithTries(buildLockRetries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("locking layout %s: %w", key, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	// Someone may have built it while we waited for the lock.
	if layout, ok, err := c.get(ctx, redisKey); err != nil || ok {
		return layout, err
	}

	layout, err := build()
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, redisKey, layout, c.ttl).Err(); err != nil {
		return nil, fmt.Errorf("caching layout %s: %w", key, err)
	}
	return layout, nil
}

func (c *RedisLayoutCache) get(ctx context.Context, redisKey string) ([]byte, bool, error) {
	layout, err := c.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return layout, true, nil
}
