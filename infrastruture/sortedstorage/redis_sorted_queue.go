package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-carver/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const trimLockExpiry = 2 * time.Second

// RedisSortedQueue keeps a capped sorted set in Redis with TTL support.
type RedisSortedQueue struct {
	client   *redis.Client
	locker   *redsync.Redsync
	ttl      time.Duration
	capacity int64
}

// NewRedisSortedQueue initializes a RedisSortedQueue holding at most capacity members per key.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int, capacity int64) (i.SortedQueue, error) {
	queue := &RedisSortedQueue{
		client:   client,
		ttl:      time.Duration(ttlSeconds) * time.Second,
		capacity: capacity,
	}
	pool := goredis.NewPool(client)
	queue.locker = redsync.New(pool)
	return queue, nil
}

// Enqueue adds a member with the given score, refreshes the key TTL and drops the lowest
// scores beyond capacity.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	if err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return err
	}
	if rsq.ttl > 0 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}
	if rsq.capacity <= 0 {
		return nil
	}

	mutex := rsq.locker.NewMutex(queueKey+":trim_lock", redsync.WithExpiry(trimLockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		// Another writer holds the trim lock. The set may stay above capacity until a
		// later Enqueue trims it.
		return nil
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	if overflow := rsq.client.ZCard(ctx, queueKey).Val() - rsq.capacity; overflow > 0 {
		return rsq.client.ZRemRangeByRank(ctx, queueKey, 0, overflow-1).Err()
	}
	return nil
}

// Latest returns up to n members with the highest scores, highest first.
func (rsq *RedisSortedQueue) Latest(ctx context.Context, queueKey string, n int64) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return rsq.client.ZRevRange(ctx, queueKey, 0, n-1).Result()
}
