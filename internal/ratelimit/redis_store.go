package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore counts windows in Redis, so limits hold across replicas of the
// service. Keys live exactly one window: INCR + PTTL in one pipeline, with the
// expiry attached when the INCR opened the window.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

func (s *RedisStore) Incr(ctx context.Context, key Key, ttl time.Duration) (int64, time.Time, error) {
	k := s.prefix + string(key)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit incr: %w", err)
	}

	count := incr.Val()
	remaining := pttl.Val()
	if count == 1 || remaining < 0 {
		// First hit in the window, or a key left without expiry.
		if err := s.client.PExpire(ctx, k, ttl).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("ratelimit expire: %w", err)
		}
		remaining = ttl
	}
	return count, time.Now().Add(remaining), nil
}
