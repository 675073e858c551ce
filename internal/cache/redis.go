package cache

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"shopLens/domain"
	"shopLens/pkg/logger"
)

// RedisStore keeps cached bytes in redis so entries survive restarts and
// are shared between instances. Redis errors degrade to cache misses.
type RedisStore struct {
	client *redis.Client
	hits   int64
	misses int64
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("redis cache get failed", "key", key, "error", err)
		}

		atomic.AddInt64(&s.misses, 1)

		return nil, false
	}

	atomic.AddInt64(&s.hits, 1)

	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	// Redis treats expiration 0 as "keep forever"; this store treats a
	// non-positive ttl as already expired, like the memory driver.
	if ttl <= 0 {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			logger.Warn("redis cache del failed", "key", key, "error", err)
		}

		return
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn("redis cache set failed", "key", key, "error", err)
	}
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}

func (s *RedisStore) Stats(ctx context.Context) (domain.CacheStats, error) {
	stats := domain.CacheStats{
		Backend: "redis",
		Hits:    atomic.LoadInt64(&s.hits),
		Misses:  atomic.LoadInt64(&s.misses),
	}

	entries, err := s.client.DBSize(ctx).Result()
	if err != nil {
		return stats, err
	}

	stats.Entries = entries

	info, err := s.client.Info(ctx, "memory").Result()
	if err != nil {
		return stats, err
	}

	for _, line := range strings.Split(info, "\r\n") {
		if rest, ok := strings.CutPrefix(line, "used_memory:"); ok {
			if bytes, err := strconv.ParseInt(rest, 10, 64); err == nil {
				stats.Bytes = bytes
			}

			break
		}
	}

	return stats, nil
}
