package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisBackend adapts go-redis to the backend contract.
type redisBackend struct {
	client *redis.Client
}

func newRedisBackend(cfg *Config) *redisBackend {
	return &redisBackend{
		client: redis.NewClient(&redis.Options{
			Addr:         cfg.GetAddr(),
			Password:     cfg.Password,
			DB:           cfg.Database,
			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConns,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			DialTimeout:  cfg.DialTimeout,
		}),
	}
}

func (b *redisBackend) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	result := b.client.Get(ctx, key)
	if result.Err() == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("redis get error: %w", result.Err())
	}
	return []byte(result.Val()), nil
}

func (b *redisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

// DeletePrefix removes keys under a prefix using SCAN instead of KEYS.
// SCAN is non-blocking and production-safe, unlike KEYS which blocks the
// Redis server.
func (b *redisBackend) DeletePrefix(ctx context.Context, prefix string) error {
	pattern := prefix + "*"
	var cursor uint64
	const scanBatchSize = 100 // Process keys in batches

	for {
		batch, next, err := b.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys with prefix %s: %w", prefix, err)
		}

		// Delete keys in batches to avoid large atomic operations
		if len(batch) > 0 {
			if err := b.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete batch: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

func (b *redisBackend) Close() error {
	return b.client.Close()
}
