package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores entries as storage:<scope>:<key>; expiry is handled
// by Redis itself.
type RedisBackend struct {
	Client *redis.Client
	TTL    time.Duration
}

func redisKey(scope, key string) string {
	return "storage:" + scope + ":" + key
}

func (b RedisBackend) Get(ctx context.Context, scope, key string) (string, bool, error) {
	v, err := b.Client.Get(ctx, redisKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (b RedisBackend) Set(ctx context.Context, scope, key, value string) error {
	if err := b.Client.Set(ctx, redisKey(scope, key), value, b.TTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b RedisBackend) Remove(ctx context.Context, scope, key string) error {
	if err := b.Client.Del(ctx, redisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
