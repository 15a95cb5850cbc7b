package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/Nickzanarak/Edu/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCacheAdapter adapts a redis client to the domain cache port.
type RedisCacheAdapter struct {
	client *redis.Client
}

func NewRedisCacheAdapter(client *redis.Client) *RedisCacheAdapter {
	return &RedisCacheAdapter{client: client}
}

var _ domain.Cache = (*RedisCacheAdapter)(nil)

func (a *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := a.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (a *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return a.client.Set(ctx, key, value, expiration).Err()
}

func (a *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

func (a *RedisCacheAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}
