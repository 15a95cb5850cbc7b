package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Nickzanarak/Edu/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to redis using the given configuration and
// verifies the connection with a ping before returning.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return client, nil
}
