// README: Redis client initialization for the shared geocode cache.
package infra

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"travelapi/internal/config"
)

func NewRedis(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
