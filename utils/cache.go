package utils

import (
	"context"
	"fmt"
	"time"

	"sopwriter/config"

	"github.com/go-redis/redis/v8"
)

// NewArchiveRedisClient connects to the Redis DB that holds archived statements.
func NewArchiveRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisArchiveDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (archive): %w", err)
	}
	return client, nil
}
