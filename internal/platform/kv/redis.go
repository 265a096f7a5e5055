package kv

import (
	"context"
	"fmt"
	"log/slog"

	"practice_tracker/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil, nil when no REDIS_ADDR is configured; callers fall
// back to in-process form sessions in that case.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	slog.Info("Successfully connected to Redis", "addr", cfg.RedisAddr)
	return rdb, nil
}

func CloseRedis(rdb *redis.Client) {
	if rdb != nil {
		rdb.Close()
		slog.Info("Redis connection closed")
	}
}
