package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a client when REDIS_ADDR is set and the server answers a
// ping, nil otherwise. Callers fall back to the in-memory cache on nil.
func NewRedis(cfg RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
