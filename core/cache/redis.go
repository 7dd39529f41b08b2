package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const tagPrefix = "tag:"

// RedisStore is a Store backed by Redis. Tags are Redis sets of member keys.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, prefix string, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (r *RedisStore) key(k string) string {
	return r.prefix + k
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return b, true
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(key), value, ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, r.key(tagPrefix+tag), r.key(key))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		r.logger.Warn("redis delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (r *RedisStore) DeleteByTag(ctx context.Context, tag string) {
	tagKey := r.key(tagPrefix + tag)
	members, err := r.client.SMembers(ctx, tagKey).Result()
	if err != nil {
		r.logger.Warn("redis tag lookup failed", zap.String("tag", tag), zap.Error(err))
		return
	}
	members = append(members, tagKey)
	if err := r.client.Del(ctx, members...).Err(); err != nil {
		r.logger.Warn("redis tag delete failed", zap.String("tag", tag), zap.Error(err))
	}
}
