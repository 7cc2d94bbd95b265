package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/voicepost-team/voicepost/pkg/config"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisStore is a Redis-backed string store. A zero ttl stores the key
// without expiry.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a RedisStore
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// Get retrieves a value by key
func (rs *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := rs.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		rs.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// Set stores a key-value pair. Write failures are logged, not returned;
// the store is a cache and callers must work without it.
func (rs *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if err := rs.client.Set(ctx, key, value, ttl).Err(); err != nil {
		rs.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}
