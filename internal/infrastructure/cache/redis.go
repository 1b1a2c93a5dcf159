package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/infrastructure/config"
)

// Cache is a thin redis wrapper with key prefixing and a default TTL.
// Entries are replaced whole; readers never observe a partial update.
type Cache struct {
	client     *redis.Client
	logger     *zap.Logger
	prefix     string
	defaultTTL time.Duration
}

// NewCache connects to redis and returns the cache
func NewCache(cfg config.RedisConfig, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{
		client:     client,
		logger:     logger,
		prefix:     "folio:",
		defaultTTL: 1 * time.Hour,
	}, nil
}

// Get returns the value for key, or empty string on a miss
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores value under key with the given TTL (default TTL when zero)
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Del removes a key
func (c *Cache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Client exposes the underlying redis client for health checks
func (c *Cache) Client() redis.UniversalClient {
	return c.client
}

// Close releases the redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
