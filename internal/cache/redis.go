package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/postline/postline/pkg/config"
	"github.com/postline/postline/pkg/logging"
)

// ErrCacheDisabled is returned when cache operations are attempted but
// Redis is not configured
var ErrCacheDisabled = fmt.Errorf("cache is disabled")

// Redis is a response cache backed by a Redis instance. Unlike the
// in-process Slot it survives restarts and is shared across replicas.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed response cache. Returns (nil, nil) when
// Redis is disabled in the configuration.
func NewRedis(cfg *config.RedisConfig, ttl time.Duration) (*Redis, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Redis{
		client: client,
		ttl:    ttl,
	}, nil
}

// namespaceKey prefixes keys to keep the instance shareable
func (c *Redis) namespaceKey(key string) string {
	return "postline:" + key
}

// Get returns the cached response for key, if present. Redis enforces the
// window itself via key expiry.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, c.namespaceKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a response under key with the configured TTL
func (c *Redis) Set(ctx context.Context, key string, value []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, c.namespaceKey(key), value, c.ttl).Err(); err != nil {
		logging.GetLogger().Sugar().Warnf("cache set failed: %v", err)
	}
}

// Clear removes all cached responses in the namespace
func (c *Redis) Clear(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, c.namespaceKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}

// Close closes the Redis connection
func (c *Redis) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health checks Redis health
func (c *Redis) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Ping(ctx).Err()
}
