package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache is a JSON value cache. A nil client turns every call into a miss,
// so services keep working when Redis is down.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get decodes the value under key into dest. It reports false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key for ttl. Failures are logged and dropped.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// GetVersion reads a version counter, 0 when unset.
func (c *Cache) GetVersion(ctx context.Context, key string) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// IncrementVersion bumps a version counter so keys derived from the old
// version are never read again.
func (c *Cache) IncrementVersion(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache version bump failed")
	}
}
