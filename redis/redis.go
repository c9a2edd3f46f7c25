package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// InitRedis connects to addr. It returns nil when Redis is unreachable so
// callers can run in a degraded mode.
func InitRedis(ctx context.Context, addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis not available, running without redis")
		_ = client.Close()
		return nil
	}

	log.Info().Str("addr", addr).Msg("redis connected")
	return client
}
