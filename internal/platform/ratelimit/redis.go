package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Limiter with a fixed window counter per key (INCR + EXPIRE NX),
// shared by every instance of the service.
type Redis struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedis creates a Redis limiter. If prefix is empty, it uses "signup_attempts".
func NewRedis(client *redis.Client, prefix string, limit int, window time.Duration) *Redis {
	if prefix == "" {
		prefix = "signup_attempts"
	}
	return &Redis{client: client, prefix: prefix, limit: limit, window: window}
}

func (r *Redis) key(k string) string {
	return fmt.Sprintf("%s:%s", r.prefix, k)
}

// Allow counts one attempt for key and reports whether it is within the limit.
// Every hit sends INCR and EXPIRE NX in one MULTI; a key never stays without a TTL
// past the next attempt. EXPIRE NX needs Redis 7.0 or later.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.key(key)
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, r.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("count attempt %s: %w", k, err)
	}
	return incr.Val() <= int64(r.limit), nil
}
