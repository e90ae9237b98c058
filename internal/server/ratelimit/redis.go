package ratelimit

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "eventhub:signin:"

// RedisLimiter counts attempts in a fixed window per key. Redis failures
// fail open so an unavailable cache never locks users out.
type RedisLimiter struct {
	client   *redis.Client
	logger   logging.Logger
	attempts int
	window   time.Duration
	timeout  time.Duration
}

// NewRedisLimiter connects to addr and verifies the connection with PING.
func NewRedisLimiter(ctx context.Context, addr string, attempts int, window time.Duration, logger logging.Logger) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return newRedisLimiter(client, attempts, window, logger), nil
}

func newRedisLimiter(client *redis.Client, attempts int, window time.Duration, logger logging.Logger) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		client:   client,
		logger:   logger.With("module", "ratelimit"),
		attempts: attempts,
		window:   window,
		timeout:  250 * time.Millisecond,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) Decision {
	if l.attempts <= 0 {
		return Decision{Allowed: true}
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	redisKey := redisKeyPrefix + key
	n, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Error(ctx, "redis rate limiter error", "op", "incr", "error", err)
		return Decision{Allowed: true}
	}
	if n == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			l.logger.Error(ctx, "redis rate limiter error", "op", "expire", "error", err)
		}
	}
	if n <= int64(l.attempts) {
		return Decision{Allowed: true}
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return Decision{Allowed: false, RetryAfter: ttl}
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
