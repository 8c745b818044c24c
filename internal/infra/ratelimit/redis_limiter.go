// Package ratelimit implements the shared request-budget counter on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"muziris/config"
	"muziris/internal/domain/service"
)

// redisLimiter is a fixed-window counter. INCR is atomic on the server, so
// the budget holds across all service instances sharing the Redis.
type redisLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

// Params defines the dependencies for the rate limiter.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// NewRedisLimiter builds the limiter used by the admin sign-in link endpoint.
func NewRedisLimiter(params Params) (service.RateLimiter, error) {
	cfg := params.Config.RateLimit
	if cfg == nil || cfg.RedisAddr == "" {
		return nil, errors.New("rate limit redis address must be provided")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return &redisLimiter{
		client: client,
		prefix: "ratelimit:admin-link",
		max:    cfg.AdminLinkMax,
		window: cfg.AdminLinkWindow,
	}, nil
}

// Allow consumes one unit for the key and reports whether the caller is still
// inside the window's budget. The expiry is set when the window opens, so the
// counter resets itself without a sweeper.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.client.Incr(ctx, bucket).Result()
	if err != nil {
		return false, errors.Wrap(err, "incr rate limit counter")
	}

	if count == 1 {
		if err := l.client.Expire(ctx, bucket, l.window).Err(); err != nil {
			return false, errors.Wrap(err, "set rate limit window expiry")
		}
	}

	return count <= int64(l.max), nil
}
