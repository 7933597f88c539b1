package myredis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-redis/redis/v8"
)

type RedisConfig struct {
	Addr string
}

// NewRedisUniversalClient creates and configures instance of redis universal client.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{redisOptions.Addr},
		DB:           redisOptions.DB,
		Username:     redisOptions.Username,
		Password:     redisOptions.Password,
		DialTimeout:  redisOptions.DialTimeout,
		ReadTimeout:  redisOptions.ReadTimeout,
		WriteTimeout: redisOptions.WriteTimeout,
		MaxRetries:   redisOptions.MaxRetries,
		PoolSize:     redisOptions.PoolSize,
		MinIdleConns: redisOptions.MinIdleConns,
		TLSConfig:    redisOptions.TLSConfig,
	}), nil
}

// ConfigOption configures the client.
type ConfigOption func(*redis.Options)

// WaitReady pings the server with exponential backoff until it answers or maxElapsed passes.
func WaitReady(ctx context.Context, client redis.UniversalClient, maxElapsed time.Duration, logger log.Logger) error {
	_, err := backoff.Retry(ctx, func() (string, error) {
		return client.Ping(ctx).Result()
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			_ = level.Warn(logger).Log("msg", "redis not ready", "retry_in", next, "err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("redis not ready after %s: %w", maxElapsed, err)
	}
	return nil
}
