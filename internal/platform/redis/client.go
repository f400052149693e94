// Package redis opens the optional Redis connection backing the rebate cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"greentax/internal/platform/config"
)

const healthTimeout = 2 * time.Second

// Client is the shared connection. It embeds the go-redis client so callers
// such as the rebate cache use it directly.
type Client struct {
	*redis.Client
}

// New connects and pings. An empty URL means the cache is disabled and
// yields a nil client with no error.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &Client{Client: rdb}, nil
}

// options layers the non-zero config values over what the URL specifies.
func options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	setIfPositive(&opts.PoolSize, cfg.PoolSize)
	setIfPositive(&opts.MinIdleConns, cfg.MinIdleConns)
	setIfPositive(&opts.DialTimeout, cfg.DialTimeout)
	setIfPositive(&opts.ReadTimeout, cfg.ReadTimeout)
	setIfPositive(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func setIfPositive[T int | time.Duration](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}

// Health pings with a short deadline so /health never hangs on Redis.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	return c.Ping(ctx).Err()
}
