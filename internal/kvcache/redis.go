// Package kvcache keeps the flags other relay tooling reads out of redis:
// passport grants and per-kind push toggles.
package kvcache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

// Open connects to redis and verifies the connection with a ping.
func Open(ctx context.Context, addr, password string, db int) (*Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{Client: c}, nil
}

// SetPassport records a relay passport for the pubkey, valid until the
// given time. The value is the expiry as epoch milliseconds.
func (c *Client) SetPassport(ctx context.Context, pubkey string, until time.Time) error {
	key := "passport-" + pubkey
	return c.Set(ctx, key, until.UnixMilli(), time.Until(until)).Err()
}

// SetPushFlag toggles push delivery of one event kind for the pubkey.
func (c *Client) SetPushFlag(ctx context.Context, pubkey string, kind int, enabled bool) error {
	key := fmt.Sprintf("push-%s-%d", pubkey, kind)
	val := "0"
	if enabled {
		val = "1"
	}
	return c.Set(ctx, key, val, 0).Err()
}
