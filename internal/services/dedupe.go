package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDeduper remembers inbound message ids so Twilio retries of a
// delivered webhook are processed once.
type RedisDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisDeduper connects to the Redis instance at url.
func NewRedisDeduper(ctx context.Context, url string, ttl time.Duration) (*RedisDeduper, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisDeduperFromClient(client, ttl), nil
}

func NewRedisDeduperFromClient(client *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, prefix: "quotebot:msg:", ttl: ttl}
}

// Seen records id and reports whether it had already been recorded.
func (d *RedisDeduper) Seen(ctx context.Context, id string) (bool, error) {
	fresh, err := d.client.SetNX(ctx, d.prefix+id, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return !fresh, nil
}

func (d *RedisDeduper) Close() error {
	return d.client.Close()
}
