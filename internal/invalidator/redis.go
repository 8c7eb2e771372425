package invalidator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

const (
	DefaultChannel   = "page_cache:invalidate"
	DefaultKeyPrefix = "page_cache:"
)

// Message is published on the invalidation channel.
type Message struct {
	Paths []string `json:"paths"`
}

// RedisInvalidator deletes the host's cached renderings stored under keyPrefix+path
// and announces the paths on a pub/sub channel for the other host nodes.
type RedisInvalidator struct {
	client    *redis.Client
	keyPrefix string
	channel   string
}

// compile-time check: *RedisInvalidator must satisfy port.Invalidator
var _ port.Invalidator = (*RedisInvalidator)(nil)

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func NewRedis(client *redis.Client, keyPrefix, channel string) *RedisInvalidator {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisInvalidator{client: client, keyPrefix: keyPrefix, channel: channel}
}

func (r *RedisInvalidator) Invalidate(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	logger.Debugf(ctx, "invalidating %d path(s) through redis", len(paths))

	payload, err := json.Marshal(Message{Paths: paths})
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = r.keyPrefix + p
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, keys...)
	pipe.Publish(ctx, r.channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis invalidation failed: %w", err)
	}
	return nil
}
