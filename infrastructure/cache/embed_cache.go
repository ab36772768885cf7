package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yt-embed/domain/repository"

	"github.com/redis/go-redis/v9"
)

// EmbedCache keeps rendered embed fragments in redis.
type EmbedCache struct {
	client *redis.Client
	prefix string
}

func NewEmbedCache(client *redis.Client, prefix string) repository.IEmbedCache {
	return &EmbedCache{client: client, prefix: prefix}
}

func (c *EmbedCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c.client == nil {
		return "", false, nil
	}
	html, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get embed %s: %w", key, err)
	}
	return html, true, nil
}

func (c *EmbedCache) Set(ctx context.Context, key string, html string, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, c.prefix+key, html, ttl).Err(); err != nil {
		return fmt.Errorf("set embed %s: %w", key, err)
	}
	return nil
}
