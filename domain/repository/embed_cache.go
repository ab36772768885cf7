package repository

import (
	"context"
	"time"
)

// IEmbedCache stores rendered embed fragments.
type IEmbedCache interface {
	// Get returns the cached fragment. ok is false on a miss.
	Get(ctx context.Context, key string) (html string, ok bool, err error)
	// Set stores the fragment for ttl.
	Set(ctx context.Context, key string, html string, ttl time.Duration) error
}
