package cache

import (
	"context"
	"fmt"
	"time"

	"yt-embed/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to redis and pings it once. The client is returned even
// when the ping fails so callers can decide whether to keep it.
func NewCache(ctx context.Context, addr, username, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"addr": addr, "error": err}).Warn("Redis ping failed")
		return client, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	logger.GetLogger().WithField("addr", addr).Info("Redis connected")
	return client, nil
}
