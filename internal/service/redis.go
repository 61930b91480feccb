package service

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis for cross-instance cache invalidation.
// If redisURL is empty or the connection fails it returns nil and the
// engine runs with per-instance invalidation only.
func NewRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("redis: no URL configured, cross-instance invalidation disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, cross-instance invalidation disabled: %v", redisURL, err)
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, cross-instance invalidation disabled: %v", err)
		return nil
	}

	log.Println("redis: connected")
	return rdb
}
