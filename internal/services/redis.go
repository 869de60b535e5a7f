package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client used for token revocation. Redis is
// optional: when REDIS_URL is unset the service runs without it and logout
// becomes client-side only.
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return fmt.Errorf("REDIS_URL not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	ctx := context.Background()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// RevokeToken blacklists a token id until the token would have expired
// anyway.
func RevokeToken(ctx context.Context, tokenID string, until time.Time) error {
	if RedisClient == nil {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	key := fmt.Sprintf("token:revoked:%s", tokenID)
	return RedisClient.Set(ctx, key, "1", ttl).Err()
}

// TokenRevoked reports whether a token id has been blacklisted. Without
// Redis every token is treated as live.
func TokenRevoked(ctx context.Context, tokenID string) bool {
	if RedisClient == nil || tokenID == "" {
		return false
	}
	key := fmt.Sprintf("token:revoked:%s", tokenID)
	n, err := RedisClient.Exists(ctx, key).Result()
	return err == nil && n > 0
}
