// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"lexmap/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (session archive, AI context).
	CacheClient *redis.Client
	// LocationCacheClient is the dedicated client for per-device location caching.
	LocationCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitLocationCache initializes the Redis client for per-device location caching.
func InitLocationCache() {
	LocationCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLocationDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LocationCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Location Cache): %v", err)
	}
}

// GetLocationCacheClient returns the Redis client for location caching.
func GetLocationCacheClient() *redis.Client {
	if LocationCacheClient == nil {
		InitLocationCache()
	}
	return LocationCacheClient
}

// InitRedis initializes all Redis clients eagerly at startup.
func InitRedis() {
	InitCache()
	InitLocationCache()
}
