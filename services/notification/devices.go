package notification

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const deviceTokenPrefix = "device:token:"

// RedisDeviceRegistry keeps FCM tokens per device in Redis. Tokens are
// replaced on re-registration; there is no TTL, clients re-register on app
// start anyway.
type RedisDeviceRegistry struct {
	client *redis.Client
}

func NewRedisDeviceRegistry(client *redis.Client) *RedisDeviceRegistry {
	return &RedisDeviceRegistry{client: client}
}

func (r *RedisDeviceRegistry) RegisterToken(ctx context.Context, deviceID, token string) error {
	if deviceID == "" || token == "" {
		return fmt.Errorf("device id and token are required")
	}
	if err := r.client.Set(ctx, deviceTokenPrefix+deviceID, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to register device token: %w", err)
	}
	return nil
}

func (r *RedisDeviceRegistry) Token(ctx context.Context, deviceID string) (string, error) {
	token, err := r.client.Get(ctx, deviceTokenPrefix+deviceID).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("device %s has no registered token", deviceID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch device token: %w", err)
	}
	return token, nil
}
