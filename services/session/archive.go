package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lexmap/models"

	"github.com/go-redis/redis/v8"
)

const archiveKeyPrefix = "session:archive:"

// Archive persists closed session snapshots for later inspection.
type Archive interface {
	Save(ctx context.Context, view models.SessionView) error
	Load(ctx context.Context, sessionID string) (*models.SessionView, error)
}

// RedisArchive stores closed sessions in Redis with a TTL.
type RedisArchive struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisArchive(client *redis.Client, ttl time.Duration) *RedisArchive {
	return &RedisArchive{client: client, ttl: ttl}
}

func (a *RedisArchive) Save(ctx context.Context, view models.SessionView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	if err := a.client.Set(ctx, archiveKeyPrefix+view.ID, data, a.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session snapshot: %w", err)
	}
	return nil
}

func (a *RedisArchive) Load(ctx context.Context, sessionID string) (*models.SessionView, error) {
	data, err := a.client.Get(ctx, archiveKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("session %s not found in archive", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session snapshot: %w", err)
	}
	var view models.SessionView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil, fmt.Errorf("failed to parse session snapshot: %w", err)
	}
	return &view, nil
}
