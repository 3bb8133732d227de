package location

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lexmap/models"

	"github.com/go-redis/redis/v8"
)

const locationKeyPrefix = "loc:"

// RedisStore keeps per-device locations in Redis with a TTL so stale fixes
// age out and force a fresh grant.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, deviceID string, loc models.UserLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}
	if err := s.client.Set(ctx, locationKeyPrefix+deviceID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store location: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, deviceID string) (models.UserLocation, bool, error) {
	data, err := s.client.Get(ctx, locationKeyPrefix+deviceID).Result()
	if err == redis.Nil {
		return models.UserLocation{}, false, nil
	}
	if err != nil {
		return models.UserLocation{}, false, fmt.Errorf("failed to fetch location: %w", err)
	}
	var loc models.UserLocation
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		return models.UserLocation{}, false, fmt.Errorf("failed to parse location: %w", err)
	}
	return loc, true, nil
}

// MemoryStore is an in-process Store used when Redis is unavailable and by
// tests.
type MemoryStore struct {
	mu   sync.RWMutex
	locs map[string]models.UserLocation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{locs: make(map[string]models.UserLocation)}
}

func (s *MemoryStore) Put(ctx context.Context, deviceID string, loc models.UserLocation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locs[deviceID] = loc
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, deviceID string) (models.UserLocation, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.UserLocation{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locs[deviceID]
	return loc, ok, nil
}
