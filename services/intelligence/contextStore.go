// File: services/intelligence/contextStore.go
package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// ChatContext is the rolling conversation history kept per entity so the
// generated replies stay coherent across messages.
type ChatContext struct {
	Turns []ChatTurn `json:"turns"`
}

// ChatTurn is one prompt/reply pair.
type ChatTurn struct {
	Prompt string `json:"prompt"`
	Reply  string `json:"reply"`
}

// maxContextTurns bounds the history carried into each generation.
const maxContextTurns = 10

type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, entityID string) (*ChatContext, error) {
	key := chatContextPrefix + entityID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &ChatContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var chatCtx ChatContext
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, err
	}
	return &chatCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, entityID string, chatCtx *ChatContext) error {
	if len(chatCtx.Turns) > maxContextTurns {
		chatCtx.Turns = chatCtx.Turns[len(chatCtx.Turns)-maxContextTurns:]
	}
	key := chatContextPrefix + entityID
	b, err := json.Marshal(chatCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, entityID string) error {
	key := chatContextPrefix + entityID
	return s.client.Del(ctx, key).Err()
}
