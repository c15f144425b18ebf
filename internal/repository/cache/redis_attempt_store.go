package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promptly-be/internal/entity"
	"promptly-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

var _ contract.AttemptStore = (*RedisAttemptStore)(nil)

const attemptKeyPrefix = "auth_attempt:"

// RedisAttemptStore keeps attempts as JSON values with a TTL so every API
// replica sees the same pending sign-ins.
type RedisAttemptStore struct {
	client *redis.Client
}

func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{client: client}
}

func attemptKey(id string) string {
	return attemptKeyPrefix + id
}

func (s *RedisAttemptStore) Save(ctx context.Context, attempt *entity.AuthAttempt, ttl time.Duration) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}
	if err := s.client.Set(ctx, attemptKey(attempt.Id), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store attempt in redis: %w", err)
	}
	return nil
}

func (s *RedisAttemptStore) Get(ctx context.Context, id string) (*entity.AuthAttempt, error) {
	data, err := s.client.Get(ctx, attemptKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load attempt from redis: %w", err)
	}

	var attempt entity.AuthAttempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, fmt.Errorf("failed to decode attempt: %w", err)
	}
	return &attempt, nil
}

func (s *RedisAttemptStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, attemptKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete attempt from redis: %w", err)
	}
	return nil
}
