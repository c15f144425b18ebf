package memory

import (
	"context"
	"time"

	"promptly-be/internal/entity"
	"promptly-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

var _ contract.AttemptStore = (*AttemptStore)(nil)

// AttemptStore is the in-process fallback used when Redis is not configured.
type AttemptStore struct {
	cache *cache.Cache
}

func NewAttemptStore() *AttemptStore {
	// Attempts default to 15 minutes; expired items are purged every 10 minutes.
	c := cache.New(15*time.Minute, 10*time.Minute)
	return &AttemptStore{
		cache: c,
	}
}

func (s *AttemptStore) Save(_ context.Context, attempt *entity.AuthAttempt, ttl time.Duration) error {
	stored := *attempt
	s.cache.Set(attempt.Id, &stored, ttl)
	return nil
}

func (s *AttemptStore) Get(_ context.Context, id string) (*entity.AuthAttempt, error) {
	if x, found := s.cache.Get(id); found {
		attempt := *x.(*entity.AuthAttempt)
		return &attempt, nil
	}
	return nil, nil
}

func (s *AttemptStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
