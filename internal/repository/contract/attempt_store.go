package contract

import (
	"context"
	"time"

	"promptly-be/internal/entity"
)

// AttemptStore keeps pending auth attempts until they complete or expire.
// Get returns nil, nil for unknown or expired ids.
type AttemptStore interface {
	Save(ctx context.Context, attempt *entity.AuthAttempt, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.AuthAttempt, error)
	Delete(ctx context.Context, id string) error
}
