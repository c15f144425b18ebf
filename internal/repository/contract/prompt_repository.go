package contract

import (
	"context"

	"promptly-be/internal/entity"
	"promptly-be/internal/repository/specification"
)

type PromptRepository interface {
	Create(ctx context.Context, prompt *entity.Prompt) error
	Update(ctx context.Context, prompt *entity.Prompt) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type PromptUsageRepository interface {
	Create(ctx context.Context, record *entity.PromptUsageRecord) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
