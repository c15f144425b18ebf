package implementation

import (
	"context"

	"promptly-be/internal/entity"
	"promptly-be/internal/mapper"
	"promptly-be/internal/model"
	"promptly-be/internal/repository/contract"
	"promptly-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PromptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromptMapper
}

func NewPromptRepository(db *gorm.DB) contract.PromptRepository {
	return &PromptRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromptMapper(),
	}
}

func (r *PromptRepositoryImpl) Create(ctx context.Context, prompt *entity.Prompt) error {
	m := r.mapper.ToModel(prompt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*prompt = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromptRepositoryImpl) Update(ctx context.Context, prompt *entity.Prompt) error {
	m := r.mapper.ToModel(prompt)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*prompt = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromptRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error) {
	m, err := first[model.Prompt](ctx, r.db, specs...)
	if err != nil || m == nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *PromptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error) {
	rows, err := find[model.Prompt](ctx, r.db, specs...)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *PromptRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return count[model.Prompt](ctx, r.db, specs...)
}

type PromptUsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromptMapper
}

func NewPromptUsageRepository(db *gorm.DB) contract.PromptUsageRepository {
	return &PromptUsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromptMapper(),
	}
}

func (r *PromptUsageRepositoryImpl) Create(ctx context.Context, record *entity.PromptUsageRecord) error {
	m := r.mapper.UsageToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.UsageToEntity(m)
	return nil
}

func (r *PromptUsageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return count[model.PromptUsageRecord](ctx, r.db, specs...)
}
