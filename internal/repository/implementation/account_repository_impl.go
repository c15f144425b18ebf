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

type AccountRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewAccountRepository(db *gorm.DB) contract.AccountRepository {
	return &AccountRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *entity.Account) error {
	m := r.mapper.AccountToModel(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.AccountToEntity(m)
	return nil
}

func (r *AccountRepositoryImpl) Update(ctx context.Context, account *entity.Account) error {
	m := r.mapper.AccountToModel(account)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.AccountToEntity(m)
	return nil
}

func (r *AccountRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	m, err := first[model.Account](ctx, r.db, specs...)
	if err != nil || m == nil {
		return nil, err
	}
	return r.mapper.AccountToEntity(m), nil
}

func (r *AccountRepositoryImpl) SaveProvider(ctx context.Context, provider *entity.AccountProvider) error {
	m := r.mapper.ProviderToModel(provider)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*provider = *r.mapper.ProviderToEntity(m)
	return nil
}

func (r *AccountRepositoryImpl) FindProvider(ctx context.Context, specs ...specification.Specification) (*entity.AccountProvider, error) {
	m, err := first[model.AccountProvider](ctx, r.db, specs...)
	if err != nil || m == nil {
		return nil, err
	}
	return r.mapper.ProviderToEntity(m), nil
}
