package mapper

import (
	"promptly-be/internal/entity"
	"promptly-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:               u.Id,
		ExternalId:       u.ExternalId,
		Email:            u.Email,
		Name:             u.Name,
		Age:              u.Age,
		Gender:           u.Gender,
		Orientation:      fromJSONSlice(u.Orientation),
		SelectedVibes:    fromJSONSlice(u.SelectedVibes),
		Interests:        fromJSONSlice(u.Interests),
		UniqueInterest:   u.UniqueInterest,
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:               u.Id,
		ExternalId:       u.ExternalId,
		Email:            u.Email,
		Name:             u.Name,
		Age:              u.Age,
		Gender:           u.Gender,
		Orientation:      toJSONSlice(u.Orientation),
		SelectedVibes:    toJSONSlice(u.SelectedVibes),
		Interests:        toJSONSlice(u.Interests),
		UniqueInterest:   u.UniqueInterest,
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) AccountToEntity(a *model.Account) *entity.Account {
	if a == nil {
		return nil
	}
	return &entity.Account{
		Id:              a.Id,
		Email:           a.Email,
		EmailVerifiedAt: a.EmailVerifiedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (m *UserMapper) AccountToModel(a *entity.Account) *model.Account {
	if a == nil {
		return nil
	}
	return &model.Account{
		Id:              a.Id,
		Email:           a.Email,
		EmailVerifiedAt: a.EmailVerifiedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (m *UserMapper) ProviderToEntity(p *model.AccountProvider) *entity.AccountProvider {
	if p == nil {
		return nil
	}
	return &entity.AccountProvider{
		Id:             p.Id,
		AccountId:      p.AccountId,
		ProviderName:   p.ProviderName,
		ProviderUserId: p.ProviderUserId,
		CreatedAt:      p.CreatedAt,
	}
}

func (m *UserMapper) ProviderToModel(p *entity.AccountProvider) *model.AccountProvider {
	if p == nil {
		return nil
	}
	return &model.AccountProvider{
		Id:             p.Id,
		AccountId:      p.AccountId,
		ProviderName:   p.ProviderName,
		ProviderUserId: p.ProviderUserId,
		CreatedAt:      p.CreatedAt,
	}
}

// nil stays nil so "never answered" survives a round trip through the row.
func toJSONSlice(v []string) datatypes.JSONSlice[string] {
	if v == nil {
		return nil
	}
	return datatypes.JSONSlice[string](v)
}

func fromJSONSlice(v datatypes.JSONSlice[string]) []string {
	if v == nil {
		return nil
	}
	return []string(v)
}
