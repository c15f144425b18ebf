package unitofwork

import (
	"context"

	"promptly-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AccountRepository() contract.AccountRepository
	PromptRepository() contract.PromptRepository
	PromptUsageRepository() contract.PromptUsageRepository
}
