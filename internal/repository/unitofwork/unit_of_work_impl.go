package unitofwork

import (
	"context"
	"errors"

	"promptly-be/internal/repository/contract"
	"promptly-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTxActive   = errors.New("transaction already started")
	ErrTxInactive = errors.New("no active transaction")
)

// UnitOfWorkImpl hands out repositories bound either to the base connection
// or, between Begin and Commit/Rollback, to the open transaction.
type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUnitOfWork binds db to ctx so repository queries issued outside a
// transaction are still cancelled with the request.
func NewUnitOfWork(ctx context.Context, db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{db: db.WithContext(ctx)}
}

func (u *UnitOfWorkImpl) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return ErrTxInactive
	}
	tx := u.tx
	u.tx = nil
	return tx.Commit().Error
}

// Rollback is safe to defer: once the transaction has been committed it does
// nothing.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	return tx.Rollback().Error
}

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.conn())
}

func (u *UnitOfWorkImpl) AccountRepository() contract.AccountRepository {
	return implementation.NewAccountRepository(u.conn())
}

func (u *UnitOfWorkImpl) PromptRepository() contract.PromptRepository {
	return implementation.NewPromptRepository(u.conn())
}

func (u *UnitOfWorkImpl) PromptUsageRepository() contract.PromptUsageRepository {
	return implementation.NewPromptUsageRepository(u.conn())
}
