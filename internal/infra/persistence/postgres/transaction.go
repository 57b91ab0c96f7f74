// Package postgres implements the domain repositories on GORM and PostgreSQL.
package postgres

import (
	"context"

	"warranty/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormTransactionManager implements repository.TransactionManager.
type gormTransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn inside one transaction. The transaction commits only when
// fn returns nil; errors from fn come back unchanged so callers can match
// domain sentinels, and a panic in fn rolls back before propagating.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txRepositories{tx: tx})

		return fnErr
	})
	if err != nil && fnErr == nil {
		return errors.Wrap(err, "transaction failed")
	}

	return err
}

// txRepositories builds repositories bound to one transaction.
type txRepositories struct {
	tx *gorm.DB
}

func (f txRepositories) NewAccountRepository() repository.AccountRepository {
	return NewAccountRepository(f.tx)
}

func (f txRepositories) NewStoreRepository() repository.StoreRepository {
	return NewStoreRepository(f.tx)
}

func (f txRepositories) NewStoreMemberRepository() repository.StoreMemberRepository {
	return NewStoreMemberRepository(f.tx)
}

func (f txRepositories) NewProductTemplateRepository() repository.ProductTemplateRepository {
	return NewProductTemplateRepository(f.tx)
}

func (f txRepositories) NewBatchRepository() repository.BatchRepository {
	return NewBatchRepository(f.tx)
}

func (f txRepositories) NewProductItemRepository() repository.ProductItemRepository {
	return NewProductItemRepository(f.tx)
}
