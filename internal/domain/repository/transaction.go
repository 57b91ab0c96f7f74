package repository

import "context"

// TransactionManager runs multi-step writes (signup, batch creation, cascade
// deletes) atomically.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	NewAccountRepository() AccountRepository
	NewStoreRepository() StoreRepository
	NewStoreMemberRepository() StoreMemberRepository
	NewProductTemplateRepository() ProductTemplateRepository
	NewBatchRepository() BatchRepository
	NewProductItemRepository() ProductItemRepository
}
