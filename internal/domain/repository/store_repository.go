package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrStoreNotFound is returned when a store does not exist.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository persists stores.
type StoreRepository interface {
	CreateStore(ctx context.Context, store *entity.Store) error
	FindStoreByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindStoresByOwner returns the stores owned by the account, oldest first.
	FindStoresByOwner(ctx context.Context, ownerAccountID uuid.UUID) ([]*entity.Store, error)

	UpdateStore(ctx context.Context, store *entity.Store) error
	DeleteStore(ctx context.Context, id uuid.UUID) error
}
