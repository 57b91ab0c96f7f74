// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
)

// IdentityUsecase turns bearer tokens into principals and answers the
// tenancy questions every store-scoped operation asks.
type IdentityUsecase interface {
	// ResolveIdentity validates the token and resolves the store scope.
	// storeHint is uuid.Nil when the client sent none.
	ResolveIdentity(ctx context.Context, token string, storeHint uuid.UUID) (entity.Principal, error)

	// AuthorizeStoreAdmin is the predicate for privileged store mutations.
	AuthorizeStoreAdmin(ctx context.Context, principal entity.Principal, storeID uuid.UUID) error

	// AuthorizeStoreAccess allows any role of the store.
	AuthorizeStoreAccess(ctx context.Context, principal entity.Principal, storeID uuid.UUID) error
}
