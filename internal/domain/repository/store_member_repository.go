package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrStoreMemberNotFound is returned when a store member does not exist.
var ErrStoreMemberNotFound = errors.New("store member not found")

// StoreMemberRepository persists store members. (store, email) and
// (store, owner account) are unique.
type StoreMemberRepository interface {
	// CreateMember returns ErrDuplicateEmail when the email exists in the store.
	CreateMember(ctx context.Context, member *entity.StoreMember) error

	FindMemberByID(ctx context.Context, id uuid.UUID) (*entity.StoreMember, error)

	// FindMemberByAccount returns the member row linked to the account in the
	// store. A nil storeID returns the account's oldest member row.
	FindMemberByAccount(ctx context.Context, accountID, storeID uuid.UUID) (*entity.StoreMember, error)

	// FindMemberByEmail matches the email case-insensitively. A nil storeID
	// returns the oldest match across stores.
	FindMemberByEmail(ctx context.Context, email string, storeID uuid.UUID) (*entity.StoreMember, error)

	// FindMembersByStore returns the store's members, newest first.
	FindMembersByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.StoreMember, error)

	UpdateMember(ctx context.Context, member *entity.StoreMember) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
}
