package usecase

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
)

// StoreInput carries the editable store fields. Nil pointers are left unchanged.
type StoreInput struct {
	StoreName       *string
	Address         *string
	ContactPhone    *string
	SerialPrefix    *string
	SerialSuffix    *string
	WhatsAppEnabled *bool
	WhatsAppNumber  *string
	// StoreLogo is either a URL or a base64 data URI to upload.
	StoreLogo *string
}

// StoreUsecase manages stores visible to the caller.
type StoreUsecase interface {
	List(ctx context.Context, principal entity.Principal) ([]*entity.Store, error)
	Create(ctx context.Context, principal entity.Principal, input *StoreInput) (*entity.Store, error)
	Get(ctx context.Context, principal entity.Principal, storeID uuid.UUID) (*entity.Store, error)
	Update(ctx context.Context, principal entity.Principal, storeID uuid.UUID, input *StoreInput) (*entity.Store, error)
	Delete(ctx context.Context, principal entity.Principal, storeID uuid.UUID) error
}

// StoreMemberInput carries store member fields. Nil pointers are left unchanged.
type StoreMemberInput struct {
	FullName    *string
	Email       *string
	Phone       *string
	Password    *string
	Role        *entity.Role
	Permissions []string
}

// StoreMemberUsecase manages the employees of the caller's store.
type StoreMemberUsecase interface {
	List(ctx context.Context, principal entity.Principal) ([]*entity.StoreMember, error)
	Create(ctx context.Context, principal entity.Principal, input *StoreMemberInput) (*entity.StoreMember, error)
	Update(ctx context.Context, principal entity.Principal, memberID uuid.UUID, input *StoreMemberInput) (*entity.StoreMember, error)
	Delete(ctx context.Context, principal entity.Principal, memberID uuid.UUID) error
}
