package usecase

import (
	"context"
	"time"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
)

// APIKeyInput carries API key fields. Nil pointers are left unchanged; a
// zero ExpiredAt clears the expiry.
type APIKeyInput struct {
	Name      *string
	Status    *entity.APIKeyStatus
	ExpiredAt *time.Time
}

// APIKeyUsecase manages partner credentials and validates presented keys.
type APIKeyUsecase interface {
	Create(ctx context.Context, principal entity.Principal, input *APIKeyInput) (*entity.APIKey, error)
	List(ctx context.Context, principal entity.Principal) ([]*entity.APIKey, error)
	Get(ctx context.Context, principal entity.Principal, keyID uuid.UUID) (*entity.APIKey, error)
	Update(ctx context.Context, principal entity.Principal, keyID uuid.UUID, input *APIKeyInput) (*entity.APIKey, error)
	Delete(ctx context.Context, principal entity.Principal, keyID uuid.UUID) error

	// Validate checks a raw key and returns it with its store.
	Validate(ctx context.Context, rawKey string) (*entity.APIKey, error)
}
