package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrAPIKeyNotFound is returned when an API key does not exist.
var ErrAPIKeyNotFound = errors.New("api key not found")

// APIKeyRepository persists partner API keys.
type APIKeyRepository interface {
	CreateAPIKey(ctx context.Context, key *entity.APIKey) error
	FindAPIKeyByID(ctx context.Context, id uuid.UUID) (*entity.APIKey, error)

	// FindAPIKeysByStore returns the store's keys, newest first.
	FindAPIKeysByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.APIKey, error)

	UpdateAPIKey(ctx context.Context, key *entity.APIKey) error
	DeleteAPIKey(ctx context.Context, id uuid.UUID) error
}
