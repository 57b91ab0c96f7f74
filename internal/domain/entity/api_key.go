package entity

import (
	"time"

	"github.com/google/uuid"
)

// APIKeyStatus toggles whether a key is accepted.
type APIKeyStatus string

const (
	APIKeyStatusEnabled  APIKeyStatus = "Enabled"
	APIKeyStatusDisabled APIKeyStatus = "Disabled"
)

// IsValid checks if the APIKeyStatus is a valid value.
func (s APIKeyStatus) IsValid() bool {
	return s == APIKeyStatusEnabled || s == APIKeyStatusDisabled
}

// APIKey is a store-scoped partner credential. The ID is the credential value.
type APIKey struct {
	ID        uuid.UUID    `json:"id"`
	StoreID   uuid.UUID    `json:"store_id"`
	Name      string       `json:"name"`
	Status    APIKeyStatus `json:"status"`
	ExpiredAt *time.Time   `json:"expired_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// IsExpired reports whether the key has an expiry that has passed.
func (k *APIKey) IsExpired(now time.Time) bool {
	return k.ExpiredAt != nil && !now.Before(*k.ExpiredAt)
}
