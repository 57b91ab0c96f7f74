package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSerialPrefix is applied to stores created without an explicit prefix.
const DefaultSerialPrefix = "PRD"

// Store is the tenant boundary. Every downstream record carries its ID.
type Store struct {
	ID              uuid.UUID `json:"id"`
	StoreName       string    `json:"store_name"`
	StoreLogo       string    `json:"store_logo,omitempty"` // URL of the uploaded logo.
	Address         string    `json:"address,omitempty"`
	ContactPhone    string    `json:"contact_phone,omitempty"`
	SerialPrefix    string    `json:"serial_prefix"` // Prepended to every generated serial.
	SerialSuffix    string    `json:"serial_suffix"` // Appended to every generated serial.
	OwnerAccountID  uuid.UUID `json:"owner_account_id"`
	WhatsAppEnabled bool      `json:"whatsapp_enabled"`
	WhatsAppNumber  string    `json:"whatsapp_number,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the account owns the store directly.
func (s *Store) IsOwnedBy(accountID uuid.UUID) bool {
	return s != nil && s.OwnerAccountID == accountID
}
