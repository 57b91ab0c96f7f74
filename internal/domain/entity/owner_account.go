// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OwnerAccount is a person who signs up and owns one or more stores.
type OwnerAccount struct {
	ID               uuid.UUID `json:"id"`                          // The Global Unique Identifier (GUID) for the account.
	Email            string    `json:"email"`                       // Login identifier, unique and lowercased.
	PasswordHash     string    `json:"-"`                           // bcrypt hash, never serialized.
	FullName         string    `json:"full_name"`                   // Display name.
	Phone            string    `json:"phone"`                       // Contact phone.
	BusinessName     string    `json:"business_name,omitempty"`     // Optional trading name.
	BusinessWhatsApp string    `json:"business_whatsapp,omitempty"` // Optional WhatsApp contact for the business.
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
