package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoreMember is an employee identity bound to exactly one store.
// OwnerAccountID is set when an owner also acts as the store's admin employee.
type StoreMember struct {
	ID             uuid.UUID   `json:"id"`
	StoreID        uuid.UUID   `json:"store_id"`
	OwnerAccountID *uuid.UUID  `json:"owner_account_id,omitempty"`
	FullName       string      `json:"full_name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	PasswordHash   string      `json:"-"`
	Role           Role        `json:"role"`
	Permissions    Permissions `json:"permissions"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// IsAdmin reports whether the member holds the admin role.
func (m *StoreMember) IsAdmin() bool {
	return m != nil && m.Role == RoleAdmin
}

// HasPermission is true for admins, for the "all" sentinel, or for an explicit grant.
func (m *StoreMember) HasPermission(p Permission) bool {
	if m == nil {
		return false
	}
	if m.IsAdmin() {
		return true
	}

	return m.Permissions.Grants(p)
}

// IsLinkedTo reports whether the member row belongs to the given owner account.
func (m *StoreMember) IsLinkedTo(accountID uuid.UUID) bool {
	return m != nil && m.OwnerAccountID != nil && *m.OwnerAccountID == accountID
}
