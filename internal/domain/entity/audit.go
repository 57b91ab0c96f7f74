package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditAction is the kind of mutation recorded.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// Audited entity names.
const (
	AuditEntityStore           = "stores"
	AuditEntityStoreMember     = "store_members"
	AuditEntityAPIKey          = "api_keys"
	AuditEntityProductTemplate = "product_templates"
	AuditEntityBatch           = "batches"
	AuditEntityProductItem     = "product_items"
	AuditEntityCustomer        = "customers"
	AuditEntityWarranty        = "warranties"
	AuditEntityClaim           = "claims"
)

// AuditLogEntry is an append-only record of a mutation.
type AuditLogEntry struct {
	ID        uuid.UUID       `json:"id"`
	ActorID   *uuid.UUID      `json:"actor_id,omitempty"`
	StoreID   *uuid.UUID      `json:"store_id,omitempty"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	Action    AuditAction     `json:"action"`
	OldValue  json.RawMessage `json:"old_value,omitempty"`
	NewValue  json.RawMessage `json:"new_value,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	StoreID  uuid.UUID
	Entity   string
	EntityID string
	ActorID  *uuid.UUID
}
