package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CustomerModel mirrors the 'customers' table. PhoneNormalized holds the
// digits used for contact matching.
type CustomerModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	StoreID         uuid.UUID `gorm:"type:uuid;not null;index;index:idx_customers_store_phone;index:idx_customers_store_email"`
	CreatedBy       uuid.UUID `gorm:"type:uuid;not null"`
	CustomerName    string    `gorm:"type:varchar(255);not null"`
	Phone           string    `gorm:"type:varchar(32);not null"`
	PhoneNormalized string    `gorm:"type:varchar(32);not null;index:idx_customers_store_phone"`
	Email           string    `gorm:"type:varchar(255);index:idx_customers_store_email"`
	Address         string    `gorm:"type:text"`
	GSTNumber       string    `gorm:"column:gst_number;type:varchar(32)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}

// WarrantyModel mirrors the 'warranties' table.
type WarrantyModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductItemID  uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index;uniqueIndex:uq_warranties_product_customer_store"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_warranties_product_customer_store"`
	StoreID        uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_warranties_product_customer_store"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	WarrantyStart  time.Time  `gorm:"type:date;not null"`
	WarrantyEnd    time.Time  `gorm:"type:date;not null"`
	Status         string     `gorm:"type:varchar(16);not null;default:'active'"`
	QRCodeURL      string     `gorm:"column:qr_code_url;type:text"`
	WarrantyPDFURL string     `gorm:"column:warranty_pdf_url;type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Product  *ProductItemModel `gorm:"foreignKey:ProductItemID"`
	Customer *CustomerModel    `gorm:"foreignKey:CustomerID"`
}

// TableName explicitly sets the table name for GORM.
func (WarrantyModel) TableName() string {
	return "warranties"
}

// TimelineEventJSON is one element of the claims.timeline_events column.
type TimelineEventJSON struct {
	Timestamp time.Time  `json:"timestamp"`
	Action    string     `json:"action"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// ClaimModel mirrors the 'claims' table. timeline_events is append-only.
type ClaimModel struct {
	ID               uuid.UUID                              `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	WarrantyID       uuid.UUID                              `gorm:"type:uuid;not null;index"`
	StoreID          uuid.UUID                              `gorm:"type:uuid;not null;index"`
	ClaimType        string                                 `gorm:"type:varchar(16);not null"`
	Description      string                                 `gorm:"type:text;not null"`
	Status           string                                 `gorm:"type:varchar(16);not null;default:'pending';index"`
	AssignedMemberID *uuid.UUID                             `gorm:"type:uuid"`
	Attachments      datatypes.JSONSlice[string]            `gorm:"type:jsonb;not null;default:'[]'"`
	TimelineEvents   datatypes.JSONSlice[TimelineEventJSON] `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Warranty *WarrantyModel `gorm:"foreignKey:WarrantyID"`
}

// TableName explicitly sets the table name for GORM.
func (ClaimModel) TableName() string {
	return "claims"
}

// AuditLogModel mirrors the 'audit_logs' table. Rows are never updated.
type AuditLogModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key"`
	ActorID   *uuid.UUID     `gorm:"type:uuid;index"`
	StoreID   *uuid.UUID     `gorm:"type:uuid;index:idx_audit_logs_store_created"`
	Entity    string         `gorm:"column:entity;type:varchar(64);not null;index:idx_audit_logs_entity"`
	EntityID  string         `gorm:"type:varchar(64);index:idx_audit_logs_entity"`
	Action    string         `gorm:"type:varchar(16);not null"`
	OldValue  datatypes.JSON `gorm:"type:jsonb"`
	NewValue  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"not null;index:idx_audit_logs_store_created,sort:desc"`
}

// TableName explicitly sets the table name for GORM.
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&OwnerAccountModel{},
		&StoreModel{},
		&StoreMemberModel{},
		&APIKeyModel{},
		&ProductTemplateModel{},
		&BatchModel{},
		&ProductItemModel{},
		&CustomerModel{},
		&WarrantyModel{},
		&ClaimModel{},
		&AuditLogModel{},
	}
}
