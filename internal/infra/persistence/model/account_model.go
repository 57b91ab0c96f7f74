package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OwnerAccountModel mirrors the 'owner_accounts' table.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type OwnerAccountModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_owner_accounts_email"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	Phone            string    `gorm:"type:varchar(32)"`
	BusinessName     string    `gorm:"type:varchar(255)"`
	BusinessWhatsApp string    `gorm:"type:varchar(32)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (OwnerAccountModel) TableName() string {
	return "owner_accounts"
}

// StoreModel mirrors the 'stores' table.
type StoreModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	StoreName       string    `gorm:"type:varchar(255);not null"`
	StoreLogo       string    `gorm:"type:text"`
	Address         string    `gorm:"type:text"`
	ContactPhone    string    `gorm:"type:varchar(32)"`
	SerialPrefix    string    `gorm:"type:varchar(16);not null;default:'PRD'"`
	SerialSuffix    string    `gorm:"type:varchar(16);not null;default:''"`
	OwnerAccountID  uuid.UUID `gorm:"type:uuid;not null;index"`
	WhatsAppEnabled bool      `gorm:"column:whatsapp_enabled;not null;default:false"`
	WhatsAppNumber  string    `gorm:"column:whatsapp_number;type:varchar(32)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}

// StoreMemberModel mirrors the 'store_members' table. Email is unique per
// store, and an owner account links to at most one member row per store.
type StoreMemberModel struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	StoreID        uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:uq_store_members_store_email;uniqueIndex:uq_store_members_store_owner,where:owner_account_id IS NOT NULL"`
	OwnerAccountID *uuid.UUID                  `gorm:"type:uuid;index;uniqueIndex:uq_store_members_store_owner,where:owner_account_id IS NOT NULL"`
	FullName       string                      `gorm:"type:varchar(255);not null"`
	Email          string                      `gorm:"type:varchar(255);not null;uniqueIndex:uq_store_members_store_email"`
	Phone          string                      `gorm:"type:varchar(32)"`
	PasswordHash   string                      `gorm:"type:varchar(255);not null"`
	Role           string                      `gorm:"type:varchar(20);not null;default:'staff'"`
	Permissions    datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreMemberModel) TableName() string {
	return "store_members"
}

// APIKeyModel mirrors the 'api_keys' table. The primary key is the credential.
type APIKeyModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	StoreID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name      string     `gorm:"type:varchar(255);not null"`
	Status    string     `gorm:"type:varchar(16);not null;default:'Enabled'"`
	ExpiredAt *time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (APIKeyModel) TableName() string {
	return "api_keys"
}
