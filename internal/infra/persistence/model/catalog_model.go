package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductTemplateModel mirrors the 'product_templates' table.
type ProductTemplateModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	StoreID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null"`
	Brand        string    `gorm:"type:varchar(255);not null"`
	ProductModel string    `gorm:"type:varchar(255);not null"`
	Category     string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductTemplateModel) TableName() string {
	return "product_templates"
}

// BatchModel mirrors the 'batches' table. Cascades are applied by the
// catalog service, so no foreign keys are declared.
type BatchModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductTemplateID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID              uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedBy            uuid.UUID `gorm:"type:uuid;not null"`
	ManufacturingDate    time.Time `gorm:"type:date;not null"`
	WarrantyPeriodMonths int       `gorm:"not null;default:12"`
	Quantity             int       `gorm:"not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Template *ProductTemplateModel `gorm:"foreignKey:ProductTemplateID"`
}

// TableName explicitly sets the table name for GORM.
func (BatchModel) TableName() string {
	return "batches"
}

// ProductItemModel mirrors the 'product_items' table. serial_number is
// globally unique across stores.
type ProductItemModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BatchID           uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductTemplateID uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedBy         uuid.UUID `gorm:"type:uuid;not null"`
	SerialNumber      string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_product_items_serial_number"`
	SerialPrefixUsed  string    `gorm:"type:varchar(16);not null;default:''"`
	SerialSuffixUsed  string    `gorm:"type:varchar(16);not null;default:''"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Batch    *BatchModel           `gorm:"foreignKey:BatchID"`
	Template *ProductTemplateModel `gorm:"foreignKey:ProductTemplateID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductItemModel) TableName() string {
	return "product_items"
}
