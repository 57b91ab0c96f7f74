package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultWarrantyPeriodMonths applies when a batch is created without one.
const DefaultWarrantyPeriodMonths = 12

// ProductTemplate is the SKU definition a batch is produced from.
type ProductTemplate struct {
	ID           uuid.UUID `json:"id"`
	StoreID      uuid.UUID `json:"store_id"`
	CreatedBy    uuid.UUID `json:"created_by"`
	Brand        string    `json:"brand"`
	ProductModel string    `json:"product_model"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Batches []*Batch `json:"batches,omitempty"`
}

// Batch is one manufacturing run of a template.
type Batch struct {
	ID                   uuid.UUID `json:"id"`
	ProductTemplateID    uuid.UUID `json:"product_template_id"`
	StoreID              uuid.UUID `json:"store_id"`
	CreatedBy            uuid.UUID `json:"created_by"`
	ManufacturingDate    time.Time `json:"manufacturing_date"`
	WarrantyPeriodMonths int       `json:"warranty_period_months"`
	Quantity             int       `json:"quantity"` // Recomputed from an item count after deletions.
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	Template *ProductTemplate `json:"product_template,omitempty"`
	Items    []*ProductItem   `json:"items,omitempty"`
}

// ProductItem is one physical unit identified by a globally unique serial.
type ProductItem struct {
	ID                uuid.UUID `json:"id"`
	BatchID           uuid.UUID `json:"batch_id"`
	ProductTemplateID uuid.UUID `json:"product_template_id"`
	StoreID           uuid.UUID `json:"store_id"`
	CreatedBy         uuid.UUID `json:"created_by"`
	SerialNumber      string    `json:"serial_number"`
	SerialPrefixUsed  string    `json:"serial_prefix_used"`
	SerialSuffixUsed  string    `json:"serial_suffix_used"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Batch    *Batch           `json:"batch,omitempty"`
	Template *ProductTemplate `json:"product_template,omitempty"`
}

// SerialRecord is one allocated serial and the affixes it was built from.
type SerialRecord struct {
	SerialNumber string `json:"serial_number"`
	PrefixUsed   string `json:"prefix_used"`
	SuffixUsed   string `json:"suffix_used"`
}

// ItemDeletionResult states what a product item deletion removed.
type ItemDeletionResult struct {
	ItemID           uuid.UUID `json:"item_id"`
	BatchID          uuid.UUID `json:"batch_id"`
	BatchDeleted     bool      `json:"batch_deleted"`
	RemainingInBatch int       `json:"remaining_in_batch"`
}

// BatchDeletionResult states what a batch deletion removed.
type BatchDeletionResult struct {
	BatchID      uuid.UUID `json:"batch_id"`
	ItemsDeleted int64     `json:"items_deleted"`
}

// TemplateDeletionResult states what a template deletion removed.
type TemplateDeletionResult struct {
	TemplateID     uuid.UUID `json:"template_id"`
	BatchesDeleted int64     `json:"batches_deleted"`
	ItemsDeleted   int64     `json:"items_deleted"`
}

// ReconcileResult reports orphans removed after an interrupted cascade.
type ReconcileResult struct {
	OrphanItemsDeleted   int64 `json:"orphan_items_deleted"`
	OrphanBatchesDeleted int64 `json:"orphan_batches_deleted"`
	EmptyBatchesDeleted  int64 `json:"empty_batches_deleted"`
}
