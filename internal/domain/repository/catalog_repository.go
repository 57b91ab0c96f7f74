package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrTemplateNotFound is returned when a product template does not exist in the store.
	ErrTemplateNotFound = errors.New("product template not found")
	// ErrBatchNotFound is returned when a batch does not exist in the store.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrProductItemNotFound is returned when a product item does not exist in the store.
	ErrProductItemNotFound = errors.New("product item not found")
	// ErrDuplicateSerial is returned when an insert hits the serial number unique index.
	ErrDuplicateSerial = errors.New("serial number already exists")
)

// Every lookup below takes the store id and filters by it, so a record from
// another store is reported as not found unless noted otherwise.

// ProductTemplateRepository persists product templates.
type ProductTemplateRepository interface {
	CreateTemplate(ctx context.Context, template *entity.ProductTemplate) error
	FindTemplateByID(ctx context.Context, storeID, id uuid.UUID) (*entity.ProductTemplate, error)

	// ListTemplates returns a page of templates, newest first, and the total count.
	ListTemplates(ctx context.Context, storeID uuid.UUID, page entity.PageRequest) ([]*entity.ProductTemplate, int64, error)

	UpdateTemplate(ctx context.Context, template *entity.ProductTemplate) error
	DeleteTemplate(ctx context.Context, storeID, id uuid.UUID) error
}

// BatchRepository persists batches.
type BatchRepository interface {
	CreateBatch(ctx context.Context, batch *entity.Batch) error

	// FindBatchByID loads the batch with its template.
	FindBatchByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Batch, error)

	// FindBatchesByTemplate returns the template's batches, newest first.
	FindBatchesByTemplate(ctx context.Context, storeID, templateID uuid.UUID) ([]*entity.Batch, error)

	UpdateBatchQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteBatch(ctx context.Context, storeID, id uuid.UUID) error
	DeleteBatchesByTemplate(ctx context.Context, storeID, templateID uuid.UUID) (int64, error)

	// DeleteOrphanBatches removes batches whose template no longer exists.
	DeleteOrphanBatches(ctx context.Context, storeID uuid.UUID) (int64, error)

	// DeleteEmptyBatches removes batches that have no items left.
	DeleteEmptyBatches(ctx context.Context, storeID uuid.UUID) (int64, error)
}

// ItemFilter narrows product item listings.
type ItemFilter struct {
	Serial  string     // Substring match on the serial number.
	BatchID *uuid.UUID // Only items of this batch.
}

// ProductItemRepository persists product items.
type ProductItemRepository interface {
	// CreateItems inserts items in bulk. Returns ErrDuplicateSerial when any
	// serial already exists.
	CreateItems(ctx context.Context, items []*entity.ProductItem) error

	// ExistingSerials returns the subset of serials already stored. It always
	// reads from the primary.
	ExistingSerials(ctx context.Context, serials []string) ([]string, error)

	// FindItemByID loads the store's item with batch and template.
	FindItemByID(ctx context.Context, storeID, id uuid.UUID) (*entity.ProductItem, error)

	// FindItemByIDAnyStore is FindItemByID without the store filter. Callers
	// compare the store themselves.
	FindItemByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.ProductItem, error)

	// FindItemBySerial looks the serial up across all stores, with batch and
	// template loaded. Callers compare the store themselves.
	FindItemBySerial(ctx context.Context, serial string) (*entity.ProductItem, error)

	// ListItems returns a page of items with batch and template, newest first.
	ListItems(ctx context.Context, storeID uuid.UUID, filter ItemFilter, page entity.PageRequest) ([]*entity.ProductItem, int64, error)

	// FindItemsByBatch returns the batch's items in creation order.
	FindItemsByBatch(ctx context.Context, storeID, batchID uuid.UUID) ([]*entity.ProductItem, error)

	// CountItemsByBatch is the authoritative item count of a batch.
	CountItemsByBatch(ctx context.Context, batchID uuid.UUID) (int64, error)

	DeleteItem(ctx context.Context, storeID, id uuid.UUID) error
	DeleteItemsByBatch(ctx context.Context, storeID, batchID uuid.UUID) (int64, error)
	DeleteItemsByTemplate(ctx context.Context, storeID, templateID uuid.UUID) (int64, error)

	// DeleteOrphanItems removes items whose batch no longer exists.
	DeleteOrphanItems(ctx context.Context, storeID uuid.UUID) (int64, error)
}
