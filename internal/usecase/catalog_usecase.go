package usecase

import (
	"context"
	"time"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"

	"github.com/google/uuid"
)

// TemplateInput carries product template fields.
type TemplateInput struct {
	Brand        string
	ProductModel string
	Category     string
}

// CreateBatchInput defines a new manufacturing run. Zero WarrantyPeriodMonths
// falls back to the default.
type CreateBatchInput struct {
	TemplateID           uuid.UUID
	Quantity             int
	ManufacturingDate    time.Time
	WarrantyPeriodMonths int
}

// CreateBatchOutput is the created batch with its allocated items.
type CreateBatchOutput struct {
	Batch         *entity.Batch         `json:"batch"`
	Items         []*entity.ProductItem `json:"items"`
	SerialNumbers []string              `json:"serial_numbers"`
	Quantity      int                   `json:"quantity"`
}

// SerialSheet is a rendered batch serial list.
type SerialSheet struct {
	Filename string
	PDF      []byte
}

// CatalogUsecase manages templates, batches and product items of the caller's store.
type CatalogUsecase interface {
	CreateTemplate(ctx context.Context, principal entity.Principal, input *TemplateInput) (*entity.ProductTemplate, error)
	ListTemplates(ctx context.Context, principal entity.Principal, page entity.PageRequest) (*entity.Page[*entity.ProductTemplate], error)
	GetTemplate(ctx context.Context, principal entity.Principal, templateID uuid.UUID) (*entity.ProductTemplate, error)
	UpdateTemplate(ctx context.Context, principal entity.Principal, templateID uuid.UUID, input *TemplateInput) (*entity.ProductTemplate, error)
	DeleteTemplate(ctx context.Context, principal entity.Principal, templateID uuid.UUID) (*entity.TemplateDeletionResult, error)

	CreateBatch(ctx context.Context, principal entity.Principal, input *CreateBatchInput) (*CreateBatchOutput, error)
	ListBatches(ctx context.Context, principal entity.Principal, templateID uuid.UUID) ([]*entity.Batch, error)
	GetBatch(ctx context.Context, principal entity.Principal, batchID uuid.UUID) (*entity.Batch, error)
	DeleteBatch(ctx context.Context, principal entity.Principal, batchID uuid.UUID) (*entity.BatchDeletionResult, error)
	RenderBatchSerialSheet(ctx context.Context, principal entity.Principal, batchID uuid.UUID) (*SerialSheet, error)

	ListItems(ctx context.Context, principal entity.Principal, filter repository.ItemFilter, page entity.PageRequest) (*entity.Page[*entity.ProductItem], error)
	GetItemBySerial(ctx context.Context, principal entity.Principal, serial string) (*entity.ProductItem, error)
	DeleteProductItem(ctx context.Context, principal entity.Principal, itemID uuid.UUID) (*entity.ItemDeletionResult, error)

	// Reconcile removes rows left behind by an interrupted cascade.
	Reconcile(ctx context.Context, principal entity.Principal) (*entity.ReconcileResult, error)
}
