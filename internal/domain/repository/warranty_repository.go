package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrWarrantyNotFound is returned when a warranty does not exist in the store.
	ErrWarrantyNotFound = errors.New("warranty not found")
	// ErrDuplicateWarranty is returned when the (product, customer, store) triple already has a warranty.
	ErrDuplicateWarranty = errors.New("warranty already exists")
)

// WarrantyFilter narrows warranty listings.
type WarrantyFilter struct {
	Status entity.WarrantyStatus
}

// WarrantyRepository persists warranties.
type WarrantyRepository interface {
	// CreateWarranty returns ErrDuplicateWarranty on a triple collision.
	CreateWarranty(ctx context.Context, warranty *entity.Warranty) error

	// FindWarrantyByID loads the store's warranty with product and customer.
	FindWarrantyByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Warranty, error)

	// FindWarrantyByIDAnyStore is FindWarrantyByID without the store filter.
	// Callers compare the store themselves.
	FindWarrantyByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.Warranty, error)

	FindWarrantyByTriple(ctx context.Context, productItemID, customerID, storeID uuid.UUID) (*entity.Warranty, error)

	// FindWarrantiesByProduct returns the item's warranties with customers loaded.
	FindWarrantiesByProduct(ctx context.Context, storeID, productItemID uuid.UUID) ([]*entity.Warranty, error)

	ListWarranties(ctx context.Context, storeID uuid.UUID, filter WarrantyFilter, page entity.PageRequest) ([]*entity.Warranty, int64, error)
	UpdateWarranty(ctx context.Context, warranty *entity.Warranty) error

	// UpdateArtifacts stores the generated QR and certificate URLs.
	UpdateArtifacts(ctx context.Context, id uuid.UUID, qrCodeURL, pdfURL string) error
}
