package usecase

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
)

// PartnerWarrantyInput registers a warranty for a serial on behalf of a customer.
type PartnerWarrantyInput struct {
	ProductSerialNumber string
	CustomerName        string
	CustomerPhone       string
	CustomerEmail       string
	CustomerAddress     string
}

// PartnerClaimInput files a claim for the customer's warranty on a serial.
type PartnerClaimInput struct {
	ProductSerialNumber string
	CustomerPhone       string
	CustomerEmail       string
	ClaimType           entity.ClaimType
	Description         string
	Attachments         []string
}

// PartnerClaimQuery narrows the claims returned for a serial.
type PartnerClaimQuery struct {
	ProductSerialNumber string
	CustomerPhone       string
	CustomerEmail       string
}

// PartnerUsecase serves API-key authenticated integrators. storeID is
// always the key's store.
type PartnerUsecase interface {
	ListProducts(ctx context.Context, storeID uuid.UUID, serial string, page entity.PageRequest) (*entity.Page[*entity.ProductItem], error)
	GetProduct(ctx context.Context, storeID uuid.UUID, serial string) (*entity.ProductItem, error)
	RegisterWarranty(ctx context.Context, storeID uuid.UUID, input *PartnerWarrantyInput) (*entity.Warranty, error)
	FileClaim(ctx context.Context, storeID uuid.UUID, input *PartnerClaimInput) (*entity.Claim, error)
	ListClaims(ctx context.Context, storeID uuid.UUID, query *PartnerClaimQuery) ([]*entity.Claim, error)
}
