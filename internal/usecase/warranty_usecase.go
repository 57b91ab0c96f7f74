package usecase

import (
	"context"
	"time"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"

	"github.com/google/uuid"
)

// IssueWarrantyInput binds a product item to a customer from a start date.
type IssueWarrantyInput struct {
	ProductItemID uuid.UUID
	CustomerID    uuid.UUID
	WarrantyStart time.Time
}

// UpdateWarrantyInput changes the status and/or the start date.
type UpdateWarrantyInput struct {
	Status        *entity.WarrantyStatus
	WarrantyStart *time.Time
}

// WarrantyUsecase issues and manages warranties of the caller's store.
type WarrantyUsecase interface {
	Issue(ctx context.Context, principal entity.Principal, input *IssueWarrantyInput) (*entity.Warranty, error)
	List(ctx context.Context, principal entity.Principal, filter repository.WarrantyFilter, page entity.PageRequest) (*entity.Page[*entity.Warranty], error)
	Get(ctx context.Context, principal entity.Principal, warrantyID uuid.UUID) (*entity.Warranty, error)
	GetBySerial(ctx context.Context, principal entity.Principal, serial string) ([]*entity.Warranty, error)
	Update(ctx context.Context, principal entity.Principal, warrantyID uuid.UUID, input *UpdateWarrantyInput) (*entity.Warranty, error)

	// Verify needs no caller. It answers the public QR code lookup.
	Verify(ctx context.Context, serial string) (*entity.WarrantyVerification, error)
}
