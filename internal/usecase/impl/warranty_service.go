package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// warrantyService implements the WarrantyUsecase interface.
type warrantyService struct {
	itemRepo     repository.ProductItemRepository
	customerRepo repository.CustomerRepository
	warrantyRepo repository.WarrantyRepository
	storeRepo    repository.StoreRepository
	artifacts    *warrantyArtifacts
	auditLogger  service.AuditLogger
	logger       *slog.Logger
	now          func() time.Time
}

// WarrantyServiceParams holds dependencies for WarrantyService, injected by Fx.
type WarrantyServiceParams struct {
	fx.In
	WarrantyArtifactsParams

	ItemRepo     repository.ProductItemRepository
	CustomerRepo repository.CustomerRepository
	AuditLogger  service.AuditLogger
}

// NewWarrantyService is the constructor for warrantyService.
func NewWarrantyService(params WarrantyServiceParams) usecase.WarrantyUsecase {
	return &warrantyService{
		itemRepo:     params.ItemRepo,
		customerRepo: params.CustomerRepo,
		warrantyRepo: params.WarrantyRepo,
		storeRepo:    params.StoreRepo,
		artifacts:    newWarrantyArtifacts(params.WarrantyArtifactsParams),
		auditLogger:  params.AuditLogger,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// Issue binds an item of the caller's store to one of its customers. The
// warranty is stored before its documents are rendered.
func (srv *warrantyService) Issue(ctx context.Context, principal entity.Principal, input *usecase.IssueWarrantyInput) (*entity.Warranty, error) {
	storeID, err := requirePermission(principal, entity.PermissionWarranties)
	if err != nil {
		return nil, err
	}

	item, err := srv.itemRepo.FindItemByIDAnyStore(ctx, input.ProductItemID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrProductItemNotFound, domainerrors.ErrProductNotFound, "failed to load product item")
	}
	if item.StoreID != storeID {
		return nil, domainerrors.ErrForbidden.WithDetails("product belongs to another store")
	}

	customer, err := srv.customerRepo.FindCustomerByIDAnyStore(ctx, input.CustomerID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrCustomerNotFound, domainerrors.ErrCustomerNotFound, "failed to load customer")
	}
	if customer.StoreID != storeID {
		return nil, domainerrors.ErrForbidden.WithDetails("customer belongs to another store")
	}

	_, err = srv.warrantyRepo.FindWarrantyByTriple(ctx, item.ID, customer.ID, storeID)
	switch {
	case err == nil:
		return nil, domainerrors.ErrDuplicateWarranty
	case !errors.Is(err, repository.ErrWarrantyNotFound):
		return nil, errors.Wrap(err, "failed to check existing warranty")
	}

	start := input.WarrantyStart
	if start.IsZero() {
		start = time.Now()
	}

	warranty, err := createWarranty(ctx, srv.warrantyRepo, &entity.Warranty{
		ProductItemID: item.ID,
		CustomerID:    customer.ID,
		StoreID:       storeID,
		CreatedBy:     actorRef(principal),
		WarrantyStart: start,
		WarrantyEnd:   warrantyEnd(start, item),
		Status:        entity.WarrantyStatusActive,
	})
	if err != nil {
		return nil, err
	}

	srv.artifacts.attach(ctx, warranty, item, customer)
	warranty.Product, warranty.Customer = item, customer

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityWarranty, warranty.ID.String(), entity.AuditActionCreate, nil, warrantyAuditValue(warranty)))
	requestLogger(ctx, srv.logger).Info("Warranty issued",
		slog.String("warranty_id", warranty.ID.String()),
		slog.String("serial_number", item.SerialNumber),
	)

	return warranty, nil
}

func (srv *warrantyService) List(ctx context.Context, principal entity.Principal, filter repository.WarrantyFilter, page entity.PageRequest) (*entity.Page[*entity.Warranty], error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domainerrors.ErrValidation.WithDetails("unknown warranty status " + filter.Status.String())
	}

	warranties, total, err := srv.warrantyRepo.ListWarranties(ctx, storeID, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list warranties")
	}

	return entity.NewPage(warranties, total, page), nil
}

func (srv *warrantyService) Get(ctx context.Context, principal entity.Principal, warrantyID uuid.UUID) (*entity.Warranty, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	return srv.find(ctx, storeID, warrantyID)
}

// GetBySerial returns every warranty of the item carrying the serial.
func (srv *warrantyService) GetBySerial(ctx context.Context, principal entity.Principal, serial string) ([]*entity.Warranty, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	item, err := srv.itemRepo.FindItemBySerial(ctx, strings.TrimSpace(serial))
	if err != nil {
		return nil, translateNotFound(err, repository.ErrProductItemNotFound, domainerrors.ErrProductNotFound, "failed to load product item")
	}
	if item.StoreID != storeID {
		return nil, domainerrors.ErrProductNotFound
	}

	warranties, err := srv.warrantyRepo.FindWarrantiesByProduct(ctx, storeID, item.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load warranties")
	}
	if len(warranties) == 0 {
		return nil, domainerrors.ErrWarrantyNotFound
	}
	for _, warranty := range warranties {
		warranty.Product = item
	}

	return warranties, nil
}

// Verify returns the public view of the newest warranty on the serial. The
// lookup crosses stores, so only product, store and validity are exposed.
func (srv *warrantyService) Verify(ctx context.Context, serial string) (*entity.WarrantyVerification, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, domainerrors.ErrProductNotFound
	}

	item, err := srv.itemRepo.FindItemBySerial(ctx, serial)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrProductItemNotFound, domainerrors.ErrProductNotFound, "failed to load product item")
	}

	warranties, err := srv.warrantyRepo.FindWarrantiesByProduct(ctx, item.StoreID, item.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load warranties")
	}
	if len(warranties) == 0 {
		return nil, domainerrors.ErrWarrantyNotFound
	}
	warranty := warranties[0]

	store, err := srv.storeRepo.FindStoreByID(ctx, item.StoreID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load store")
	}

	now := srv.now()
	out := &entity.WarrantyVerification{
		SerialNumber:  item.SerialNumber,
		StoreName:     store.StoreName,
		StoreAddress:  store.Address,
		StorePhone:    store.ContactPhone,
		WarrantyStart: warranty.WarrantyStart,
		WarrantyEnd:   warranty.WarrantyEnd,
		Status:        warranty.EffectiveStatus(now),
		DaysRemaining: daysRemaining(now, warranty.WarrantyEnd),
	}
	if item.Template != nil {
		out.Brand = item.Template.Brand
		out.ProductModel = item.Template.ProductModel
		out.Category = item.Template.Category
	}

	return out, nil
}

// daysRemaining rounds a partial day up and never goes below zero.
func daysRemaining(now, end time.Time) int {
	left := end.Sub(now)
	if left <= 0 {
		return 0
	}

	return int((left + 24*time.Hour - 1) / (24 * time.Hour))
}

// Update changes the status and/or the start date. A new start moves the end
// by the batch warranty period.
func (srv *warrantyService) Update(ctx context.Context, principal entity.Principal, warrantyID uuid.UUID, input *usecase.UpdateWarrantyInput) (*entity.Warranty, error) {
	storeID, err := requirePermission(principal, entity.PermissionWarranties)
	if err != nil {
		return nil, err
	}

	warranty, err := srv.find(ctx, storeID, warrantyID)
	if err != nil {
		return nil, err
	}
	before := warrantyAuditValue(warranty)

	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerrors.ErrValidation.WithDetails("status must be one of active, expired, claimed, void")
		}
		warranty.Status = *input.Status
	}
	if input.WarrantyStart != nil && !input.WarrantyStart.IsZero() {
		item, err := srv.itemRepo.FindItemByID(ctx, storeID, warranty.ProductItemID)
		if err != nil {
			return nil, translateNotFound(err, repository.ErrProductItemNotFound, domainerrors.ErrProductNotFound, "failed to load product item")
		}
		warranty.WarrantyStart = *input.WarrantyStart
		warranty.WarrantyEnd = warrantyEnd(warranty.WarrantyStart, item)
	}

	if err := srv.warrantyRepo.UpdateWarranty(ctx, warranty); err != nil {
		return nil, translateNotFound(err, repository.ErrWarrantyNotFound, domainerrors.ErrWarrantyNotFound, "failed to update warranty")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityWarranty, warranty.ID.String(), entity.AuditActionUpdate, before, warrantyAuditValue(warranty)))

	return warranty, nil
}

func (srv *warrantyService) find(ctx context.Context, storeID, warrantyID uuid.UUID) (*entity.Warranty, error) {
	warranty, err := srv.warrantyRepo.FindWarrantyByID(ctx, storeID, warrantyID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrWarrantyNotFound, domainerrors.ErrWarrantyNotFound, "failed to load warranty")
	}

	return warranty, nil
}

// createWarranty persists a new warranty, mapping a lost race on the
// (product, customer, store) index to a duplicate.
func createWarranty(ctx context.Context, repo repository.WarrantyRepository, warranty *entity.Warranty) (*entity.Warranty, error) {
	if err := repo.CreateWarranty(ctx, warranty); err != nil {
		if errors.Is(err, repository.ErrDuplicateWarranty) {
			return nil, domainerrors.ErrDuplicateWarranty
		}

		return nil, errors.Wrap(err, "failed to create warranty")
	}

	return warranty, nil
}

// warrantyAuditValue is the audited shape of a warranty, without relations.
func warrantyAuditValue(w *entity.Warranty) map[string]any {
	return map[string]any{
		"product_id":       w.ProductItemID,
		"customer_id":      w.CustomerID,
		"warranty_start":   w.WarrantyStart,
		"warranty_end":     w.WarrantyEnd,
		"status":           w.Status,
		"qr_code_url":      w.QRCodeURL,
		"warranty_pdf_url": w.WarrantyPDFURL,
	}
}
