package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/usecase"
	"warranty/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

// partnerService implements the PartnerUsecase interface. Partner calls have
// no actor; audit entries carry only the store.
type partnerService struct {
	itemRepo     repository.ProductItemRepository
	customerRepo repository.CustomerRepository
	warrantyRepo repository.WarrantyRepository
	claimRepo    repository.ClaimRepository
	storeRepo    repository.StoreRepository
	artifacts    *warrantyArtifacts
	auditLogger  service.AuditLogger
	logger       *slog.Logger
	now          func() time.Time
}

// PartnerServiceParams holds dependencies for PartnerService, injected by Fx.
type PartnerServiceParams struct {
	fx.In
	WarrantyArtifactsParams

	ItemRepo     repository.ProductItemRepository
	CustomerRepo repository.CustomerRepository
	ClaimRepo    repository.ClaimRepository
	AuditLogger  service.AuditLogger
}

// NewPartnerService is the constructor for partnerService.
func NewPartnerService(params PartnerServiceParams) usecase.PartnerUsecase {
	return &partnerService{
		itemRepo:     params.ItemRepo,
		customerRepo: params.CustomerRepo,
		warrantyRepo: params.WarrantyRepo,
		claimRepo:    params.ClaimRepo,
		storeRepo:    params.StoreRepo,
		artifacts:    newWarrantyArtifacts(params.WarrantyArtifactsParams),
		auditLogger:  params.AuditLogger,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *partnerService) ListProducts(ctx context.Context, storeID uuid.UUID, serial string, page entity.PageRequest) (*entity.Page[*entity.ProductItem], error) {
	items, total, err := srv.itemRepo.ListItems(ctx, storeID, repository.ItemFilter{Serial: strings.TrimSpace(serial)}, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product items")
	}

	return entity.NewPage(items, total, page), nil
}

// GetProduct returns an item of the key's store. Other stores' serials are
// reported as missing.
func (srv *partnerService) GetProduct(ctx context.Context, storeID uuid.UUID, serial string) (*entity.ProductItem, error) {
	item, err := srv.findItem(ctx, serial)
	if err != nil {
		return nil, err
	}
	if item.StoreID != storeID {
		return nil, domainerrors.ErrProductNotFound
	}

	return item, nil
}

// RegisterWarranty finds or refreshes the customer by phone or email and
// issues a warranty starting now.
func (srv *partnerService) RegisterWarranty(ctx context.Context, storeID uuid.UUID, input *usecase.PartnerWarrantyInput) (*entity.Warranty, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, domainerrors.ErrValidation.WithDetails("customer_name is required")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" && strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, domainerrors.ErrValidation.WithDetails("customer_phone or customer_email is required")
	}

	item, err := srv.storeItem(ctx, storeID, input.ProductSerialNumber)
	if err != nil {
		return nil, err
	}

	customer, err := srv.upsertCustomer(ctx, storeID, input)
	if err != nil {
		return nil, err
	}

	existing, err := srv.warrantyRepo.FindWarrantyByTriple(ctx, item.ID, customer.ID, storeID)
	switch {
	case err == nil:
		if status := existing.EffectiveStatus(srv.now()); status != entity.WarrantyStatusActive {
			return nil, domainerrors.ErrInvalidWarrantyState.WithMessage(fmt.Sprintf("Warranty already exists and is %s", status))
		}

		return nil, domainerrors.ErrDuplicateWarranty
	case !errors.Is(err, repository.ErrWarrantyNotFound):
		return nil, errors.Wrap(err, "failed to check existing warranty")
	}

	start := srv.now()
	warranty, err := createWarranty(ctx, srv.warrantyRepo, &entity.Warranty{
		ProductItemID: item.ID,
		CustomerID:    customer.ID,
		StoreID:       storeID,
		WarrantyStart: start,
		WarrantyEnd:   warrantyEnd(start, item),
		Status:        entity.WarrantyStatusActive,
	})
	if err != nil {
		return nil, err
	}

	srv.artifacts.attach(ctx, warranty, item, customer)
	warranty.Product, warranty.Customer = item, customer

	srv.auditLogger.Record(ctx, newAuditEntry(nil, storeID, entity.AuditEntityWarranty, warranty.ID.String(), entity.AuditActionCreate, nil, warrantyAuditValue(warranty)))
	requestLogger(ctx, srv.logger).Info("Warranty registered by partner",
		slog.String("warranty_id", warranty.ID.String()),
		slog.String("serial_number", item.SerialNumber),
	)

	return warranty, nil
}

// FileClaim opens a claim on the customer's active warranty for the serial.
func (srv *partnerService) FileClaim(ctx context.Context, storeID uuid.UUID, input *usecase.PartnerClaimInput) (*entity.Claim, error) {
	if err := validateClaimRequest(input.ClaimType, input.Description); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.CustomerPhone) == "" && strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, domainerrors.ErrValidation.WithDetails("customer_phone or customer_email is required")
	}

	item, err := srv.storeItem(ctx, storeID, input.ProductSerialNumber)
	if err != nil {
		return nil, err
	}

	warranties, err := srv.customerWarranties(ctx, storeID, item, input.CustomerPhone, input.CustomerEmail)
	if err != nil {
		return nil, err
	}
	if len(warranties) == 0 {
		return nil, domainerrors.ErrWarrantyNotFound.WithDetails("no warranty for this product and customer")
	}

	warranty := warranties[0]
	if status := warranty.EffectiveStatus(srv.now()); status != entity.WarrantyStatusActive {
		return nil, domainerrors.ErrInvalidWarrantyState.WithMessage(fmt.Sprintf("Warranty is %s. Only active warranties can have claims.", status))
	}

	claim := newClaim(warranty, input.ClaimType, input.Description, input.Attachments, entity.TimelineEvent{
		Timestamp: srv.now(),
		Action:    TimelineClaimCreatedExternal,
	})
	if err := srv.claimRepo.CreateClaim(ctx, claim); err != nil {
		return nil, errors.Wrap(err, "failed to create claim")
	}
	warranty.Product = item
	claim.Warranty = warranty

	srv.auditLogger.Record(ctx, newAuditEntry(nil, storeID, entity.AuditEntityClaim, claim.ID.String(), entity.AuditActionCreate, nil, claimAuditValue(claim)))

	return claim, nil
}

// ListClaims returns claims on the serial, narrowed to one customer when a
// phone or email is given.
func (srv *partnerService) ListClaims(ctx context.Context, storeID uuid.UUID, query *usecase.PartnerClaimQuery) ([]*entity.Claim, error) {
	item, err := srv.GetProduct(ctx, storeID, query.ProductSerialNumber)
	if err != nil {
		return nil, err
	}

	warranties, err := srv.customerWarranties(ctx, storeID, item, query.CustomerPhone, query.CustomerEmail)
	if err != nil {
		return nil, err
	}
	if len(warranties) == 0 {
		return []*entity.Claim{}, nil
	}

	byID := lo.KeyBy(warranties, func(w *entity.Warranty) uuid.UUID { return w.ID })
	claims, err := srv.claimRepo.FindClaimsByWarranties(ctx, storeID, lo.Keys(byID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list claims")
	}
	for _, claim := range claims {
		claim.Warranty = byID[claim.WarrantyID]
	}

	return claims, nil
}

func (srv *partnerService) findItem(ctx context.Context, serial string) (*entity.ProductItem, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, domainerrors.ErrValidation.WithDetails("product_serial_number is required")
	}

	item, err := srv.itemRepo.FindItemBySerial(ctx, serial)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrProductItemNotFound, domainerrors.ErrProductNotFound, "failed to load product item")
	}

	return item, nil
}

// storeItem loads the serial for a write. A serial of another store is refused.
func (srv *partnerService) storeItem(ctx context.Context, storeID uuid.UUID, serial string) (*entity.ProductItem, error) {
	item, err := srv.findItem(ctx, serial)
	if err != nil {
		return nil, err
	}
	if item.StoreID != storeID {
		return nil, domainerrors.ErrForbidden.WithDetails("product belongs to another store")
	}

	return item, nil
}

// customerWarranties returns the item's warranties whose customer matches the
// phone or email. Without either, every warranty of the item matches.
func (srv *partnerService) customerWarranties(ctx context.Context, storeID uuid.UUID, item *entity.ProductItem, phone, email string) ([]*entity.Warranty, error) {
	warranties, err := srv.warrantyRepo.FindWarrantiesByProduct(ctx, storeID, item.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load warranties")
	}

	phone = util.NormalizePhone(phone)
	email = util.NormalizeEmail(email)
	if phone == "" && email == "" {
		return warranties, nil
	}

	return lo.Filter(warranties, func(w *entity.Warranty, _ int) bool {
		if w.Customer == nil {
			return false
		}

		return (phone != "" && util.NormalizePhone(w.Customer.Phone) == phone) ||
			(email != "" && util.NormalizeEmail(w.Customer.Email) == email)
	}), nil
}

// upsertCustomer refreshes the customer matched by phone or email, or
// creates one on behalf of the store owner.
func (srv *partnerService) upsertCustomer(ctx context.Context, storeID uuid.UUID, input *usecase.PartnerWarrantyInput) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindCustomerByContact(ctx, storeID, input.CustomerPhone, input.CustomerEmail)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, errors.Wrap(err, "failed to look up customer")
	}

	if customer != nil {
		before := *customer
		refreshCustomer(customer, input)
		if err := srv.customerRepo.UpdateCustomer(ctx, customer); err != nil {
			return nil, errors.Wrap(err, "failed to update customer")
		}
		srv.auditLogger.Record(ctx, newAuditEntry(nil, storeID, entity.AuditEntityCustomer, customer.ID.String(), entity.AuditActionUpdate, before, customer))

		return customer, nil
	}

	store, err := srv.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load store")
	}

	customer = &entity.Customer{StoreID: storeID, CreatedBy: store.OwnerAccountID}
	refreshCustomer(customer, input)
	if err := srv.customerRepo.CreateCustomer(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to create customer")
	}
	srv.auditLogger.Record(ctx, newAuditEntry(nil, storeID, entity.AuditEntityCustomer, customer.ID.String(), entity.AuditActionCreate, nil, customer))

	return customer, nil
}

// refreshCustomer overwrites the customer with every non-empty partner field.
func refreshCustomer(customer *entity.Customer, input *usecase.PartnerWarrantyInput) {
	customer.CustomerName = strings.TrimSpace(input.CustomerName)
	if phone := strings.TrimSpace(input.CustomerPhone); phone != "" {
		customer.Phone = phone
	}
	if email := util.NormalizeEmail(input.CustomerEmail); email != "" {
		customer.Email = email
	}
	if address := strings.TrimSpace(input.CustomerAddress); address != "" {
		customer.Address = address
	}
}
