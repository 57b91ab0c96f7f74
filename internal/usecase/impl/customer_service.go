package impl

import (
	"context"
	"log/slog"
	"strings"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/usecase"
	"warranty/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// MinCustomerPhoneLength applies to customers entered from the dashboard.
const MinCustomerPhoneLength = 10

// customerService implements the CustomerUsecase interface.
type customerService struct {
	customerRepo repository.CustomerRepository
	auditLogger  service.AuditLogger
	logger       *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
	AuditLogger  service.AuditLogger
	Logger       *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: params.CustomerRepo,
		auditLogger:  params.AuditLogger,
		logger:       params.Logger,
	}
}

func (srv *customerService) Create(ctx context.Context, principal entity.Principal, input *usecase.CustomerInput) (*entity.Customer, error) {
	storeID, err := requirePermission(principal, entity.PermissionCustomers)
	if err != nil {
		return nil, err
	}

	customer := &entity.Customer{StoreID: storeID, CreatedBy: principal.ActorID()}
	if err := applyCustomerInput(customer, input); err != nil {
		return nil, err
	}

	if err := srv.customerRepo.CreateCustomer(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to create customer")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityCustomer, customer.ID.String(), entity.AuditActionCreate, nil, customer))

	return customer, nil
}

func (srv *customerService) List(ctx context.Context, principal entity.Principal, page entity.PageRequest) (*entity.Page[*entity.Customer], error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	customers, total, err := srv.customerRepo.ListCustomers(ctx, storeID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return entity.NewPage(customers, total, page), nil
}

func (srv *customerService) Get(ctx context.Context, principal entity.Principal, customerID uuid.UUID) (*entity.Customer, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	return srv.find(ctx, storeID, customerID)
}

func (srv *customerService) Update(ctx context.Context, principal entity.Principal, customerID uuid.UUID, input *usecase.CustomerInput) (*entity.Customer, error) {
	storeID, err := requirePermission(principal, entity.PermissionCustomers)
	if err != nil {
		return nil, err
	}

	customer, err := srv.find(ctx, storeID, customerID)
	if err != nil {
		return nil, err
	}
	before := *customer

	if err := applyCustomerInput(customer, input); err != nil {
		return nil, err
	}

	if err := srv.customerRepo.UpdateCustomer(ctx, customer); err != nil {
		return nil, translateNotFound(err, repository.ErrCustomerNotFound, domainerrors.ErrCustomerNotFound, "failed to update customer")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityCustomer, customer.ID.String(), entity.AuditActionUpdate, before, customer))

	return customer, nil
}

func (srv *customerService) find(ctx context.Context, storeID, customerID uuid.UUID) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindCustomerByID(ctx, storeID, customerID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrCustomerNotFound, domainerrors.ErrCustomerNotFound, "failed to load customer")
	}

	return customer, nil
}

func applyCustomerInput(customer *entity.Customer, input *usecase.CustomerInput) error {
	name := strings.TrimSpace(input.CustomerName)
	phone := strings.TrimSpace(input.Phone)

	if name == "" {
		return domainerrors.ErrValidation.WithDetails("customer_name is required")
	}
	if len(phone) < MinCustomerPhoneLength {
		return domainerrors.ErrValidation.WithDetails("phone must be at least 10 characters")
	}

	customer.CustomerName = name
	customer.Phone = phone
	customer.Email = util.NormalizeEmail(input.Email)
	customer.Address = strings.TrimSpace(input.Address)
	customer.GSTNumber = strings.ToUpper(strings.TrimSpace(input.GSTNumber))

	return nil
}
