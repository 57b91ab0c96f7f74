package impl

import (
	"context"
	"testing"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	mockRepo "warranty/internal/mocks/repository"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type customerServiceFixtures struct {
	service      usecase.CustomerUsecase
	customerRepo *mockRepo.MockCustomerRepository
	audit        *recordingAudit
	owner        *entity.OwnerPrincipal
}

func createTestCustomerService(t *testing.T) customerServiceFixtures {
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	audit := &recordingAudit{}

	return customerServiceFixtures{
		service: NewCustomerService(CustomerServiceParams{
			CustomerRepo: customerRepo,
			AuditLogger:  audit,
			Logger:       discardLogger(),
		}),
		customerRepo: customerRepo,
		audit:        audit,
		owner:        ownerOfNewStore(),
	}
}

func validCustomerInput() *usecase.CustomerInput {
	return &usecase.CustomerInput{CustomerName: "Asha Rao", Phone: "9876543210", Email: "asha@example.com"}
}

func TestCustomerService_Create_RepositoryError(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()

	fx.customerRepo.EXPECT().
		CreateCustomer(ctx, mock.AnythingOfType("*entity.Customer")).
		Return(errors.New("database error"))

	_, err := fx.service.Create(ctx, fx.owner, validCustomerInput())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create customer")
	assert.Empty(t, fx.audit.entries)
}

func TestCustomerService_List_RepositoryError(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	page := entity.NewPageRequest(1, 0, entity.DefaultPageLimit)

	fx.customerRepo.EXPECT().
		ListCustomers(ctx, fx.owner.StoreID, page).
		Return(nil, int64(0), errors.New("database error"))

	_, err := fx.service.List(ctx, fx.owner, page)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list customers")
}

func TestCustomerService_Get_NotFound(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	customerID := uuid.New()

	fx.customerRepo.EXPECT().
		FindCustomerByID(ctx, fx.owner.StoreID, customerID).
		Return(nil, repository.ErrCustomerNotFound)

	_, err := fx.service.Get(ctx, fx.owner, customerID)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}

func TestCustomerService_Get_FindError(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	customerID := uuid.New()

	fx.customerRepo.EXPECT().
		FindCustomerByID(ctx, fx.owner.StoreID, customerID).
		Return(nil, errors.New("database error"))

	_, err := fx.service.Get(ctx, fx.owner, customerID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load customer")
}

func TestCustomerService_Update_UpdateError(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	existing := &entity.Customer{ID: uuid.New(), StoreID: fx.owner.StoreID, CustomerName: "Asha", Phone: "9876543210"}

	fx.customerRepo.EXPECT().
		FindCustomerByID(ctx, fx.owner.StoreID, existing.ID).
		Return(existing, nil)

	fx.customerRepo.EXPECT().
		UpdateCustomer(ctx, existing).
		Return(errors.New("database error"))

	_, err := fx.service.Update(ctx, fx.owner, existing.ID, validCustomerInput())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update customer")
	assert.Empty(t, fx.audit.entries)
}
