package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrCustomerNotFound is returned when a customer does not exist in the store.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository persists store-scoped customers.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *entity.Customer) error
	FindCustomerByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Customer, error)
	// FindCustomerByIDAnyStore skips the store filter. Callers compare the
	// store themselves.
	FindCustomerByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindCustomerByContact matches a normalized phone or a lowercased email
	// inside the store. Empty values are ignored.
	FindCustomerByContact(ctx context.Context, storeID uuid.UUID, phone, email string) (*entity.Customer, error)

	ListCustomers(ctx context.Context, storeID uuid.UUID, page entity.PageRequest) ([]*entity.Customer, int64, error)
	UpdateCustomer(ctx context.Context, customer *entity.Customer) error
}
