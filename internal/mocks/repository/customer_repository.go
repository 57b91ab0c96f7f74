package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a mock type for the CustomerRepository type
type MockCustomerRepository struct {
	mock.Mock
}

type MockCustomerRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockCustomerRepository) EXPECT() *MockCustomerRepository_Expecter {
	return &MockCustomerRepository_Expecter{mock: &_m.Mock}
}

// CreateCustomer provides a mock function with given fields: ctx, customer
func (_m *MockCustomerRepository) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	ret := _m.Called(ctx, customer)

	if len(ret) == 0 {
		panic("no return value specified for CreateCustomer")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Customer) error); ok {
		r0 = rf(ctx, customer)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockCustomerRepository_CreateCustomer_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateCustomer'
type MockCustomerRepository_CreateCustomer_Call struct {
	*mock.Call
}

// CreateCustomer is a helper method to define mock.On call
//   - ctx context.Context
//   - customer *entity.Customer
func (_e *MockCustomerRepository_Expecter) CreateCustomer(ctx interface{}, customer interface{}) *MockCustomerRepository_CreateCustomer_Call {
	return &MockCustomerRepository_CreateCustomer_Call{Call: _e.mock.On("CreateCustomer", ctx, customer)}
}

func (_c *MockCustomerRepository_CreateCustomer_Call) Run(run func(ctx context.Context, customer *entity.Customer)) *MockCustomerRepository_CreateCustomer_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Customer))
	})
	return _c
}

func (_c *MockCustomerRepository_CreateCustomer_Call) Return(_a0 error) *MockCustomerRepository_CreateCustomer_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockCustomerRepository_CreateCustomer_Call) RunAndReturn(run func(context.Context, *entity.Customer) error) *MockCustomerRepository_CreateCustomer_Call {
	_c.Call.Return(run)
	return _c
}

// FindCustomerByID provides a mock function with given fields: ctx, storeID, id
func (_m *MockCustomerRepository) FindCustomerByID(ctx context.Context, storeID uuid.UUID, id uuid.UUID) (*entity.Customer, error) {
	ret := _m.Called(ctx, storeID, id)

	if len(ret) == 0 {
		panic("no return value specified for FindCustomerByID")
	}

	var r0 *entity.Customer
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (*entity.Customer, error)); ok {
		return rf(ctx, storeID, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *entity.Customer); ok {
		r0 = rf(ctx, storeID, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Customer)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, storeID, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockCustomerRepository_FindCustomerByID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindCustomerByID'
type MockCustomerRepository_FindCustomerByID_Call struct {
	*mock.Call
}

// FindCustomerByID is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - id uuid.UUID
func (_e *MockCustomerRepository_Expecter) FindCustomerByID(ctx interface{}, storeID interface{}, id interface{}) *MockCustomerRepository_FindCustomerByID_Call {
	return &MockCustomerRepository_FindCustomerByID_Call{Call: _e.mock.On("FindCustomerByID", ctx, storeID, id)}
}

func (_c *MockCustomerRepository_FindCustomerByID_Call) Run(run func(ctx context.Context, storeID uuid.UUID, id uuid.UUID)) *MockCustomerRepository_FindCustomerByID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockCustomerRepository_FindCustomerByID_Call) Return(_a0 *entity.Customer, _a1 error) *MockCustomerRepository_FindCustomerByID_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockCustomerRepository_FindCustomerByID_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) (*entity.Customer, error)) *MockCustomerRepository_FindCustomerByID_Call {
	_c.Call.Return(run)
	return _c
}

// FindCustomerByIDAnyStore provides a mock function with given fields: ctx, id
func (_m *MockCustomerRepository) FindCustomerByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for FindCustomerByIDAnyStore")
	}

	var r0 *entity.Customer
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*entity.Customer, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *entity.Customer); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Customer)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockCustomerRepository_FindCustomerByIDAnyStore_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindCustomerByIDAnyStore'
type MockCustomerRepository_FindCustomerByIDAnyStore_Call struct {
	*mock.Call
}

// FindCustomerByIDAnyStore is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
func (_e *MockCustomerRepository_Expecter) FindCustomerByIDAnyStore(ctx interface{}, id interface{}) *MockCustomerRepository_FindCustomerByIDAnyStore_Call {
	return &MockCustomerRepository_FindCustomerByIDAnyStore_Call{Call: _e.mock.On("FindCustomerByIDAnyStore", ctx, id)}
}

func (_c *MockCustomerRepository_FindCustomerByIDAnyStore_Call) Run(run func(ctx context.Context, id uuid.UUID)) *MockCustomerRepository_FindCustomerByIDAnyStore_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockCustomerRepository_FindCustomerByIDAnyStore_Call) Return(_a0 *entity.Customer, _a1 error) *MockCustomerRepository_FindCustomerByIDAnyStore_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockCustomerRepository_FindCustomerByIDAnyStore_Call) RunAndReturn(run func(context.Context, uuid.UUID) (*entity.Customer, error)) *MockCustomerRepository_FindCustomerByIDAnyStore_Call {
	_c.Call.Return(run)
	return _c
}

// FindCustomerByContact provides a mock function with given fields: ctx, storeID, phone, email
func (_m *MockCustomerRepository) FindCustomerByContact(ctx context.Context, storeID uuid.UUID, phone string, email string) (*entity.Customer, error) {
	ret := _m.Called(ctx, storeID, phone, email)

	if len(ret) == 0 {
		panic("no return value specified for FindCustomerByContact")
	}

	var r0 *entity.Customer
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string, string) (*entity.Customer, error)); ok {
		return rf(ctx, storeID, phone, email)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string, string) *entity.Customer); ok {
		r0 = rf(ctx, storeID, phone, email)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Customer)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, string, string) error); ok {
		r1 = rf(ctx, storeID, phone, email)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockCustomerRepository_FindCustomerByContact_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindCustomerByContact'
type MockCustomerRepository_FindCustomerByContact_Call struct {
	*mock.Call
}

// FindCustomerByContact is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - phone string
//   - email string
func (_e *MockCustomerRepository_Expecter) FindCustomerByContact(ctx interface{}, storeID interface{}, phone interface{}, email interface{}) *MockCustomerRepository_FindCustomerByContact_Call {
	return &MockCustomerRepository_FindCustomerByContact_Call{Call: _e.mock.On("FindCustomerByContact", ctx, storeID, phone, email)}
}

func (_c *MockCustomerRepository_FindCustomerByContact_Call) Run(run func(ctx context.Context, storeID uuid.UUID, phone string, email string)) *MockCustomerRepository_FindCustomerByContact_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(string), args[3].(string))
	})
	return _c
}

func (_c *MockCustomerRepository_FindCustomerByContact_Call) Return(_a0 *entity.Customer, _a1 error) *MockCustomerRepository_FindCustomerByContact_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockCustomerRepository_FindCustomerByContact_Call) RunAndReturn(run func(context.Context, uuid.UUID, string, string) (*entity.Customer, error)) *MockCustomerRepository_FindCustomerByContact_Call {
	_c.Call.Return(run)
	return _c
}

// ListCustomers provides a mock function with given fields: ctx, storeID, page
func (_m *MockCustomerRepository) ListCustomers(ctx context.Context, storeID uuid.UUID, page entity.PageRequest) ([]*entity.Customer, int64, error) {
	ret := _m.Called(ctx, storeID, page)

	if len(ret) == 0 {
		panic("no return value specified for ListCustomers")
	}

	var r0 []*entity.Customer
	var r1 int64
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, entity.PageRequest) ([]*entity.Customer, int64, error)); ok {
		return rf(ctx, storeID, page)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, entity.PageRequest) []*entity.Customer); ok {
		r0 = rf(ctx, storeID, page)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Customer)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, entity.PageRequest) int64); ok {
		r1 = rf(ctx, storeID, page)
	} else {
		r1 = ret.Get(1).(int64)
	}

	if rf, ok := ret.Get(2).(func(context.Context, uuid.UUID, entity.PageRequest) error); ok {
		r2 = rf(ctx, storeID, page)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// MockCustomerRepository_ListCustomers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListCustomers'
type MockCustomerRepository_ListCustomers_Call struct {
	*mock.Call
}

// ListCustomers is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - page entity.PageRequest
func (_e *MockCustomerRepository_Expecter) ListCustomers(ctx interface{}, storeID interface{}, page interface{}) *MockCustomerRepository_ListCustomers_Call {
	return &MockCustomerRepository_ListCustomers_Call{Call: _e.mock.On("ListCustomers", ctx, storeID, page)}
}

func (_c *MockCustomerRepository_ListCustomers_Call) Run(run func(ctx context.Context, storeID uuid.UUID, page entity.PageRequest)) *MockCustomerRepository_ListCustomers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(entity.PageRequest))
	})
	return _c
}

func (_c *MockCustomerRepository_ListCustomers_Call) Return(_a0 []*entity.Customer, _a1 int64, _a2 error) *MockCustomerRepository_ListCustomers_Call {
	_c.Call.Return(_a0, _a1, _a2)
	return _c
}

func (_c *MockCustomerRepository_ListCustomers_Call) RunAndReturn(run func(context.Context, uuid.UUID, entity.PageRequest) ([]*entity.Customer, int64, error)) *MockCustomerRepository_ListCustomers_Call {
	_c.Call.Return(run)
	return _c
}

// UpdateCustomer provides a mock function with given fields: ctx, customer
func (_m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	ret := _m.Called(ctx, customer)

	if len(ret) == 0 {
		panic("no return value specified for UpdateCustomer")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Customer) error); ok {
		r0 = rf(ctx, customer)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockCustomerRepository_UpdateCustomer_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UpdateCustomer'
type MockCustomerRepository_UpdateCustomer_Call struct {
	*mock.Call
}

// UpdateCustomer is a helper method to define mock.On call
//   - ctx context.Context
//   - customer *entity.Customer
func (_e *MockCustomerRepository_Expecter) UpdateCustomer(ctx interface{}, customer interface{}) *MockCustomerRepository_UpdateCustomer_Call {
	return &MockCustomerRepository_UpdateCustomer_Call{Call: _e.mock.On("UpdateCustomer", ctx, customer)}
}

func (_c *MockCustomerRepository_UpdateCustomer_Call) Run(run func(ctx context.Context, customer *entity.Customer)) *MockCustomerRepository_UpdateCustomer_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Customer))
	})
	return _c
}

func (_c *MockCustomerRepository_UpdateCustomer_Call) Return(_a0 error) *MockCustomerRepository_UpdateCustomer_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockCustomerRepository_UpdateCustomer_Call) RunAndReturn(run func(context.Context, *entity.Customer) error) *MockCustomerRepository_UpdateCustomer_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockCustomerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCustomerRepository {
	mock := &MockCustomerRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
