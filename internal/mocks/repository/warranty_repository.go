package repository

import (
	"context"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"

	"github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// MockWarrantyRepository is a mock type for the WarrantyRepository type
type MockWarrantyRepository struct {
	mock.Mock
}

type MockWarrantyRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockWarrantyRepository) EXPECT() *MockWarrantyRepository_Expecter {
	return &MockWarrantyRepository_Expecter{mock: &_m.Mock}
}

// CreateWarranty provides a mock function with given fields: ctx, warranty
func (_m *MockWarrantyRepository) CreateWarranty(ctx context.Context, warranty *entity.Warranty) error {
	ret := _m.Called(ctx, warranty)

	if len(ret) == 0 {
		panic("no return value specified for CreateWarranty")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Warranty) error); ok {
		r0 = rf(ctx, warranty)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockWarrantyRepository_CreateWarranty_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateWarranty'
type MockWarrantyRepository_CreateWarranty_Call struct {
	*mock.Call
}

// CreateWarranty is a helper method to define mock.On call
//   - ctx context.Context
//   - warranty *entity.Warranty
func (_e *MockWarrantyRepository_Expecter) CreateWarranty(ctx interface{}, warranty interface{}) *MockWarrantyRepository_CreateWarranty_Call {
	return &MockWarrantyRepository_CreateWarranty_Call{Call: _e.mock.On("CreateWarranty", ctx, warranty)}
}

func (_c *MockWarrantyRepository_CreateWarranty_Call) Run(run func(ctx context.Context, warranty *entity.Warranty)) *MockWarrantyRepository_CreateWarranty_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Warranty))
	})
	return _c
}

func (_c *MockWarrantyRepository_CreateWarranty_Call) Return(_a0 error) *MockWarrantyRepository_CreateWarranty_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockWarrantyRepository_CreateWarranty_Call) RunAndReturn(run func(context.Context, *entity.Warranty) error) *MockWarrantyRepository_CreateWarranty_Call {
	_c.Call.Return(run)
	return _c
}

// FindWarrantyByID provides a mock function with given fields: ctx, storeID, id
func (_m *MockWarrantyRepository) FindWarrantyByID(ctx context.Context, storeID uuid.UUID, id uuid.UUID) (*entity.Warranty, error) {
	ret := _m.Called(ctx, storeID, id)

	if len(ret) == 0 {
		panic("no return value specified for FindWarrantyByID")
	}

	var r0 *entity.Warranty
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (*entity.Warranty, error)); ok {
		return rf(ctx, storeID, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *entity.Warranty); ok {
		r0 = rf(ctx, storeID, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Warranty)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, storeID, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockWarrantyRepository_FindWarrantyByID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindWarrantyByID'
type MockWarrantyRepository_FindWarrantyByID_Call struct {
	*mock.Call
}

// FindWarrantyByID is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - id uuid.UUID
func (_e *MockWarrantyRepository_Expecter) FindWarrantyByID(ctx interface{}, storeID interface{}, id interface{}) *MockWarrantyRepository_FindWarrantyByID_Call {
	return &MockWarrantyRepository_FindWarrantyByID_Call{Call: _e.mock.On("FindWarrantyByID", ctx, storeID, id)}
}

func (_c *MockWarrantyRepository_FindWarrantyByID_Call) Run(run func(ctx context.Context, storeID uuid.UUID, id uuid.UUID)) *MockWarrantyRepository_FindWarrantyByID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockWarrantyRepository_FindWarrantyByID_Call) Return(_a0 *entity.Warranty, _a1 error) *MockWarrantyRepository_FindWarrantyByID_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockWarrantyRepository_FindWarrantyByID_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) (*entity.Warranty, error)) *MockWarrantyRepository_FindWarrantyByID_Call {
	_c.Call.Return(run)
	return _c
}

// FindWarrantyByIDAnyStore provides a mock function with given fields: ctx, id
func (_m *MockWarrantyRepository) FindWarrantyByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.Warranty, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for FindWarrantyByIDAnyStore")
	}

	var r0 *entity.Warranty
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*entity.Warranty, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *entity.Warranty); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Warranty)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockWarrantyRepository_FindWarrantyByIDAnyStore_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindWarrantyByIDAnyStore'
type MockWarrantyRepository_FindWarrantyByIDAnyStore_Call struct {
	*mock.Call
}

// FindWarrantyByIDAnyStore is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
func (_e *MockWarrantyRepository_Expecter) FindWarrantyByIDAnyStore(ctx interface{}, id interface{}) *MockWarrantyRepository_FindWarrantyByIDAnyStore_Call {
	return &MockWarrantyRepository_FindWarrantyByIDAnyStore_Call{Call: _e.mock.On("FindWarrantyByIDAnyStore", ctx, id)}
}

func (_c *MockWarrantyRepository_FindWarrantyByIDAnyStore_Call) Run(run func(ctx context.Context, id uuid.UUID)) *MockWarrantyRepository_FindWarrantyByIDAnyStore_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockWarrantyRepository_FindWarrantyByIDAnyStore_Call) Return(_a0 *entity.Warranty, _a1 error) *MockWarrantyRepository_FindWarrantyByIDAnyStore_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockWarrantyRepository_FindWarrantyByIDAnyStore_Call) RunAndReturn(run func(context.Context, uuid.UUID) (*entity.Warranty, error)) *MockWarrantyRepository_FindWarrantyByIDAnyStore_Call {
	_c.Call.Return(run)
	return _c
}

// FindWarrantyByTriple provides a mock function with given fields: ctx, productItemID, customerID, storeID
func (_m *MockWarrantyRepository) FindWarrantyByTriple(ctx context.Context, productItemID uuid.UUID, customerID uuid.UUID, storeID uuid.UUID) (*entity.Warranty, error) {
	ret := _m.Called(ctx, productItemID, customerID, storeID)

	if len(ret) == 0 {
		panic("no return value specified for FindWarrantyByTriple")
	}

	var r0 *entity.Warranty
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*entity.Warranty, error)); ok {
		return rf(ctx, productItemID, customerID, storeID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) *entity.Warranty); ok {
		r0 = rf(ctx, productItemID, customerID, storeID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Warranty)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, productItemID, customerID, storeID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockWarrantyRepository_FindWarrantyByTriple_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindWarrantyByTriple'
type MockWarrantyRepository_FindWarrantyByTriple_Call struct {
	*mock.Call
}

// FindWarrantyByTriple is a helper method to define mock.On call
//   - ctx context.Context
//   - productItemID uuid.UUID
//   - customerID uuid.UUID
//   - storeID uuid.UUID
func (_e *MockWarrantyRepository_Expecter) FindWarrantyByTriple(ctx interface{}, productItemID interface{}, customerID interface{}, storeID interface{}) *MockWarrantyRepository_FindWarrantyByTriple_Call {
	return &MockWarrantyRepository_FindWarrantyByTriple_Call{Call: _e.mock.On("FindWarrantyByTriple", ctx, productItemID, customerID, storeID)}
}

func (_c *MockWarrantyRepository_FindWarrantyByTriple_Call) Run(run func(ctx context.Context, productItemID uuid.UUID, customerID uuid.UUID, storeID uuid.UUID)) *MockWarrantyRepository_FindWarrantyByTriple_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID), args[3].(uuid.UUID))
	})
	return _c
}

func (_c *MockWarrantyRepository_FindWarrantyByTriple_Call) Return(_a0 *entity.Warranty, _a1 error) *MockWarrantyRepository_FindWarrantyByTriple_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockWarrantyRepository_FindWarrantyByTriple_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*entity.Warranty, error)) *MockWarrantyRepository_FindWarrantyByTriple_Call {
	_c.Call.Return(run)
	return _c
}

// FindWarrantiesByProduct provides a mock function with given fields: ctx, storeID, productItemID
func (_m *MockWarrantyRepository) FindWarrantiesByProduct(ctx context.Context, storeID uuid.UUID, productItemID uuid.UUID) ([]*entity.Warranty, error) {
	ret := _m.Called(ctx, storeID, productItemID)

	if len(ret) == 0 {
		panic("no return value specified for FindWarrantiesByProduct")
	}

	var r0 []*entity.Warranty
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) ([]*entity.Warranty, error)); ok {
		return rf(ctx, storeID, productItemID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) []*entity.Warranty); ok {
		r0 = rf(ctx, storeID, productItemID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Warranty)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, storeID, productItemID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockWarrantyRepository_FindWarrantiesByProduct_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindWarrantiesByProduct'
type MockWarrantyRepository_FindWarrantiesByProduct_Call struct {
	*mock.Call
}

// FindWarrantiesByProduct is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - productItemID uuid.UUID
func (_e *MockWarrantyRepository_Expecter) FindWarrantiesByProduct(ctx interface{}, storeID interface{}, productItemID interface{}) *MockWarrantyRepository_FindWarrantiesByProduct_Call {
	return &MockWarrantyRepository_FindWarrantiesByProduct_Call{Call: _e.mock.On("FindWarrantiesByProduct", ctx, storeID, productItemID)}
}

func (_c *MockWarrantyRepository_FindWarrantiesByProduct_Call) Run(run func(ctx context.Context, storeID uuid.UUID, productItemID uuid.UUID)) *MockWarrantyRepository_FindWarrantiesByProduct_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockWarrantyRepository_FindWarrantiesByProduct_Call) Return(_a0 []*entity.Warranty, _a1 error) *MockWarrantyRepository_FindWarrantiesByProduct_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockWarrantyRepository_FindWarrantiesByProduct_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) ([]*entity.Warranty, error)) *MockWarrantyRepository_FindWarrantiesByProduct_Call {
	_c.Call.Return(run)
	return _c
}

// ListWarranties provides a mock function with given fields: ctx, storeID, filter, page
func (_m *MockWarrantyRepository) ListWarranties(ctx context.Context, storeID uuid.UUID, filter repository.WarrantyFilter, page entity.PageRequest) ([]*entity.Warranty, int64, error) {
	ret := _m.Called(ctx, storeID, filter, page)

	if len(ret) == 0 {
		panic("no return value specified for ListWarranties")
	}

	var r0 []*entity.Warranty
	var r1 int64
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, repository.WarrantyFilter, entity.PageRequest) ([]*entity.Warranty, int64, error)); ok {
		return rf(ctx, storeID, filter, page)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, repository.WarrantyFilter, entity.PageRequest) []*entity.Warranty); ok {
		r0 = rf(ctx, storeID, filter, page)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Warranty)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, repository.WarrantyFilter, entity.PageRequest) int64); ok {
		r1 = rf(ctx, storeID, filter, page)
	} else {
		r1 = ret.Get(1).(int64)
	}

	if rf, ok := ret.Get(2).(func(context.Context, uuid.UUID, repository.WarrantyFilter, entity.PageRequest) error); ok {
		r2 = rf(ctx, storeID, filter, page)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// MockWarrantyRepository_ListWarranties_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListWarranties'
type MockWarrantyRepository_ListWarranties_Call struct {
	*mock.Call
}

// ListWarranties is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - filter repository.WarrantyFilter
//   - page entity.PageRequest
func (_e *MockWarrantyRepository_Expecter) ListWarranties(ctx interface{}, storeID interface{}, filter interface{}, page interface{}) *MockWarrantyRepository_ListWarranties_Call {
	return &MockWarrantyRepository_ListWarranties_Call{Call: _e.mock.On("ListWarranties", ctx, storeID, filter, page)}
}

func (_c *MockWarrantyRepository_ListWarranties_Call) Run(run func(ctx context.Context, storeID uuid.UUID, filter repository.WarrantyFilter, page entity.PageRequest)) *MockWarrantyRepository_ListWarranties_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(repository.WarrantyFilter), args[3].(entity.PageRequest))
	})
	return _c
}

func (_c *MockWarrantyRepository_ListWarranties_Call) Return(_a0 []*entity.Warranty, _a1 int64, _a2 error) *MockWarrantyRepository_ListWarranties_Call {
	_c.Call.Return(_a0, _a1, _a2)
	return _c
}

func (_c *MockWarrantyRepository_ListWarranties_Call) RunAndReturn(run func(context.Context, uuid.UUID, repository.WarrantyFilter, entity.PageRequest) ([]*entity.Warranty, int64, error)) *MockWarrantyRepository_ListWarranties_Call {
	_c.Call.Return(run)
	return _c
}

// UpdateWarranty provides a mock function with given fields: ctx, warranty
func (_m *MockWarrantyRepository) UpdateWarranty(ctx context.Context, warranty *entity.Warranty) error {
	ret := _m.Called(ctx, warranty)

	if len(ret) == 0 {
		panic("no return value specified for UpdateWarranty")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Warranty) error); ok {
		r0 = rf(ctx, warranty)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockWarrantyRepository_UpdateWarranty_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UpdateWarranty'
type MockWarrantyRepository_UpdateWarranty_Call struct {
	*mock.Call
}

// UpdateWarranty is a helper method to define mock.On call
//   - ctx context.Context
//   - warranty *entity.Warranty
func (_e *MockWarrantyRepository_Expecter) UpdateWarranty(ctx interface{}, warranty interface{}) *MockWarrantyRepository_UpdateWarranty_Call {
	return &MockWarrantyRepository_UpdateWarranty_Call{Call: _e.mock.On("UpdateWarranty", ctx, warranty)}
}

func (_c *MockWarrantyRepository_UpdateWarranty_Call) Run(run func(ctx context.Context, warranty *entity.Warranty)) *MockWarrantyRepository_UpdateWarranty_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Warranty))
	})
	return _c
}

func (_c *MockWarrantyRepository_UpdateWarranty_Call) Return(_a0 error) *MockWarrantyRepository_UpdateWarranty_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockWarrantyRepository_UpdateWarranty_Call) RunAndReturn(run func(context.Context, *entity.Warranty) error) *MockWarrantyRepository_UpdateWarranty_Call {
	_c.Call.Return(run)
	return _c
}

// UpdateArtifacts provides a mock function with given fields: ctx, id, qrCodeURL, pdfURL
func (_m *MockWarrantyRepository) UpdateArtifacts(ctx context.Context, id uuid.UUID, qrCodeURL string, pdfURL string) error {
	ret := _m.Called(ctx, id, qrCodeURL, pdfURL)

	if len(ret) == 0 {
		panic("no return value specified for UpdateArtifacts")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string, string) error); ok {
		r0 = rf(ctx, id, qrCodeURL, pdfURL)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockWarrantyRepository_UpdateArtifacts_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UpdateArtifacts'
type MockWarrantyRepository_UpdateArtifacts_Call struct {
	*mock.Call
}

// UpdateArtifacts is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
//   - qrCodeURL string
//   - pdfURL string
func (_e *MockWarrantyRepository_Expecter) UpdateArtifacts(ctx interface{}, id interface{}, qrCodeURL interface{}, pdfURL interface{}) *MockWarrantyRepository_UpdateArtifacts_Call {
	return &MockWarrantyRepository_UpdateArtifacts_Call{Call: _e.mock.On("UpdateArtifacts", ctx, id, qrCodeURL, pdfURL)}
}

func (_c *MockWarrantyRepository_UpdateArtifacts_Call) Run(run func(ctx context.Context, id uuid.UUID, qrCodeURL string, pdfURL string)) *MockWarrantyRepository_UpdateArtifacts_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(string), args[3].(string))
	})
	return _c
}

func (_c *MockWarrantyRepository_UpdateArtifacts_Call) Return(_a0 error) *MockWarrantyRepository_UpdateArtifacts_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockWarrantyRepository_UpdateArtifacts_Call) RunAndReturn(run func(context.Context, uuid.UUID, string, string) error) *MockWarrantyRepository_UpdateArtifacts_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockWarrantyRepository creates a new instance of MockWarrantyRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockWarrantyRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWarrantyRepository {
	mock := &MockWarrantyRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
