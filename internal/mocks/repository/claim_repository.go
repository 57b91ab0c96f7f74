package repository

import (
	"context"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"

	"github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// MockClaimRepository is a mock type for the ClaimRepository type
type MockClaimRepository struct {
	mock.Mock
}

type MockClaimRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockClaimRepository) EXPECT() *MockClaimRepository_Expecter {
	return &MockClaimRepository_Expecter{mock: &_m.Mock}
}

// CreateClaim provides a mock function with given fields: ctx, claim
func (_m *MockClaimRepository) CreateClaim(ctx context.Context, claim *entity.Claim) error {
	ret := _m.Called(ctx, claim)

	if len(ret) == 0 {
		panic("no return value specified for CreateClaim")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Claim) error); ok {
		r0 = rf(ctx, claim)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockClaimRepository_CreateClaim_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateClaim'
type MockClaimRepository_CreateClaim_Call struct {
	*mock.Call
}

// CreateClaim is a helper method to define mock.On call
//   - ctx context.Context
//   - claim *entity.Claim
func (_e *MockClaimRepository_Expecter) CreateClaim(ctx interface{}, claim interface{}) *MockClaimRepository_CreateClaim_Call {
	return &MockClaimRepository_CreateClaim_Call{Call: _e.mock.On("CreateClaim", ctx, claim)}
}

func (_c *MockClaimRepository_CreateClaim_Call) Run(run func(ctx context.Context, claim *entity.Claim)) *MockClaimRepository_CreateClaim_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Claim))
	})
	return _c
}

func (_c *MockClaimRepository_CreateClaim_Call) Return(_a0 error) *MockClaimRepository_CreateClaim_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockClaimRepository_CreateClaim_Call) RunAndReturn(run func(context.Context, *entity.Claim) error) *MockClaimRepository_CreateClaim_Call {
	_c.Call.Return(run)
	return _c
}

// FindClaimByID provides a mock function with given fields: ctx, storeID, id
func (_m *MockClaimRepository) FindClaimByID(ctx context.Context, storeID uuid.UUID, id uuid.UUID) (*entity.Claim, error) {
	ret := _m.Called(ctx, storeID, id)

	if len(ret) == 0 {
		panic("no return value specified for FindClaimByID")
	}

	var r0 *entity.Claim
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (*entity.Claim, error)); ok {
		return rf(ctx, storeID, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *entity.Claim); ok {
		r0 = rf(ctx, storeID, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Claim)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, storeID, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockClaimRepository_FindClaimByID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindClaimByID'
type MockClaimRepository_FindClaimByID_Call struct {
	*mock.Call
}

// FindClaimByID is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - id uuid.UUID
func (_e *MockClaimRepository_Expecter) FindClaimByID(ctx interface{}, storeID interface{}, id interface{}) *MockClaimRepository_FindClaimByID_Call {
	return &MockClaimRepository_FindClaimByID_Call{Call: _e.mock.On("FindClaimByID", ctx, storeID, id)}
}

func (_c *MockClaimRepository_FindClaimByID_Call) Run(run func(ctx context.Context, storeID uuid.UUID, id uuid.UUID)) *MockClaimRepository_FindClaimByID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockClaimRepository_FindClaimByID_Call) Return(_a0 *entity.Claim, _a1 error) *MockClaimRepository_FindClaimByID_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockClaimRepository_FindClaimByID_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) (*entity.Claim, error)) *MockClaimRepository_FindClaimByID_Call {
	_c.Call.Return(run)
	return _c
}

// ListClaims provides a mock function with given fields: ctx, storeID, filter, page
func (_m *MockClaimRepository) ListClaims(ctx context.Context, storeID uuid.UUID, filter repository.ClaimFilter, page entity.PageRequest) ([]*entity.Claim, int64, error) {
	ret := _m.Called(ctx, storeID, filter, page)

	if len(ret) == 0 {
		panic("no return value specified for ListClaims")
	}

	var r0 []*entity.Claim
	var r1 int64
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, repository.ClaimFilter, entity.PageRequest) ([]*entity.Claim, int64, error)); ok {
		return rf(ctx, storeID, filter, page)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, repository.ClaimFilter, entity.PageRequest) []*entity.Claim); ok {
		r0 = rf(ctx, storeID, filter, page)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Claim)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, repository.ClaimFilter, entity.PageRequest) int64); ok {
		r1 = rf(ctx, storeID, filter, page)
	} else {
		r1 = ret.Get(1).(int64)
	}

	if rf, ok := ret.Get(2).(func(context.Context, uuid.UUID, repository.ClaimFilter, entity.PageRequest) error); ok {
		r2 = rf(ctx, storeID, filter, page)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// MockClaimRepository_ListClaims_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListClaims'
type MockClaimRepository_ListClaims_Call struct {
	*mock.Call
}

// ListClaims is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - filter repository.ClaimFilter
//   - page entity.PageRequest
func (_e *MockClaimRepository_Expecter) ListClaims(ctx interface{}, storeID interface{}, filter interface{}, page interface{}) *MockClaimRepository_ListClaims_Call {
	return &MockClaimRepository_ListClaims_Call{Call: _e.mock.On("ListClaims", ctx, storeID, filter, page)}
}

func (_c *MockClaimRepository_ListClaims_Call) Run(run func(ctx context.Context, storeID uuid.UUID, filter repository.ClaimFilter, page entity.PageRequest)) *MockClaimRepository_ListClaims_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(repository.ClaimFilter), args[3].(entity.PageRequest))
	})
	return _c
}

func (_c *MockClaimRepository_ListClaims_Call) Return(_a0 []*entity.Claim, _a1 int64, _a2 error) *MockClaimRepository_ListClaims_Call {
	_c.Call.Return(_a0, _a1, _a2)
	return _c
}

func (_c *MockClaimRepository_ListClaims_Call) RunAndReturn(run func(context.Context, uuid.UUID, repository.ClaimFilter, entity.PageRequest) ([]*entity.Claim, int64, error)) *MockClaimRepository_ListClaims_Call {
	_c.Call.Return(run)
	return _c
}

// FindClaimsByWarranties provides a mock function with given fields: ctx, storeID, warrantyIDs
func (_m *MockClaimRepository) FindClaimsByWarranties(ctx context.Context, storeID uuid.UUID, warrantyIDs []uuid.UUID) ([]*entity.Claim, error) {
	ret := _m.Called(ctx, storeID, warrantyIDs)

	if len(ret) == 0 {
		panic("no return value specified for FindClaimsByWarranties")
	}

	var r0 []*entity.Claim
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []uuid.UUID) ([]*entity.Claim, error)); ok {
		return rf(ctx, storeID, warrantyIDs)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []uuid.UUID) []*entity.Claim); ok {
		r0 = rf(ctx, storeID, warrantyIDs)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Claim)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, []uuid.UUID) error); ok {
		r1 = rf(ctx, storeID, warrantyIDs)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockClaimRepository_FindClaimsByWarranties_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindClaimsByWarranties'
type MockClaimRepository_FindClaimsByWarranties_Call struct {
	*mock.Call
}

// FindClaimsByWarranties is a helper method to define mock.On call
//   - ctx context.Context
//   - storeID uuid.UUID
//   - warrantyIDs []uuid.UUID
func (_e *MockClaimRepository_Expecter) FindClaimsByWarranties(ctx interface{}, storeID interface{}, warrantyIDs interface{}) *MockClaimRepository_FindClaimsByWarranties_Call {
	return &MockClaimRepository_FindClaimsByWarranties_Call{Call: _e.mock.On("FindClaimsByWarranties", ctx, storeID, warrantyIDs)}
}

func (_c *MockClaimRepository_FindClaimsByWarranties_Call) Run(run func(ctx context.Context, storeID uuid.UUID, warrantyIDs []uuid.UUID)) *MockClaimRepository_FindClaimsByWarranties_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].([]uuid.UUID))
	})
	return _c
}

func (_c *MockClaimRepository_FindClaimsByWarranties_Call) Return(_a0 []*entity.Claim, _a1 error) *MockClaimRepository_FindClaimsByWarranties_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockClaimRepository_FindClaimsByWarranties_Call) RunAndReturn(run func(context.Context, uuid.UUID, []uuid.UUID) ([]*entity.Claim, error)) *MockClaimRepository_FindClaimsByWarranties_Call {
	_c.Call.Return(run)
	return _c
}

// UpdateClaimStatus provides a mock function with given fields: ctx, id, from, to, event
func (_m *MockClaimRepository) UpdateClaimStatus(ctx context.Context, id uuid.UUID, from entity.ClaimStatus, to entity.ClaimStatus, event entity.TimelineEvent) error {
	ret := _m.Called(ctx, id, from, to, event)

	if len(ret) == 0 {
		panic("no return value specified for UpdateClaimStatus")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, entity.ClaimStatus, entity.ClaimStatus, entity.TimelineEvent) error); ok {
		r0 = rf(ctx, id, from, to, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockClaimRepository_UpdateClaimStatus_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UpdateClaimStatus'
type MockClaimRepository_UpdateClaimStatus_Call struct {
	*mock.Call
}

// UpdateClaimStatus is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
//   - from entity.ClaimStatus
//   - to entity.ClaimStatus
//   - event entity.TimelineEvent
func (_e *MockClaimRepository_Expecter) UpdateClaimStatus(ctx interface{}, id interface{}, from interface{}, to interface{}, event interface{}) *MockClaimRepository_UpdateClaimStatus_Call {
	return &MockClaimRepository_UpdateClaimStatus_Call{Call: _e.mock.On("UpdateClaimStatus", ctx, id, from, to, event)}
}

func (_c *MockClaimRepository_UpdateClaimStatus_Call) Run(run func(ctx context.Context, id uuid.UUID, from entity.ClaimStatus, to entity.ClaimStatus, event entity.TimelineEvent)) *MockClaimRepository_UpdateClaimStatus_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(entity.ClaimStatus), args[3].(entity.ClaimStatus), args[4].(entity.TimelineEvent))
	})
	return _c
}

func (_c *MockClaimRepository_UpdateClaimStatus_Call) Return(_a0 error) *MockClaimRepository_UpdateClaimStatus_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockClaimRepository_UpdateClaimStatus_Call) RunAndReturn(run func(context.Context, uuid.UUID, entity.ClaimStatus, entity.ClaimStatus, entity.TimelineEvent) error) *MockClaimRepository_UpdateClaimStatus_Call {
	_c.Call.Return(run)
	return _c
}

// AppendTimelineEvent provides a mock function with given fields: ctx, id, event
func (_m *MockClaimRepository) AppendTimelineEvent(ctx context.Context, id uuid.UUID, event entity.TimelineEvent) error {
	ret := _m.Called(ctx, id, event)

	if len(ret) == 0 {
		panic("no return value specified for AppendTimelineEvent")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, entity.TimelineEvent) error); ok {
		r0 = rf(ctx, id, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockClaimRepository_AppendTimelineEvent_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'AppendTimelineEvent'
type MockClaimRepository_AppendTimelineEvent_Call struct {
	*mock.Call
}

// AppendTimelineEvent is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
//   - event entity.TimelineEvent
func (_e *MockClaimRepository_Expecter) AppendTimelineEvent(ctx interface{}, id interface{}, event interface{}) *MockClaimRepository_AppendTimelineEvent_Call {
	return &MockClaimRepository_AppendTimelineEvent_Call{Call: _e.mock.On("AppendTimelineEvent", ctx, id, event)}
}

func (_c *MockClaimRepository_AppendTimelineEvent_Call) Run(run func(ctx context.Context, id uuid.UUID, event entity.TimelineEvent)) *MockClaimRepository_AppendTimelineEvent_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(entity.TimelineEvent))
	})
	return _c
}

func (_c *MockClaimRepository_AppendTimelineEvent_Call) Return(_a0 error) *MockClaimRepository_AppendTimelineEvent_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockClaimRepository_AppendTimelineEvent_Call) RunAndReturn(run func(context.Context, uuid.UUID, entity.TimelineEvent) error) *MockClaimRepository_AppendTimelineEvent_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockClaimRepository creates a new instance of MockClaimRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockClaimRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClaimRepository {
	mock := &MockClaimRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
