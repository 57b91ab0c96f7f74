package api

import (
	"context"
	"sync"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Each mock embeds its interface so only the methods a test exercises need
// an implementation; anything else panics on the nil embedded value.

type identityUCMock struct {
	mock.Mock
	usecase.IdentityUsecase
}

func (m *identityUCMock) ResolveIdentity(ctx context.Context, token string, storeHint uuid.UUID) (entity.Principal, error) {
	args := m.Called(ctx, token, storeHint)
	principal, _ := args.Get(0).(entity.Principal)

	return principal, args.Error(1)
}

type apiKeyUCMock struct {
	mock.Mock
	usecase.APIKeyUsecase
}

func (m *apiKeyUCMock) Validate(ctx context.Context, rawKey string) (*entity.APIKey, error) {
	args := m.Called(ctx, rawKey)
	key, _ := args.Get(0).(*entity.APIKey)

	return key, args.Error(1)
}

type authUCMock struct {
	mock.Mock
	usecase.AuthUsecase
}

func (m *authUCMock) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

func (m *authUCMock) Me(ctx context.Context, principal entity.Principal) (*usecase.MeOutput, error) {
	args := m.Called(ctx, principal)
	out, _ := args.Get(0).(*usecase.MeOutput)

	return out, args.Error(1)
}

type warrantyUCMock struct {
	mock.Mock
	usecase.WarrantyUsecase
}

func (m *warrantyUCMock) Issue(ctx context.Context, principal entity.Principal, input *usecase.IssueWarrantyInput) (*entity.Warranty, error) {
	args := m.Called(ctx, principal, input)
	w, _ := args.Get(0).(*entity.Warranty)

	return w, args.Error(1)
}

func (m *warrantyUCMock) List(ctx context.Context, principal entity.Principal, filter repository.WarrantyFilter, page entity.PageRequest) (*entity.Page[*entity.Warranty], error) {
	args := m.Called(ctx, principal, filter, page)
	p, _ := args.Get(0).(*entity.Page[*entity.Warranty])

	return p, args.Error(1)
}

func (m *warrantyUCMock) Get(ctx context.Context, principal entity.Principal, warrantyID uuid.UUID) (*entity.Warranty, error) {
	args := m.Called(ctx, principal, warrantyID)
	w, _ := args.Get(0).(*entity.Warranty)

	return w, args.Error(1)
}

func (m *warrantyUCMock) Verify(ctx context.Context, serial string) (*entity.WarrantyVerification, error) {
	args := m.Called(ctx, serial)
	v, _ := args.Get(0).(*entity.WarrantyVerification)

	return v, args.Error(1)
}

type catalogUCMock struct {
	mock.Mock
	usecase.CatalogUsecase
}

func (m *catalogUCMock) RenderBatchSerialSheet(ctx context.Context, principal entity.Principal, batchID uuid.UUID) (*usecase.SerialSheet, error) {
	args := m.Called(ctx, principal, batchID)
	sheet, _ := args.Get(0).(*usecase.SerialSheet)

	return sheet, args.Error(1)
}

func (m *catalogUCMock) CreateBatch(ctx context.Context, principal entity.Principal, input *usecase.CreateBatchInput) (*usecase.CreateBatchOutput, error) {
	args := m.Called(ctx, principal, input)
	out, _ := args.Get(0).(*usecase.CreateBatchOutput)

	return out, args.Error(1)
}

type claimUCMock struct {
	mock.Mock
	usecase.ClaimUsecase
}

func (m *claimUCMock) UpdateStatus(ctx context.Context, principal entity.Principal, claimID uuid.UUID, input *usecase.UpdateClaimStatusInput) (*entity.Claim, error) {
	args := m.Called(ctx, principal, claimID, input)
	claim, _ := args.Get(0).(*entity.Claim)

	return claim, args.Error(1)
}

type partnerUCMock struct {
	mock.Mock
	usecase.PartnerUsecase
}

func (m *partnerUCMock) GetProduct(ctx context.Context, storeID uuid.UUID, serial string) (*entity.ProductItem, error) {
	args := m.Called(ctx, storeID, serial)
	item, _ := args.Get(0).(*entity.ProductItem)

	return item, args.Error(1)
}

func (m *partnerUCMock) RegisterWarranty(ctx context.Context, storeID uuid.UUID, input *usecase.PartnerWarrantyInput) (*entity.Warranty, error) {
	args := m.Called(ctx, storeID, input)
	w, _ := args.Get(0).(*entity.Warranty)

	return w, args.Error(1)
}

// recordingReporter collects reported errors.
type recordingReporter struct {
	mu     sync.Mutex
	errors []error
	tags   []map[string]string
}

func (r *recordingReporter) Report(_ context.Context, err error, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
	r.tags = append(r.tags, tags)
}

func (r *recordingReporter) Flush() {}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.errors)
}
