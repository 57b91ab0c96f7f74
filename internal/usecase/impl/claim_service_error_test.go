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
	"github.com/stretchr/testify/require"
)

type claimServiceFixtures struct {
	service      usecase.ClaimUsecase
	claimRepo    *mockRepo.MockClaimRepository
	warrantyRepo *mockRepo.MockWarrantyRepository
	audit        *recordingAudit
	owner        *entity.OwnerPrincipal
}

func createTestClaimService(t *testing.T) claimServiceFixtures {
	claimRepo := mockRepo.NewMockClaimRepository(t)
	warrantyRepo := mockRepo.NewMockWarrantyRepository(t)
	audit := &recordingAudit{}

	return claimServiceFixtures{
		service: NewClaimService(ClaimServiceParams{
			ClaimRepo:    claimRepo,
			WarrantyRepo: warrantyRepo,
			AuditLogger:  audit,
			Logger:       discardLogger(),
		}),
		claimRepo:    claimRepo,
		warrantyRepo: warrantyRepo,
		audit:        audit,
		owner:        ownerOfNewStore(),
	}
}

// ownerOfNewStore is an owner acting on a store it owns, without a member row.
func ownerOfNewStore() *entity.OwnerPrincipal {
	return &entity.OwnerPrincipal{
		Account:   &entity.OwnerAccount{ID: uuid.New()},
		StoreID:   uuid.New(),
		OwnsStore: true,
	}
}

func TestClaimService_UpdateStatus_ConcurrentTransition(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	claim := &entity.Claim{ID: uuid.New(), StoreID: fx.owner.StoreID, Status: entity.ClaimStatusPending}

	fx.claimRepo.EXPECT().
		FindClaimByID(ctx, fx.owner.StoreID, claim.ID).
		Return(claim, nil)

	// Another request moved the claim to rejected after it was read.
	fx.claimRepo.EXPECT().
		UpdateClaimStatus(ctx, claim.ID, entity.ClaimStatusPending, entity.ClaimStatusApproved, mock.AnythingOfType("entity.TimelineEvent")).
		Return(repository.ErrClaimStatusConflict)

	_, err := fx.service.UpdateStatus(ctx, fx.owner, claim.ID, &usecase.UpdateClaimStatusInput{Status: entity.ClaimStatusApproved})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
	assert.Empty(t, fx.audit.entries)
}

func TestClaimService_UpdateStatus_ClaimRemoved(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	claim := &entity.Claim{ID: uuid.New(), StoreID: fx.owner.StoreID, Status: entity.ClaimStatusApproved}

	fx.claimRepo.EXPECT().
		FindClaimByID(ctx, fx.owner.StoreID, claim.ID).
		Return(claim, nil)

	fx.claimRepo.EXPECT().
		UpdateClaimStatus(ctx, claim.ID, entity.ClaimStatusApproved, entity.ClaimStatusCompleted, mock.AnythingOfType("entity.TimelineEvent")).
		Return(repository.ErrClaimNotFound)

	_, err := fx.service.UpdateStatus(ctx, fx.owner, claim.ID, &usecase.UpdateClaimStatusInput{Status: entity.ClaimStatusCompleted})
	assert.ErrorIs(t, err, domainerrors.ErrClaimNotFound)
}

func TestClaimService_UpdateStatus_UpdateError(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	claim := &entity.Claim{ID: uuid.New(), StoreID: fx.owner.StoreID, Status: entity.ClaimStatusPending}

	fx.claimRepo.EXPECT().
		FindClaimByID(ctx, fx.owner.StoreID, claim.ID).
		Return(claim, nil)

	fx.claimRepo.EXPECT().
		UpdateClaimStatus(ctx, claim.ID, entity.ClaimStatusPending, entity.ClaimStatusRejected, mock.AnythingOfType("entity.TimelineEvent")).
		Return(errors.New("database error"))

	_, err := fx.service.UpdateStatus(ctx, fx.owner, claim.ID, &usecase.UpdateClaimStatusInput{Status: entity.ClaimStatusRejected})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update claim status")
}

func TestClaimService_Get_FindError(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	claimID := uuid.New()

	fx.claimRepo.EXPECT().
		FindClaimByID(ctx, fx.owner.StoreID, claimID).
		Return(nil, errors.New("database error"))

	_, err := fx.service.Get(ctx, fx.owner, claimID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load claim")
}

func TestClaimService_List_RepositoryError(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	page := entity.NewPageRequest(1, 0, entity.DefaultPageLimit)

	fx.claimRepo.EXPECT().
		ListClaims(ctx, fx.owner.StoreID, repository.ClaimFilter{}, page).
		Return(nil, int64(0), errors.New("database error"))

	_, err := fx.service.List(ctx, fx.owner, repository.ClaimFilter{}, page)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list claims")
}

func TestClaimService_File_WarrantyLookupError(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	warrantyID := uuid.New()

	fx.warrantyRepo.EXPECT().
		FindWarrantyByIDAnyStore(ctx, warrantyID).
		Return(nil, errors.New("database error"))

	_, err := fx.service.File(ctx, fx.owner, &usecase.FileClaimInput{
		WarrantyID:  warrantyID,
		ClaimType:   entity.ClaimTypeRepair,
		Description: "Screen is cracked and unusable",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load warranty")
}

func TestClaimService_File_CreateError(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	warranty := &entity.Warranty{ID: uuid.New(), StoreID: fx.owner.StoreID}

	fx.warrantyRepo.EXPECT().
		FindWarrantyByIDAnyStore(ctx, warranty.ID).
		Return(warranty, nil)

	fx.claimRepo.EXPECT().
		CreateClaim(ctx, mock.AnythingOfType("*entity.Claim")).
		Return(errors.New("database error"))

	_, err := fx.service.File(ctx, fx.owner, &usecase.FileClaimInput{
		WarrantyID:  warranty.ID,
		ClaimType:   entity.ClaimTypeRepair,
		Description: "Screen is cracked and unusable",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create claim")
	assert.Empty(t, fx.audit.entries)
}

func TestClaimService_File_DescriptionCountsCharacters(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	warranty := &entity.Warranty{ID: uuid.New(), StoreID: fx.owner.StoreID}

	// Six characters, eighteen bytes.
	_, err := fx.service.File(ctx, fx.owner, &usecase.FileClaimInput{
		WarrantyID:  warranty.ID,
		ClaimType:   entity.ClaimTypeRepair,
		Description: "画面が割れた",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	fx.warrantyRepo.EXPECT().
		FindWarrantyByIDAnyStore(ctx, warranty.ID).
		Return(warranty, nil)
	fx.claimRepo.EXPECT().
		CreateClaim(ctx, mock.AnythingOfType("*entity.Claim")).
		Return(nil)

	claim, err := fx.service.File(ctx, fx.owner, &usecase.FileClaimInput{
		WarrantyID:  warranty.ID,
		ClaimType:   entity.ClaimTypeRepair,
		Description: "画面が割れて使えません",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ClaimStatusPending, claim.Status)
}

func TestClaimService_AppendTimelineNote_AppendError(t *testing.T) {
	fx := createTestClaimService(t)

	ctx := context.Background()
	claim := &entity.Claim{ID: uuid.New(), StoreID: fx.owner.StoreID, Status: entity.ClaimStatusApproved}

	fx.claimRepo.EXPECT().
		FindClaimByID(ctx, fx.owner.StoreID, claim.ID).
		Return(claim, nil)

	fx.claimRepo.EXPECT().
		AppendTimelineEvent(ctx, claim.ID, mock.AnythingOfType("entity.TimelineEvent")).
		Return(errors.New("database error"))

	_, err := fx.service.AppendTimelineNote(ctx, fx.owner, claim.ID, &usecase.TimelineNoteInput{Action: "Courier booked"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to append timeline event")
}
