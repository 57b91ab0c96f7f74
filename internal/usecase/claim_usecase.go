package usecase

import (
	"context"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"

	"github.com/google/uuid"
)

// FileClaimInput opens a claim against a warranty.
type FileClaimInput struct {
	WarrantyID  uuid.UUID
	ClaimType   entity.ClaimType
	Description string
	Attachments []string
}

// UpdateClaimStatusInput moves a claim through its workflow.
type UpdateClaimStatusInput struct {
	Status entity.ClaimStatus
	Notes  string
}

// TimelineNoteInput appends a free-form event to a claim.
type TimelineNoteInput struct {
	Action string
	Notes  string
}

// ClaimUsecase runs the claim workflow for the caller's store.
type ClaimUsecase interface {
	File(ctx context.Context, principal entity.Principal, input *FileClaimInput) (*entity.Claim, error)
	List(ctx context.Context, principal entity.Principal, filter repository.ClaimFilter, page entity.PageRequest) (*entity.Page[*entity.Claim], error)
	Get(ctx context.Context, principal entity.Principal, claimID uuid.UUID) (*entity.Claim, error)
	UpdateStatus(ctx context.Context, principal entity.Principal, claimID uuid.UUID, input *UpdateClaimStatusInput) (*entity.Claim, error)
	AppendTimelineNote(ctx context.Context, principal entity.Principal, claimID uuid.UUID, input *TimelineNoteInput) (*entity.Claim, error)
}
