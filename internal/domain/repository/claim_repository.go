package repository

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrClaimNotFound is returned when a claim does not exist in the store.
	ErrClaimNotFound = errors.New("claim not found")
	// ErrClaimStatusConflict is returned when the claim no longer has the
	// status a transition started from.
	ErrClaimStatusConflict = errors.New("claim status changed")
)

// ClaimFilter narrows claim listings.
type ClaimFilter struct {
	Status     entity.ClaimStatus
	WarrantyID *uuid.UUID
}

// ClaimRepository persists claims. Timeline writes append; they never
// rewrite existing events.
type ClaimRepository interface {
	CreateClaim(ctx context.Context, claim *entity.Claim) error

	// FindClaimByID loads the claim with its warranty.
	FindClaimByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Claim, error)

	ListClaims(ctx context.Context, storeID uuid.UUID, filter ClaimFilter, page entity.PageRequest) ([]*entity.Claim, int64, error)

	// FindClaimsByWarranties returns the claims of the warranties, newest first.
	FindClaimsByWarranties(ctx context.Context, storeID uuid.UUID, warrantyIDs []uuid.UUID) ([]*entity.Claim, error)

	// UpdateClaimStatus moves the claim from one status to another and
	// appends the event in one statement. It returns ErrClaimStatusConflict
	// when the stored status is no longer from.
	UpdateClaimStatus(ctx context.Context, id uuid.UUID, from, to entity.ClaimStatus, event entity.TimelineEvent) error

	AppendTimelineEvent(ctx context.Context, id uuid.UUID, event entity.TimelineEvent) error
}
