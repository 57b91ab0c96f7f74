package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Timeline actions written by the claim workflow.
const (
	TimelineClaimCreated         = "Claim created"
	TimelineClaimCreatedExternal = "Claim created via external API"
	timelineStatusChangedFormat  = "Status changed to %s"
)

// claimService implements the ClaimUsecase interface.
type claimService struct {
	claimRepo    repository.ClaimRepository
	warrantyRepo repository.WarrantyRepository
	auditLogger  service.AuditLogger
	logger       *slog.Logger
	now          func() time.Time
}

// ClaimServiceParams holds dependencies for ClaimService, injected by Fx.
type ClaimServiceParams struct {
	fx.In

	ClaimRepo    repository.ClaimRepository
	WarrantyRepo repository.WarrantyRepository
	AuditLogger  service.AuditLogger
	Logger       *slog.Logger
}

// NewClaimService is the constructor for claimService.
func NewClaimService(params ClaimServiceParams) usecase.ClaimUsecase {
	return &claimService{
		claimRepo:    params.ClaimRepo,
		warrantyRepo: params.WarrantyRepo,
		auditLogger:  params.AuditLogger,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// File opens a pending claim against a warranty of the caller's store.
func (srv *claimService) File(ctx context.Context, principal entity.Principal, input *usecase.FileClaimInput) (*entity.Claim, error) {
	storeID, err := requirePermission(principal, entity.PermissionClaims)
	if err != nil {
		return nil, err
	}
	if err := validateClaimRequest(input.ClaimType, input.Description); err != nil {
		return nil, err
	}

	warranty, err := srv.warrantyRepo.FindWarrantyByIDAnyStore(ctx, input.WarrantyID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrWarrantyNotFound, domainerrors.ErrWarrantyNotFound, "failed to load warranty")
	}
	if warranty.StoreID != storeID {
		return nil, domainerrors.ErrForbidden.WithDetails("warranty belongs to another store")
	}

	claim := newClaim(warranty, input.ClaimType, input.Description, input.Attachments, entity.TimelineEvent{
		Timestamp: srv.now(),
		Action:    TimelineClaimCreated,
		ActorID:   actorRef(principal),
	})
	if err := srv.claimRepo.CreateClaim(ctx, claim); err != nil {
		return nil, errors.Wrap(err, "failed to create claim")
	}
	claim.Warranty = warranty

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityClaim, claim.ID.String(), entity.AuditActionCreate, nil, claimAuditValue(claim)))
	requestLogger(ctx, srv.logger).Info("Claim filed",
		slog.String("claim_id", claim.ID.String()),
		slog.String("warranty_id", warranty.ID.String()),
	)

	return claim, nil
}

func (srv *claimService) List(ctx context.Context, principal entity.Principal, filter repository.ClaimFilter, page entity.PageRequest) (*entity.Page[*entity.Claim], error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domainerrors.ErrValidation.WithDetails("unknown claim status " + filter.Status.String())
	}

	claims, total, err := srv.claimRepo.ListClaims(ctx, storeID, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list claims")
	}

	return entity.NewPage(claims, total, page), nil
}

func (srv *claimService) Get(ctx context.Context, principal entity.Principal, claimID uuid.UUID) (*entity.Claim, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	return srv.find(ctx, storeID, claimID)
}

// UpdateStatus moves the claim one step along its workflow and records the
// change on the timeline.
func (srv *claimService) UpdateStatus(ctx context.Context, principal entity.Principal, claimID uuid.UUID, input *usecase.UpdateClaimStatusInput) (*entity.Claim, error) {
	storeID, err := requirePermission(principal, entity.PermissionClaims)
	if err != nil {
		return nil, err
	}
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidation.WithDetails("status must be one of pending, approved, rejected, completed")
	}

	claim, err := srv.find(ctx, storeID, claimID)
	if err != nil {
		return nil, err
	}

	previous := claim.Status
	if !previous.CanTransitionTo(input.Status) {
		return nil, domainerrors.ErrInvalidStatusTransition.WithDetails(fmt.Sprintf("cannot change status from %s to %s", previous, input.Status))
	}

	event := entity.TimelineEvent{
		Timestamp: srv.now(),
		Action:    fmt.Sprintf(timelineStatusChangedFormat, input.Status),
		ActorID:   actorRef(principal),
		Notes:     strings.TrimSpace(input.Notes),
	}
	if err := srv.claimRepo.UpdateClaimStatus(ctx, claim.ID, previous, input.Status, event); err != nil {
		if errors.Is(err, repository.ErrClaimStatusConflict) {
			return nil, domainerrors.ErrInvalidStatusTransition.WithDetails(fmt.Sprintf("claim is no longer %s", previous))
		}

		return nil, translateNotFound(err, repository.ErrClaimNotFound, domainerrors.ErrClaimNotFound, "failed to update claim status")
	}
	claim.Status = input.Status
	claim.Timeline = append(claim.Timeline, event)

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityClaim, claim.ID.String(), entity.AuditActionUpdate,
		map[string]any{"status": previous},
		map[string]any{"status": claim.Status, "notes": event.Notes},
	))

	return claim, nil
}

// AppendTimelineNote adds a free-form event without changing the status.
func (srv *claimService) AppendTimelineNote(ctx context.Context, principal entity.Principal, claimID uuid.UUID, input *usecase.TimelineNoteInput) (*entity.Claim, error) {
	storeID, err := requirePermission(principal, entity.PermissionClaims)
	if err != nil {
		return nil, err
	}

	action := strings.TrimSpace(input.Action)
	if action == "" {
		return nil, domainerrors.ErrValidation.WithDetails("action is required")
	}

	claim, err := srv.find(ctx, storeID, claimID)
	if err != nil {
		return nil, err
	}

	event := entity.TimelineEvent{
		Timestamp: srv.now(),
		Action:    action,
		ActorID:   actorRef(principal),
		Notes:     strings.TrimSpace(input.Notes),
	}
	if err := srv.claimRepo.AppendTimelineEvent(ctx, claim.ID, event); err != nil {
		return nil, translateNotFound(err, repository.ErrClaimNotFound, domainerrors.ErrClaimNotFound, "failed to append timeline event")
	}
	claim.Timeline = append(claim.Timeline, event)

	return claim, nil
}

func (srv *claimService) find(ctx context.Context, storeID, claimID uuid.UUID) (*entity.Claim, error) {
	claim, err := srv.claimRepo.FindClaimByID(ctx, storeID, claimID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrClaimNotFound, domainerrors.ErrClaimNotFound, "failed to load claim")
	}

	return claim, nil
}

func validateClaimRequest(claimType entity.ClaimType, description string) error {
	if !claimType.IsValid() {
		return domainerrors.ErrValidation.WithDetails("claim_type must be one of repair, replacement, refund")
	}
	if utf8.RuneCountInString(strings.TrimSpace(description)) < entity.MinClaimDescriptionLength {
		return domainerrors.ErrValidation.WithDetails("description must be at least 10 characters")
	}

	return nil
}

func newClaim(warranty *entity.Warranty, claimType entity.ClaimType, description string, attachments []string, first entity.TimelineEvent) *entity.Claim {
	if attachments == nil {
		attachments = []string{}
	}

	return &entity.Claim{
		WarrantyID:  warranty.ID,
		StoreID:     warranty.StoreID,
		ClaimType:   claimType,
		Description: strings.TrimSpace(description),
		Status:      entity.ClaimStatusPending,
		Attachments: attachments,
		Timeline:    []entity.TimelineEvent{first},
	}
}

func claimAuditValue(c *entity.Claim) map[string]any {
	return map[string]any{
		"warranty_id": c.WarrantyID,
		"claim_type":  c.ClaimType,
		"status":      c.Status,
		"description": c.Description,
	}
}
