package postgres

import (
	"context"
	"encoding/json"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// claimRepository implements the repository.ClaimRepository interface.
type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository is the constructor for claimRepository.
func NewClaimRepository(db *gorm.DB) repository.ClaimRepository {
	return &claimRepository{
		db: db,
	}
}

func (repo *claimRepository) CreateClaim(ctx context.Context, claim *entity.Claim) error {
	claimM := fromClaimDomain(claim)

	if err := repo.db.WithContext(ctx).Omit("Warranty").Create(claimM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required claim information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create claim")
	}

	claim.ID = claimM.ID
	claim.CreatedAt = claimM.CreatedAt
	claim.UpdatedAt = claimM.UpdatedAt

	return nil
}

func (repo *claimRepository) FindClaimByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Claim, error) {
	var claimM model.ClaimModel

	if err := repo.db.WithContext(ctx).
		Preload("Warranty.Product").
		Preload("Warranty.Customer").
		Where("id = ? AND store_id = ?", id, storeID).
		First(&claimM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrClaimNotFound
		}

		return nil, errors.Wrap(err, "failed to find claim by id")
	}

	return toClaimDomain(&claimM), nil
}

func (repo *claimRepository) ListClaims(ctx context.Context, storeID uuid.UUID, filter repository.ClaimFilter, page entity.PageRequest) ([]*entity.Claim, int64, error) {
	var (
		claimModels []*model.ClaimModel
		total       int64
	)

	query := repo.db.WithContext(ctx).
		Model(&model.ClaimModel{}).
		Where("store_id = ?", storeID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.WarrantyID != nil {
		query = query.Where("warranty_id = ?", *filter.WarrantyID)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count claims")
	}

	if err := query.
		Preload("Warranty.Product").
		Preload("Warranty.Customer").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&claimModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list claims")
	}

	return lo.Map(claimModels, func(m *model.ClaimModel, _ int) *entity.Claim {
		return toClaimDomain(m)
	}), total, nil
}

func (repo *claimRepository) FindClaimsByWarranties(ctx context.Context, storeID uuid.UUID, warrantyIDs []uuid.UUID) ([]*entity.Claim, error) {
	if len(warrantyIDs) == 0 {
		return []*entity.Claim{}, nil
	}

	var claimModels []*model.ClaimModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ? AND warranty_id IN ?", storeID, warrantyIDs).
		Order("created_at DESC").
		Find(&claimModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find claims by warranties")
	}

	return lo.Map(claimModels, func(m *model.ClaimModel, _ int) *entity.Claim {
		return toClaimDomain(m)
	}), nil
}

// UpdateClaimStatus changes the status and appends the event in one UPDATE
// guarded by the expected current status, so two transitions racing from the
// same status cannot both apply.
func (repo *claimRepository) UpdateClaimStatus(ctx context.Context, id uuid.UUID, from, to entity.ClaimStatus, event entity.TimelineEvent) error {
	appended, err := timelineAppendExpr(event)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ClaimModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(map[string]any{
			"status":          to.String(),
			"timeline_events": appended,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update claim status")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var found int64
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.ClaimModel{}).
		Where("id = ?", id).
		Count(&found).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to check claim")
	}
	if found == 0 {
		return repository.ErrClaimNotFound
	}

	return repository.ErrClaimStatusConflict
}

func (repo *claimRepository) AppendTimelineEvent(ctx context.Context, id uuid.UUID, event entity.TimelineEvent) error {
	appended, err := timelineAppendExpr(event)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ClaimModel{}).
		Where("id = ?", id).
		Update("timeline_events", appended)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to append claim timeline event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrClaimNotFound
	}

	return nil
}

// timelineAppendExpr concatenates one event onto the stored jsonb array, so
// concurrent appends never overwrite each other.
func timelineAppendExpr(event entity.TimelineEvent) (any, error) {
	raw, err := json.Marshal([]model.TimelineEventJSON{fromTimelineEventDomain(event)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode timeline event")
	}

	return gorm.Expr("COALESCE(timeline_events, '[]'::jsonb) || ?::jsonb", string(raw)), nil
}

func toClaimDomain(data *model.ClaimModel) *entity.Claim {
	if data == nil {
		return nil
	}

	attachments := []string(data.Attachments)
	if attachments == nil {
		attachments = []string{}
	}

	return &entity.Claim{
		ID:               data.ID,
		WarrantyID:       data.WarrantyID,
		StoreID:          data.StoreID,
		ClaimType:        entity.ClaimType(data.ClaimType),
		Description:      data.Description,
		Status:           entity.ClaimStatus(data.Status),
		AssignedMemberID: data.AssignedMemberID,
		Attachments:      attachments,
		Timeline: lo.Map(data.TimelineEvents, func(e model.TimelineEventJSON, _ int) entity.TimelineEvent {
			return entity.TimelineEvent{
				Timestamp: e.Timestamp,
				Action:    e.Action,
				ActorID:   e.ActorID,
				Notes:     e.Notes,
			}
		}),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
		Warranty:  toWarrantyDomain(data.Warranty),
	}
}

func fromClaimDomain(data *entity.Claim) *model.ClaimModel {
	attachments := datatypes.JSONSlice[string](data.Attachments)
	if attachments == nil {
		attachments = datatypes.JSONSlice[string]{}
	}

	return &model.ClaimModel{
		ID:               data.ID,
		WarrantyID:       data.WarrantyID,
		StoreID:          data.StoreID,
		ClaimType:        string(data.ClaimType),
		Description:      data.Description,
		Status:           data.Status.String(),
		AssignedMemberID: data.AssignedMemberID,
		Attachments:      attachments,
		TimelineEvents:   lo.Map(data.Timeline, func(e entity.TimelineEvent, _ int) model.TimelineEventJSON { return fromTimelineEventDomain(e) }),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromTimelineEventDomain(e entity.TimelineEvent) model.TimelineEventJSON {
	return model.TimelineEventJSON{
		Timestamp: e.Timestamp,
		Action:    e.Action,
		ActorID:   e.ActorID,
		Notes:     e.Notes,
	}
}
