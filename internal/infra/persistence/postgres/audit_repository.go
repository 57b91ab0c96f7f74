package postgres

import (
	"context"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// auditLogRepository implements the repository.AuditLogRepository interface.
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository is the constructor for auditLogRepository.
func NewAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &auditLogRepository{
		db: db,
	}
}

// CreateAuditLog inserts an entry. Redelivered events keep their id, so a
// duplicate insert is ignored.
func (repo *auditLogRepository) CreateAuditLog(ctx context.Context, entry *entity.AuditLogEntry) error {
	if err := repo.db.WithContext(ctx).Create(fromAuditLogDomain(entry)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create audit log")
	}

	return nil
}

func (repo *auditLogRepository) ListAuditLogs(ctx context.Context, filter entity.AuditFilter, page entity.PageRequest) ([]*entity.AuditLogEntry, int64, error) {
	var (
		logModels []*model.AuditLogModel
		total     int64
	)

	query := repo.db.WithContext(ctx).
		Model(&model.AuditLogModel{}).
		Scopes(auditFilterScope(filter)).
		Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count audit logs")
	}

	if err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list audit logs")
	}

	return lo.Map(logModels, func(m *model.AuditLogModel, _ int) *entity.AuditLogEntry {
		return toAuditLogDomain(m)
	}), total, nil
}

// auditFilterScope always pins the store; the other fields are optional.
func auditFilterScope(filter entity.AuditFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("store_id = ?", filter.StoreID)
		if filter.Entity != "" {
			db = db.Where("entity = ?", filter.Entity)
		}
		if filter.EntityID != "" {
			db = db.Where("entity_id = ?", filter.EntityID)
		}
		if filter.ActorID != nil {
			db = db.Where("actor_id = ?", *filter.ActorID)
		}

		return db
	}
}

func toAuditLogDomain(data *model.AuditLogModel) *entity.AuditLogEntry {
	return &entity.AuditLogEntry{
		ID:        data.ID,
		ActorID:   data.ActorID,
		StoreID:   data.StoreID,
		Entity:    data.Entity,
		EntityID:  data.EntityID,
		Action:    entity.AuditAction(data.Action),
		OldValue:  []byte(data.OldValue),
		NewValue:  []byte(data.NewValue),
		CreatedAt: data.CreatedAt,
	}
}

func fromAuditLogDomain(data *entity.AuditLogEntry) *model.AuditLogModel {
	return &model.AuditLogModel{
		ID:        data.ID,
		ActorID:   data.ActorID,
		StoreID:   data.StoreID,
		Entity:    data.Entity,
		EntityID:  data.EntityID,
		Action:    string(data.Action),
		OldValue:  datatypes.JSON(data.OldValue),
		NewValue:  datatypes.JSON(data.NewValue),
		CreatedAt: data.CreatedAt,
	}
}
