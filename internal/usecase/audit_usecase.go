package usecase

import (
	"context"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
)

// DefaultAuditPageLimit is the audit listing page size when none is given.
const DefaultAuditPageLimit = 50

// AuditQuery narrows an audit listing.
type AuditQuery struct {
	Entity   string
	EntityID string
	ActorID  *uuid.UUID
}

// AuditUsecase reads the audit trail of the caller's store.
type AuditUsecase interface {
	List(ctx context.Context, principal entity.Principal, query *AuditQuery, page entity.PageRequest) (*entity.Page[*entity.AuditLogEntry], error)
}
