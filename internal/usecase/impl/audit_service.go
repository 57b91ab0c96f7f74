package impl

import (
	"context"
	"log/slog"
	"strings"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"
	"warranty/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// auditService implements the AuditUsecase interface.
type auditService struct {
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

// AuditServiceParams holds dependencies for AuditService, injected by Fx.
type AuditServiceParams struct {
	fx.In

	AuditRepo repository.AuditLogRepository
	Logger    *slog.Logger
}

// NewAuditService is the constructor for auditService.
func NewAuditService(params AuditServiceParams) usecase.AuditUsecase {
	return &auditService{
		auditRepo: params.AuditRepo,
		logger:    params.Logger,
	}
}

// List returns the audit trail of the caller's store, newest first.
func (srv *auditService) List(ctx context.Context, principal entity.Principal, query *usecase.AuditQuery, page entity.PageRequest) (*entity.Page[*entity.AuditLogEntry], error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	filter := entity.AuditFilter{StoreID: storeID}
	if query != nil {
		filter.Entity = strings.TrimSpace(query.Entity)
		filter.EntityID = strings.TrimSpace(query.EntityID)
		filter.ActorID = query.ActorID
	}

	entries, total, err := srv.auditRepo.ListAuditLogs(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list audit logs")
	}

	return entity.NewPage(entries, total, page), nil
}
