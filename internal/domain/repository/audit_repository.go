package repository

import (
	"context"

	"warranty/internal/domain/entity"
)

// AuditLogRepository persists audit entries. Entries are never updated.
type AuditLogRepository interface {
	CreateAuditLog(ctx context.Context, entry *entity.AuditLogEntry) error

	// ListAuditLogs returns a page of entries, newest first.
	ListAuditLogs(ctx context.Context, filter entity.AuditFilter, page entity.PageRequest) ([]*entity.AuditLogEntry, int64, error)
}
