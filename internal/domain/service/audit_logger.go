package service

import (
	"context"

	"warranty/internal/domain/entity"
)

// AuditLogger records mutations. Record never fails the caller: write errors
// are logged by the implementation and dropped.
type AuditLogger interface {
	Record(ctx context.Context, entry *entity.AuditLogEntry)
}
