package service

import (
	"context"

	"warranty/internal/domain/entity"
)

// AuditEvent carries an audit entry to the audit worker.
type AuditEvent struct {
	RequestID string                `json:"request_id,omitempty"` // For distributed tracing
	Entry     *entity.AuditLogEntry `json:"entry"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAuditEvent publishes an audit event for async persistence
	PublishAuditEvent(ctx context.Context, event *AuditEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
