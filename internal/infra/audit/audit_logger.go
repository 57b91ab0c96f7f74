// Package audit records mutations without ever failing the caller.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"warranty/config"
	deliverycontext "warranty/internal/delivery/context"
	"warranty/internal/domain/entity"
	"warranty/internal/domain/lifecycle"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sink is where an entry ends up: the audit table or the event topic.
type sink func(ctx context.Context, entry *entity.AuditLogEntry) error

// Params holds dependencies for the audit logger, injected by Fx
type Params struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Repo      repository.AuditLogRepository
	Publisher service.EventPublisher
}

type auditLogger struct {
	write   sink
	logger  *slog.Logger
	timeout time.Duration
	pending sync.WaitGroup
}

// NewAuditLogger writes entries straight to the audit table, or publishes
// them to the audit worker when a Pub/Sub provider is configured.
func NewAuditLogger(params Params) service.AuditLogger {
	var l *auditLogger
	if params.Config.PubSub != nil && params.Config.PubSub.Provider != "" {
		l = newPublishingLogger(params.Publisher, params.Logger)
	} else {
		l = newDirectLogger(params.Repo, params.Logger)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.wait(ctx)

			return nil
		},
	})

	return l
}

func newDirectLogger(repo repository.AuditLogRepository, logger *slog.Logger) *auditLogger {
	return &auditLogger{
		write:   repo.CreateAuditLog,
		logger:  logger,
		timeout: lifecycle.DefaultTimeout,
	}
}

func newPublishingLogger(publisher service.EventPublisher, logger *slog.Logger) *auditLogger {
	return &auditLogger{
		write: func(ctx context.Context, entry *entity.AuditLogEntry) error {
			return publisher.PublishAuditEvent(ctx, &service.AuditEvent{
				RequestID: deliverycontext.GetRequestIDFromContext(ctx),
				Entry:     entry,
			})
		},
		logger:  logger,
		timeout: lifecycle.DefaultTimeout,
	}
}

// Record hands the entry to a detached goroutine. The request context's
// values are kept but its cancellation is not.
func (l *auditLogger) Record(ctx context.Context, entry *entity.AuditLogEntry) {
	if entry == nil {
		return
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	detached := context.WithoutCancel(ctx)
	logger := deliverycontext.GetLoggerOrDefault(ctx, l.logger)

	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Audit write panicked", slog.Any("panic", r), slog.String("entity", entry.Entity))
			}
		}()

		writeCtx, cancel := context.WithTimeout(detached, l.timeout)
		defer cancel()

		if err := l.write(writeCtx, entry); err != nil {
			logger.Warn("Failed to record audit entry",
				slog.Any("error", errors.WithStack(err)),
				slog.String("entity", entry.Entity),
				slog.String("entity_id", entry.EntityID),
				slog.String("action", string(entry.Action)),
			)
		}
	}()
}

// wait blocks until in-flight writes finish or ctx ends.
func (l *auditLogger) wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		l.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		l.logger.Warn("Audit writes still pending at shutdown")
	}
}
