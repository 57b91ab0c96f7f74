package audit

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	deliverycontext "warranty/internal/delivery/context"
	"warranty/internal/domain/entity"
	"warranty/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []*entity.AuditLogEntry
	events  []*service.AuditEvent
	err     error
}

func (s *recordingSink) CreateAuditLog(ctx context.Context, entry *entity.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)

	return nil
}

func (s *recordingSink) ListAuditLogs(context.Context, entity.AuditFilter, entity.PageRequest) ([]*entity.AuditLogEntry, int64, error) {
	return nil, 0, nil
}

func (s *recordingSink) PublishAuditEvent(ctx context.Context, event *service.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)

	return nil
}

func (s *recordingSink) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuditLogger_DirectWriteFillsDefaults(t *testing.T) {
	sink := &recordingSink{}
	l := newDirectLogger(sink, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	l.Record(ctx, &entity.AuditLogEntry{Entity: entity.AuditEntityWarranty, EntityID: "w-1", Action: entity.AuditActionCreate})
	cancel() // the write must survive request cancellation
	l.wait(context.Background())

	require.Len(t, sink.entries, 1)
	assert.NotEqual(t, uuid.Nil, sink.entries[0].ID)
	assert.WithinDuration(t, time.Now(), sink.entries[0].CreatedAt, time.Minute)
}

func TestAuditLogger_FailureIsSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("connection refused")}
	l := newDirectLogger(sink, discardLogger())

	assert.NotPanics(t, func() {
		l.Record(context.Background(), &entity.AuditLogEntry{Entity: entity.AuditEntityClaim, Action: entity.AuditActionUpdate})
		l.wait(context.Background())
	})
	assert.Empty(t, sink.entries)
}

func TestAuditLogger_PublishCarriesRequestID(t *testing.T) {
	sink := &recordingSink{}
	l := newPublishingLogger(sink, discardLogger())

	ctx := deliverycontext.WithRequestScope(context.Background(), "req-42", nil)
	l.Record(ctx, &entity.AuditLogEntry{Entity: entity.AuditEntityStore, Action: entity.AuditActionDelete})
	l.wait(context.Background())

	require.Len(t, sink.events, 1)
	assert.Equal(t, "req-42", sink.events[0].RequestID)
	assert.Equal(t, entity.AuditEntityStore, sink.events[0].Entry.Entity)
}

func TestAuditLogger_NilEntryIgnored(t *testing.T) {
	sink := &recordingSink{}
	l := newDirectLogger(sink, discardLogger())

	l.Record(context.Background(), nil)
	l.wait(context.Background())
	assert.Empty(t, sink.entries)
}
