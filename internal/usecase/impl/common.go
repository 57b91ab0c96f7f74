// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"

	deliverycontext "warranty/internal/delivery/context"
	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// requestLogger returns a request-scoped logger if available, otherwise the fallback.
func requestLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, fallback)
}

// storeScope returns the principal's resolved store.
func storeScope(principal entity.Principal) (uuid.UUID, error) {
	if principal == nil {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}
	storeID, ok := principal.StoreScope()
	if !ok {
		return uuid.Nil, domainerrors.ErrNoStoreAccess
	}

	return storeID, nil
}

// requirePermission resolves the store and checks a write permission.
func requirePermission(principal entity.Principal, perm entity.Permission) (uuid.UUID, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return uuid.Nil, err
	}
	if !principal.HasPermission(perm) {
		return uuid.Nil, domainerrors.ErrPermissionDenied.WithDetails("missing permission " + perm.String())
	}

	return storeID, nil
}

// translateNotFound swaps a repository sentinel for its domain error and
// wraps anything else.
func translateNotFound(err, sentinel error, notFound *domainerrors.BaseError, msg string) error {
	if errors.Is(err, sentinel) {
		return notFound
	}

	return errors.Wrap(err, msg)
}

// actorRef returns a pointer to the principal's actor id, nil without a principal.
func actorRef(principal entity.Principal) *uuid.UUID {
	if principal == nil {
		return nil
	}
	id := principal.ActorID()

	return &id
}

// snapshot encodes a value for an audit entry. Encoding failures drop the value.
func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return raw
}

// newAuditEntry builds an audit entry for a mutation of the store's data.
func newAuditEntry(actor *uuid.UUID, storeID uuid.UUID, entityName, entityID string, action entity.AuditAction, oldValue, newValue any) *entity.AuditLogEntry {
	entry := &entity.AuditLogEntry{
		ActorID:  actor,
		Entity:   entityName,
		EntityID: entityID,
		Action:   action,
		OldValue: snapshot(oldValue),
		NewValue: snapshot(newValue),
	}
	if storeID != uuid.Nil {
		entry.StoreID = &storeID
	}

	return entry
}
