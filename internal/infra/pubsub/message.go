package pubsub

import (
	"encoding/json"

	"warranty/internal/domain/service"

	"github.com/pkg/errors"
)

// auditMessage is an audit event ready for either transport: the JSON body
// plus the attributes subscribers filter on (entity, action, store_id) and
// the request id for tracing.
type auditMessage struct {
	id         string
	data       []byte
	attributes map[string]string
}

func encodeAuditEvent(event *service.AuditEvent) (*auditMessage, error) {
	if event == nil || event.Entry == nil {
		return nil, errors.New("audit event without entry")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode audit event")
	}

	attributes := map[string]string{
		"entity": event.Entry.Entity,
		"action": string(event.Entry.Action),
	}
	if event.Entry.StoreID != nil {
		attributes["store_id"] = event.Entry.StoreID.String()
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return &auditMessage{id: event.Entry.ID.String(), data: data, attributes: attributes}, nil
}
