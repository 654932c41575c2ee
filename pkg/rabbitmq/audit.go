package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// auditRecord is the subset of an event body the audit log needs.
type auditRecord struct {
	Event string `json:"event"`
	ID    uint   `json:"id"`
}

// AuditLogger returns a delivery handler that writes one log line per lifecycle event.
// Bodies that are not JSON events are rejected so they are not silently acked.
func AuditLogger(log zerolog.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var rec auditRecord
		if err := json.Unmarshal(msg.Body, &rec); err != nil {
			return fmt.Errorf("malformed event body: %w", err)
		}
		if rec.Event == "" {
			return fmt.Errorf("event body without name (routing key %q)", msg.RoutingKey)
		}
		log.Info().
			Str("event", rec.Event).
			Uint("id", rec.ID).
			Str("message_id", msg.MessageId).
			Time("published_at", msg.Timestamp).
			Msg("audit")
		return nil
	}
}
