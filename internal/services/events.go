package services

import (
	"encoding/json"
	"time"

	"taskhub/internal/database"

	"github.com/rs/zerolog"
)

// EventPublisher delivers lifecycle events to a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event is the message body published for every committed write.
type Event struct {
	Name       string    `json:"event"`
	ID         uint      `json:"id"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Events queues lifecycle events on a session so they are only published after commit.
// A nil publisher disables publishing.
type Events struct {
	pub EventPublisher
	log zerolog.Logger
}

// NewEvents creates a new Events. pub may be nil to disable publishing.
func NewEvents(pub EventPublisher, log zerolog.Logger) *Events {
	return &Events{pub: pub, log: log}
}

func (e *Events) emit(s *database.Session, name string, id uint, data any) {
	if e == nil || e.pub == nil {
		return
	}
	evt := Event{Name: name, ID: id, Data: data, OccurredAt: time.Now().UTC()}
	s.AfterCommit(func() {
		body, err := json.Marshal(evt)
		if err != nil {
			e.log.Error().Err(err).Str("event", name).Msg("failed to marshal event")
			return
		}
		// Publishing is best effort: the write already committed.
		if err := e.pub.Publish(name, body); err != nil {
			e.log.Warn().Err(err).Str("event", name).Uint("id", id).Msg("failed to publish event")
			return
		}
		e.log.Debug().Str("event", name).Uint("id", id).Msg("published event")
	})
}
