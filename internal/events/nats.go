package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes competition events to NATS subjects of the form
// arena.competition.status.<to>.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher creates a publisher over an established connection.
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

// PublishStatusChanged publishes a status change event. Publishing is
// fire-and-forget; the persisted status is already committed by the time
// this runs.
func (p *NATSPublisher) PublishStatusChanged(event StatusChanged) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	subject := fmt.Sprintf("arena.competition.status.%s", event.To)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}
	return nil
}
