package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// StatusChanged is emitted when the reconciler advances a competition's
// persisted status. Consumers use it to refresh views without polling the
// database directly.
type StatusChanged struct {
	CompetitionID uuid.UUID   `json:"competition_id"`
	Title         string      `json:"title"`
	From          phase.Phase `json:"from"`
	To            phase.Phase `json:"to"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// Publisher emits competition events. Implementations must not block
// reconciliation on slow consumers.
type Publisher interface {
	PublishStatusChanged(event StatusChanged) error
}
