package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent represents a marker outbox event for the application layer.
// Payload is the JSON snapshot of the marker at insert time.
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	MarkerID  uuid.UUID       `json:"marker_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// EventTypeMarkerCreated is the only event the feed carries; markers are
// never updated or deleted.
const EventTypeMarkerCreated = "MarkerCreated"
