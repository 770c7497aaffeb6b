package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Marker is a row in the markers table.
type Marker struct {
	ID        uuid.UUID
	Lat       float64
	Lng       float64
	Name      string
	Message   string
	Country   string
	CreatedAt time.Time
}

// MarkerOutbox is a row in the marker_outbox table. Payload is nullable so
// rows written by external tooling without a snapshot can still be drained.
type MarkerOutbox struct {
	ID        uuid.UUID
	MarkerID  uuid.UUID
	EventType string
	Payload   pqtype.NullRawMessage
	CreatedAt time.Time
	SentAt    *time.Time
}
