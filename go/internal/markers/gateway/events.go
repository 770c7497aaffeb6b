package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/pinmap/go/internal/models"
)

// MarkerEvent is the envelope every websocket client receives.
type MarkerEvent struct {
	ID        string          `json:"id"`        // Event UUID
	Type      EventType       `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// EventType represents the type of marker event
type EventType string

const (
	// EventTypeMarkerCreated is the only event on the feed; the marker set
	// is append-only from the clients' perspective.
	EventTypeMarkerCreated EventType = "MarkerCreated"
)

// ParseMarkerPayload decodes the marker carried by a MarkerCreated event.
func ParseMarkerPayload(event *MarkerEvent) (*models.Marker, error) {
	if event.Type != EventTypeMarkerCreated {
		return nil, fmt.Errorf("unexpected event type %q", event.Type)
	}
	var marker models.Marker
	if err := json.Unmarshal(event.Data, &marker); err != nil {
		return nil, fmt.Errorf("unmarshal marker payload: %w", err)
	}
	return &marker, nil
}
