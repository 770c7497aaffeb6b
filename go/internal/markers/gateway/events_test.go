package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pinmap/go/internal/models"
)

func TestParseMarkerPayload(t *testing.T) {
	marker := models.Marker{
		ID:        uuid.New(),
		Lat:       35.68,
		Lng:       139.69,
		Name:      "Ann",
		Message:   "Hello from Tokyo",
		Country:   "Japan",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	data, err := json.Marshal(marker)
	require.NoError(t, err)

	event := &MarkerEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeMarkerCreated,
		Timestamp: time.Now(),
		Data:      data,
	}

	got, err := ParseMarkerPayload(event)
	require.NoError(t, err)
	assert.Equal(t, marker.ID, got.ID)
	assert.Equal(t, marker.Country, got.Country)
	assert.Equal(t, marker.Message, got.Message)
}

func TestParseMarkerPayload_WrongType(t *testing.T) {
	event := &MarkerEvent{Type: EventType("MarkerDeleted"), Data: []byte(`{}`)}

	_, err := ParseMarkerPayload(event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected event type")
}

func TestParseMarkerPayload_MalformedData(t *testing.T) {
	event := &MarkerEvent{Type: EventTypeMarkerCreated, Data: []byte(`{not json`)}

	_, err := ParseMarkerPayload(event)
	require.Error(t, err)
}
