package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pinmap/go/internal/markers/gateway"
	"github.com/mcdev12/pinmap/go/internal/models"
)

// feedServer upgrades incoming connections and writes the given raw frames.
func feedServer(t *testing.T, frames [][]byte) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for _, frame := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))
		}
		// Hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func eventFrame(t *testing.T, marker models.Marker) []byte {
	t.Helper()
	payload, err := json.Marshal(marker)
	require.NoError(t, err)
	data, err := json.Marshal(gateway.MarkerEvent{
		ID:        uuid.New().String(),
		Type:      gateway.EventTypeMarkerCreated,
		Timestamp: time.Now(),
		Data:      payload,
	})
	require.NoError(t, err)
	return data
}

func TestFeed_DeliversInsertEvents(t *testing.T) {
	marker := models.Marker{ID: uuid.New(), Lat: 10, Lng: 20, Name: "Ann", Message: "Hi", Country: "Wakanda"}
	server := feedServer(t, [][]byte{eventFrame(t, marker)})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inserts, err := NewFeed(wsURL(server)).Subscribe(ctx)
	require.NoError(t, err)

	select {
	case got := <-inserts:
		assert.Equal(t, marker.ID, got.ID)
		assert.Equal(t, "Wakanda", got.Country)
	case <-time.After(2 * time.Second):
		t.Fatal("no insert delivered")
	}
}

func TestFeed_IgnoresMalformedAndForeignEvents(t *testing.T) {
	marker := models.Marker{ID: uuid.New(), Name: "Ann", Country: "Japan"}
	frames := [][]byte{
		[]byte("not json"),
		[]byte(`{"id":"x","type":"SomethingElse","data":{}}`),
		eventFrame(t, marker),
	}
	server := feedServer(t, frames)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inserts, err := NewFeed(wsURL(server)).Subscribe(ctx)
	require.NoError(t, err)

	select {
	case got := <-inserts:
		assert.Equal(t, marker.ID, got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("insert after junk frames was not delivered")
	}
}

func TestFeed_CancelTearsDownSubscription(t *testing.T) {
	server := feedServer(t, nil)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	inserts, err := NewFeed(wsURL(server)).Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-inserts:
		assert.False(t, open, "channel should close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestFeed_DialFailure(t *testing.T) {
	_, err := NewFeed("ws://127.0.0.1:1/ws/markers").Subscribe(context.Background())
	require.Error(t, err)
}
