package board

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pinmap/go/internal/markers/gateway"
	"github.com/mcdev12/pinmap/go/internal/models"
)

// Feed is the board's live-update subscription: a websocket connection to
// the gateway delivering MarkerCreated events on a single-consumer channel.
type Feed struct {
	url string
}

// NewFeed points at the gateway's websocket endpoint, e.g.
// ws://host/ws/markers.
func NewFeed(url string) *Feed {
	return &Feed{url: url}
}

// Subscribe dials the feed and returns the insert channel. The subscription
// is established once; cancelling the context tears down the connection and
// closes the channel exactly once.
func (f *Feed) Subscribe(ctx context.Context) (<-chan models.Marker, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial feed: %w", err)
	}

	inserts := make(chan models.Marker, 16)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(inserts)
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Msg("feed connection closed")
				}
				return
			}

			var event gateway.MarkerEvent
			if err := json.Unmarshal(data, &event); err != nil {
				log.Warn().Err(err).Msg("ignoring malformed feed event")
				continue
			}
			if event.Type != gateway.EventTypeMarkerCreated {
				continue
			}

			marker, err := gateway.ParseMarkerPayload(&event)
			if err != nil {
				log.Warn().Err(err).Msg("ignoring feed event with bad payload")
				continue
			}

			select {
			case inserts <- *marker:
			case <-ctx.Done():
				return
			}
		}
	}()

	return inserts, nil
}
