package session

import "context"

// PlacedMarkKey is the session key recording that a session has already
// placed its one marker. It is written once and never cleared.
const PlacedMarkKey = "hasPlacedMark"

// Store is the minimal key-value contract the placement guard needs from a
// session backend. Keeping it this small lets the placement flow run against
// Redis in deployment and an in-memory map in tests.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
}
