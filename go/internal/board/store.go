package board

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pinmap/go/internal/models"
)

// Lister fetches the complete marker set, normally GET /api/markers or the
// markers App directly when the board runs in-process.
type Lister interface {
	ListMarkers(ctx context.Context, country string) ([]models.Marker, error)
}

// Store is the board's read-through cache of the remote marker set. It is
// append-only: markers arrive once from LoadAll and afterwards only through
// feed inserts; updates and deletes are not modeled.
type Store struct {
	mu      sync.RWMutex
	markers []models.Marker
}

func NewStore() *Store {
	return &Store{}
}

// LoadAll fetches the current marker set once at startup. A remote-read
// failure leaves the store empty and is not retried; the board stays usable
// and fills up from the live feed.
func (s *Store) LoadAll(ctx context.Context, lister Lister) {
	markers, err := lister.ListMarkers(ctx, "")
	if err != nil {
		log.Warn().Err(err).Msg("initial marker fetch failed, starting empty")
		return
	}

	s.mu.Lock()
	s.markers = markers
	s.mu.Unlock()
}

// Apply appends one feed-delivered marker.
func (s *Store) Apply(m models.Marker) {
	s.mu.Lock()
	s.markers = append(s.markers, m)
	s.mu.Unlock()
}

// Run consumes the feed channel until it closes or the context ends,
// appending each insert. This is the single consumer of the subscription.
func (s *Store) Run(ctx context.Context, feed <-chan models.Marker) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-feed:
			if !ok {
				return
			}
			s.Apply(m)
		}
	}
}

// Markers returns a snapshot of the known marker set in arrival order.
func (s *Store) Markers() []models.Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Marker, len(s.markers))
	copy(out, s.markers)
	return out
}

// Len returns the number of known markers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.markers)
}
