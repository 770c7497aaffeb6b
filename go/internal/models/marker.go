package models

import (
	"time"

	"github.com/google/uuid"
)

// Marker represents a single visitor pin on the map
type Marker struct {
	ID        uuid.UUID `json:"id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}
