package board

import "github.com/mcdev12/pinmap/go/internal/models"

// SelectionAll shows every marker regardless of country.
const SelectionAll = "all"

// Countries derives the distinct non-empty country values across the marker
// set, in first-seen order for the selector UI. Recomputed per change; O(n).
func Countries(markers []models.Marker) []string {
	seen := make(map[string]bool, len(markers))
	var out []string
	for _, m := range markers {
		if m.Country == "" || seen[m.Country] {
			continue
		}
		seen[m.Country] = true
		out = append(out, m.Country)
	}
	return out
}

// Visible narrows the marker set to the current selection, preserving the
// original relative order. SelectionAll returns the full set.
func Visible(markers []models.Marker, selection string) []models.Marker {
	if selection == SelectionAll {
		return markers
	}
	var out []models.Marker
	for _, m := range markers {
		if m.Country == selection {
			out = append(out, m)
		}
	}
	return out
}
