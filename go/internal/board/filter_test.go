package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pinmap/go/internal/models"
)

func markerIn(country, name string) models.Marker {
	return models.Marker{Country: country, Name: name}
}

func TestCountries_FirstSeenOrder(t *testing.T) {
	markers := []models.Marker{
		markerIn("Japan", "a"),
		markerIn("France", "b"),
		markerIn("Japan", "c"),
		markerIn("Kenya", "d"),
		markerIn("France", "e"),
	}

	assert.Equal(t, []string{"Japan", "France", "Kenya"}, Countries(markers))
}

func TestCountries_SkipsEmptyValues(t *testing.T) {
	markers := []models.Marker{
		markerIn("", "a"),
		markerIn("Japan", "b"),
		markerIn("", "c"),
	}

	got := Countries(markers)
	assert.Equal(t, []string{"Japan"}, got)
	assert.NotContains(t, got, "")
}

func TestCountries_NoDuplicates(t *testing.T) {
	markers := []models.Marker{
		markerIn("Japan", "a"),
		markerIn("Japan", "b"),
		markerIn("Japan", "c"),
	}

	assert.Equal(t, []string{"Japan"}, Countries(markers))
}

func TestCountries_Empty(t *testing.T) {
	assert.Empty(t, Countries(nil))
}

func TestVisible_AllSelectionReturnsFullSet(t *testing.T) {
	markers := []models.Marker{
		markerIn("Japan", "a"),
		markerIn("France", "b"),
	}

	assert.Equal(t, markers, Visible(markers, SelectionAll))
}

func TestVisible_CountrySelectionPreservesOrder(t *testing.T) {
	markers := []models.Marker{
		markerIn("Japan", "a"),
		markerIn("France", "b"),
		markerIn("Japan", "c"),
		markerIn("Kenya", "d"),
		markerIn("Japan", "e"),
	}

	visible := Visible(markers, "Japan")
	require.Len(t, visible, 3)
	assert.Equal(t, "a", visible[0].Name)
	assert.Equal(t, "c", visible[1].Name)
	assert.Equal(t, "e", visible[2].Name)
}

func TestVisible_UnknownSelectionIsEmpty(t *testing.T) {
	markers := []models.Marker{
		markerIn("Japan", "a"),
	}

	assert.Empty(t, Visible(markers, "Wakanda"))
}

func TestVisible_IsSubsetOfInput(t *testing.T) {
	markers := []models.Marker{
		markerIn("Japan", "a"),
		markerIn("France", "b"),
		markerIn("Kenya", "c"),
	}

	for _, selection := range append(Countries(markers), SelectionAll, "Nowhere") {
		for _, m := range Visible(markers, selection) {
			assert.Contains(t, markers, m)
		}
	}
}
