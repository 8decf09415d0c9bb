package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalStationUpdates(t *testing.T) {
	data := `[
		{"id": "se", "name": "Sé", "coords": [-23.55, -46.63], "lines": ["L1", "L3"]},
		{"id": "ghost", "name": "Ghost", "lines": ["L1"]}
	]`

	records, err := UnmarshalStationUpdates(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "se", records[0].ID)
	assert.Equal(t, []float64{-23.55, -46.63}, records[0].Coords)
	assert.Empty(t, records[1].Coords)
}

func TestUnmarshalLineUpdates(t *testing.T) {
	data := `[{"id": "L1", "name": "Azul", "color": "#0455A1", "stations": ["jabaquara", "se"]}]`

	records, err := UnmarshalLineUpdates(data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"jabaquara", "se"}, records[0].Stations)
}

func TestUnmarshalStationUpdatesBadJSON(t *testing.T) {
	_, err := UnmarshalStationUpdates("{not json")
	assert.Error(t, err)
}

func TestStationFromRecord(t *testing.T) {
	records, err := UnmarshalStationUpdates(`[
		{"id": "luz", "name": "Luz", "coords": [-23.5343, -46.6345], "lines": ["L1", "L7"]},
		{"id": "ghost", "name": "Ghost", "lines": []}
	]`)
	require.NoError(t, err)

	located := StationFromRecord(records[0])
	require.NotNil(t, located.Coords)
	assert.Equal(t, -23.5343, located.Coords.Lat)
	assert.Equal(t, -46.6345, located.Coords.Lon)

	unlocated := StationFromRecord(records[1])
	assert.Nil(t, unlocated.Coords)
}
