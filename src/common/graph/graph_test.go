package graph

import (
	"testing"

	"github.com/metroroute/engine/src/common/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coords(lat, lon float64) *types.Coords {
	return &types.Coords{Lat: lat, Lon: lon}
}

func testStations() map[string]*types.Station {
	return map[string]*types.Station{
		"jabaquara": {ID: "jabaquara", Name: "Jabaquara", Coords: coords(-23.65, -46.64), Lines: []string{"L1"}},
		"se":        {ID: "se", Name: "Sé", Coords: coords(-23.55, -46.63), Lines: []string{"L1", "L3"}},
		"luz":       {ID: "luz", Name: "Luz", Coords: coords(-23.5343, -46.6345), Lines: []string{"L1", "L7", "L11", "L4"}},
		"tucuruvi":  {ID: "tucuruvi", Name: "Tucuruvi", Coords: coords(-23.48, -46.60), Lines: []string{"L1"}},
		"ghost":     {ID: "ghost", Name: "Ghost", Lines: []string{"L1"}},
	}
}

func TestBuildMirroredEdges(t *testing.T) {
	stations := testStations()
	lines := []*types.Line{
		{ID: "L1", Name: "Azul", Stations: []string{"jabaquara", "se", "luz", "tucuruvi"}},
	}

	g, report := Build(stations, lines)

	assert.Equal(t, 6, report.Edges)
	assert.Zero(t, report.SkippedMissing)
	assert.Zero(t, report.SkippedNoCoords)

	// Every edge must have a mirror with identical weight and line.
	for from, edges := range g {
		for _, e := range edges {
			var mirrored bool
			for _, back := range g[e.To] {
				if back.To == from && back.Weight == e.Weight && back.Line == e.Line {
					mirrored = true
					break
				}
			}
			assert.Truef(t, mirrored, "edge %s→%s has no mirror", from, e.To)
		}
	}
}

func TestBuildSkipsMissingStation(t *testing.T) {
	stations := testStations()
	lines := []*types.Line{
		{ID: "L9", Name: "Esmeralda", Stations: []string{"se", "nowhere", "luz"}},
	}

	g, report := Build(stations, lines)

	assert.Equal(t, 2, report.SkippedMissing)
	assert.Zero(t, report.Edges)
	assert.Empty(t, g)
}

func TestBuildSkipsStationWithoutCoords(t *testing.T) {
	stations := testStations()
	lines := []*types.Line{
		{ID: "L1", Name: "Azul", Stations: []string{"se", "ghost", "luz"}},
	}

	g, report := Build(stations, lines)

	assert.Equal(t, 2, report.SkippedNoCoords)
	assert.Zero(t, report.Edges)
	assert.False(t, g.Has("ghost"))
}

func TestBuildSkipsDuplicatedConsecutiveStop(t *testing.T) {
	stations := testStations()
	lines := []*types.Line{
		{ID: "L1", Name: "Azul", Stations: []string{"se", "se", "luz"}},
	}

	g, report := Build(stations, lines)

	assert.Equal(t, 1, report.SkippedSelf)
	assert.Equal(t, 2, report.Edges)

	// No self-loop edge may survive the build.
	for from, edges := range g {
		for _, e := range edges {
			assert.NotEqualf(t, from, e.To, "self-loop edge %s→%s", from, e.To)
		}
	}
	require.Len(t, g["se"], 1)
	assert.Equal(t, "luz", g["se"][0].To)
}

func TestBuildShortLinesContributeNothing(t *testing.T) {
	stations := testStations()
	lines := []*types.Line{
		{ID: "L1", Name: "Azul", Stations: []string{"se"}},
		{ID: "L3", Name: "Vermelha", Stations: nil},
	}

	g, report := Build(stations, lines)
	assert.Empty(t, g)
	assert.Equal(t, BuildReport{}, report)
}

func TestBuildEdgeCountBound(t *testing.T) {
	stations := testStations()
	lines := []*types.Line{
		{ID: "L1", Name: "Azul", Stations: []string{"jabaquara", "se", "luz", "tucuruvi"}},
		{ID: "L11", Name: "Coral", Stations: []string{"luz", "ghost"}},
	}

	_, report := Build(stations, lines)

	// Never more than 2 × Σ(len(line)−1) edges.
	bound := 2 * ((4 - 1) + (2 - 1))
	assert.LessOrEqual(t, report.Edges, bound)
	assert.Equal(t, 6, report.Edges)
	assert.Equal(t, 1, report.SkippedNoCoords)
}

func TestBuildSharedStationMergesAdjacency(t *testing.T) {
	stations := testStations()
	lines := []*types.Line{
		{ID: "L1", Name: "Azul", Stations: []string{"se", "luz"}},
		{ID: "L11", Name: "Coral", Stations: []string{"luz", "tucuruvi"}},
	}

	g, _ := Build(stations, lines)

	require.True(t, g.Has("luz"))
	assert.Len(t, g["luz"], 2)

	linesSeen := map[string]bool{}
	for _, e := range g["luz"] {
		linesSeen[e.Line] = true
	}
	assert.True(t, linesSeen["L1"])
	assert.True(t, linesSeen["L11"])
}
