package graph

import (
	"github.com/metroroute/engine/src/common/geo"
	"github.com/metroroute/engine/src/common/types"
)

// Edge connects two stations along a line. Weight is the great-circle
// distance between them in meters.
type Edge struct {
	To     string
	Weight float64
	Line   string
}

// Graph maps a station id to its outgoing edges. It is built undirected:
// every A→B insertion gets a mirrored B→A edge with the same weight and
// line id. Once built it is never mutated; rebuilds produce a new value.
type Graph map[string][]Edge

// BuildReport counts the station pairs skipped while building, so callers
// can surface reference-data quality issues without the build failing.
type BuildReport struct {
	Edges           int `json:"edges"`
	SkippedMissing  int `json:"skipped_missing_station"`
	SkippedNoCoords int `json:"skipped_missing_coords"`
	SkippedSelf     int `json:"skipped_self_pair"`
}

// Build converts lines and stations into a weighted undirected graph.
// For each consecutive station pair on each line, a duplicated stop, a
// pair referencing an unknown station or a station without coordinates is
// skipped and counted;
// everything else becomes a mirrored pair of line-tagged edges. Lines with
// fewer than two stations contribute nothing.
func Build(stations map[string]*types.Station, lines []*types.Line) (Graph, BuildReport) {
	g := make(Graph)
	var report BuildReport

	for _, line := range lines {
		for i := 0; i+1 < len(line.Stations); i++ {
			fromID := line.Stations[i]
			toID := line.Stations[i+1]

			// Consecutive stops should be distinct; a duplicated stop
			// would otherwise become a zero-weight self-loop.
			if fromID == toID {
				report.SkippedSelf++
				continue
			}

			from, ok := stations[fromID]
			if !ok {
				report.SkippedMissing++
				continue
			}
			to, ok := stations[toID]
			if !ok {
				report.SkippedMissing++
				continue
			}
			if from.Coords == nil || to.Coords == nil {
				report.SkippedNoCoords++
				continue
			}

			w := geo.Distance(from.Coords.Lat, from.Coords.Lon, to.Coords.Lat, to.Coords.Lon)
			g[fromID] = append(g[fromID], Edge{To: toID, Weight: w, Line: line.ID})
			g[toID] = append(g[toID], Edge{To: fromID, Weight: w, Line: line.ID})
			report.Edges += 2
		}
	}

	return g, report
}

// Has reports whether id has at least one edge in the graph.
func (g Graph) Has(id string) bool {
	_, ok := g[id]
	return ok
}
