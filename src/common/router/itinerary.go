package router

import "github.com/metroroute/engine/src/common/types"

// LineUnknown labels a hop whose endpoint stations share no line.
const LineUnknown = "unknown"

// Step is a contiguous same-line run within a path. From and To are
// display names; Stations counts the stations traversed in the run.
type Step struct {
	Line     string `json:"line"`
	From     string `json:"from"`
	To       string `json:"to"`
	Stations int    `json:"stations"`
}

// BuildItinerary folds a station path into line steps, merging consecutive
// hops on the same line. Every change of line between steps marks a
// transfer. A single-station path yields no steps; an empty path yields
// ErrEmptyPath.
//
// The line for each hop is the first entry of the leading station's line
// list that the trailing station also belongs to. Graph edges carry an
// authoritative line tag, so this membership intersection can mislabel a
// hop when parallel lines serve the same station pair.
// TODO: thread the edge line tag through the predecessor chain and use it
// here instead of re-deriving membership.
func BuildItinerary(stations map[string]*types.Station, path []string) ([]Step, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if len(path) == 1 {
		return []Step{}, nil
	}

	hops := make([]string, len(path)-1)
	for i := range hops {
		hops[i] = hopLine(stations[path[i]], stations[path[i+1]])
	}

	var steps []Step
	start := 0
	for i := 1; i <= len(hops); i++ {
		if i < len(hops) && hops[i] == hops[start] {
			continue
		}
		steps = append(steps, Step{
			Line:     hops[start],
			From:     stationName(stations, path[start]),
			To:       stationName(stations, path[i]),
			Stations: i - start + 1,
		})
		start = i
	}

	return steps, nil
}

// hopLine picks the first line in a's membership list that b also serves.
func hopLine(a, b *types.Station) string {
	if a == nil || b == nil {
		return LineUnknown
	}
	for _, line := range a.Lines {
		for _, other := range b.Lines {
			if line == other {
				return line
			}
		}
	}
	return LineUnknown
}

func stationName(stations map[string]*types.Station, id string) string {
	if s, ok := stations[id]; ok && s.Name != "" {
		return s.Name
	}
	return id
}
