package router

import (
	"fmt"

	"github.com/metroroute/engine/src/common/graph"
	"github.com/metroroute/engine/src/common/types"
)

// Route is a solved routing request: the station id path, its total length
// in meters, and the path folded into line steps.
type Route struct {
	Path     []string `json:"path"`
	Distance float64  `json:"distance_m"`
	Steps    []Step   `json:"steps"`
}

// Transfers counts the line changes along the route.
func (r *Route) Transfers() int {
	if len(r.Steps) == 0 {
		return 0
	}
	return len(r.Steps) - 1
}

// Planner answers routing requests against one immutable network snapshot.
// It only reads the graph and station data, so a single Planner is safe
// for concurrent use; data reloads build a new Planner rather than
// mutating this one.
type Planner struct {
	Stations map[string]*types.Station
	Graph    graph.Graph
}

// Route validates the request, runs the shortest-path search and
// decomposes the result into an itinerary.
//
// Unknown or empty station ids fail with ErrStationUnknown before the
// search runs. A pair of known stations with no connecting path fails
// with ErrNoRoute.
func (p *Planner) Route(origin, destination string) (*Route, error) {
	if origin == "" {
		return nil, fmt.Errorf("%w: empty origin", ErrStationUnknown)
	}
	if destination == "" {
		return nil, fmt.Errorf("%w: empty destination", ErrStationUnknown)
	}
	if _, ok := p.Stations[origin]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrStationUnknown, origin)
	}
	if _, ok := p.Stations[destination]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrStationUnknown, destination)
	}

	path, distance, err := ShortestPath(p.Graph, origin, destination)
	if err != nil {
		return nil, err
	}

	steps, err := BuildItinerary(p.Stations, path)
	if err != nil {
		return nil, err
	}

	return &Route{
		Path:     path,
		Distance: distance,
		Steps:    steps,
	}, nil
}
