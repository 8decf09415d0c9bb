package router

import "errors"

var (
	// ErrStationUnknown reports an origin or destination id that does not
	// resolve against the loaded station data. This is caller misuse, not
	// a statement about network topology.
	ErrStationUnknown = errors.New("router: unknown station")

	// ErrNoRoute reports that no path connects origin and destination in
	// the built graph. A legitimate routing outcome for disconnected
	// components, not a failure.
	ErrNoRoute = errors.New("router: no route between stations")

	// ErrEmptyPath reports an itinerary request over an empty path.
	ErrEmptyPath = errors.New("router: empty path")
)
