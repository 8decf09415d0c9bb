package api

import (
	"time"

	"github.com/metroroute/engine/src/common/graph"
	"github.com/metroroute/engine/src/common/router"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message"`
	Stack   *string `json:"stack,omitempty"`
}

// RouteResponse is the answer to a routing request. Found=false carries no
// path and is a legitimate result, not an error: the stations exist but no
// line sequence connects them.
type RouteResponse struct {
	From      string        `json:"from"`
	To        string        `json:"to"`
	Found     bool          `json:"found"`
	Distance  *float64      `json:"distance_m,omitempty"`
	Path      []string      `json:"path,omitempty"`
	Steps     []router.Step `json:"steps,omitempty"`
	Transfers int           `json:"transfers"`
}

// NetworkReportResponse summarises the current snapshot and its build
// report, surfacing reference-data quality without failing any request.
type NetworkReportResponse struct {
	Stations int               `json:"stations"`
	Lines    int               `json:"lines"`
	Report   graph.BuildReport `json:"report"`
	BuiltAt  time.Time         `json:"built_at"`
}
