package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/metroroute/engine/src/common/graph"
	"github.com/metroroute/engine/src/common/router"
	"github.com/metroroute/engine/src/common/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, withSnapshot bool) *fiber.App {
	t.Helper()

	server := &APIServer{Logger: zap.NewNop().Sugar()}

	if withSnapshot {
		coords := func(lat, lon float64) *types.Coords {
			return &types.Coords{Lat: lat, Lon: lon}
		}
		stations := map[string]*types.Station{
			"jabaquara": {ID: "jabaquara", Name: "Jabaquara", Coords: coords(-23.65, -46.64)},
			"se":        {ID: "se", Name: "Sé", Coords: coords(-23.55, -46.63)},
			"luz":       {ID: "luz", Name: "Luz", Coords: coords(-23.5343, -46.6345)},
			"tucuruvi":  {ID: "tucuruvi", Name: "Tucuruvi", Coords: coords(-23.48, -46.60)},
			"campinas":  {ID: "campinas", Name: "Campinas", Coords: coords(-22.90, -47.06)},
		}
		lines := []*types.Line{
			{ID: "L1", Name: "Azul", Stations: []string{"jabaquara", "se", "luz", "tucuruvi"}},
		}
		for _, line := range lines {
			for _, id := range line.Stations {
				stations[id].Lines = append(stations[id].Lines, line.ID)
			}
		}

		g, report := graph.Build(stations, lines)
		server.snapshot.Store(&Snapshot{
			Stations: stations,
			Lines:    lines,
			Graph:    g,
			Report:   report,
			BuiltAt:  time.Now(),
			Planner:  &router.Planner{Stations: stations, Graph: g},
		})
	}

	app := fiber.New()
	RegisterHandlers(app, server)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (*http.Response, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, body
}

func TestGetHealth(t *testing.T) {
	app := newTestApp(t, false)

	resp, body := doRequest(t, app, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health.Status)
}

func TestGetRouteHappyPath(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doRequest(t, app, http.MethodGet, "/route?from=jabaquara&to=tucuruvi")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var route RouteResponse
	require.NoError(t, json.Unmarshal(body, &route))
	assert.True(t, route.Found)
	assert.Equal(t, []string{"jabaquara", "se", "luz", "tucuruvi"}, route.Path)
	require.Len(t, route.Steps, 1)
	assert.Equal(t, "L1", route.Steps[0].Line)
	assert.Zero(t, route.Transfers)
	require.NotNil(t, route.Distance)
	assert.Positive(t, *route.Distance)
}

func TestGetRouteUnknownStation(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doRequest(t, app, http.MethodGet, "/route?from=se&to=atlantis")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "Invalid request", errResp.Error)
}

func TestGetRouteMissingParams(t *testing.T) {
	app := newTestApp(t, true)

	resp, _ := doRequest(t, app, http.MethodGet, "/route?from=se")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRouteNoRoute(t *testing.T) {
	app := newTestApp(t, true)

	// campinas is a known station with no edges.
	resp, body := doRequest(t, app, http.MethodGet, "/route?from=se&to=campinas")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var route RouteResponse
	require.NoError(t, json.Unmarshal(body, &route))
	assert.False(t, route.Found)
	assert.Empty(t, route.Path)
}

func TestGetRouteWithoutSnapshot(t *testing.T) {
	app := newTestApp(t, false)

	resp, _ := doRequest(t, app, http.MethodGet, "/route?from=se&to=luz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetStationsSorted(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doRequest(t, app, http.MethodGet, "/stations")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stations []types.Station
	require.NoError(t, json.Unmarshal(body, &stations))
	require.Len(t, stations, 5)
	for i := 1; i < len(stations); i++ {
		assert.Less(t, stations[i-1].ID, stations[i].ID)
	}
}

func TestGetNetworkReport(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doRequest(t, app, http.MethodGet, "/network/report")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report NetworkReportResponse
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 5, report.Stations)
	assert.Equal(t, 1, report.Lines)
	assert.Equal(t, 6, report.Report.Edges)
}
