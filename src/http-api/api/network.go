package api

import (
	"net/http"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/metroroute/engine/src/common/types"
)

func (s *APIServer) noSnapshot(c *fiber.Ctx) error {
	return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
		Error:   "Network unavailable",
		Message: "Network data has not been loaded yet",
	})
}

func (s *APIServer) GetStations(c *fiber.Ctx) error {
	snap := s.Snapshot()
	if snap == nil {
		return s.noSnapshot(c)
	}

	stations := make([]*types.Station, 0, len(snap.Stations))
	for _, station := range snap.Stations {
		stations = append(stations, station)
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })

	return c.JSON(stations)
}

func (s *APIServer) GetLines(c *fiber.Ctx) error {
	snap := s.Snapshot()
	if snap == nil {
		return s.noSnapshot(c)
	}

	return c.JSON(snap.Lines)
}

func (s *APIServer) GetNetworkReport(c *fiber.Ctx) error {
	snap := s.Snapshot()
	if snap == nil {
		return s.noSnapshot(c)
	}

	return c.JSON(NetworkReportResponse{
		Stations: len(snap.Stations),
		Lines:    len(snap.Lines),
		Report:   snap.Report,
		BuiltAt:  snap.BuiltAt,
	})
}

func (s *APIServer) PostNetworkReload(c *fiber.Ctx) error {
	if err := s.RebuildNetwork(c.Context()); err != nil {
		errStr := err.Error()
		s.Logger.Errorw("network rebuild failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Reload failed",
			Message: "Failed to rebuild network from reference data",
			Stack:   &errStr,
		})
	}

	if s.Data != nil {
		s.Data.FlushRouteCache(c.Context())
	}

	return s.GetNetworkReport(c)
}
