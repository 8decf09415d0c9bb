package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/metroroute/engine/src/common/router"
)

func (s *APIServer) GetRoute(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")

	if from == "" || to == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid request",
			Message: "Both 'from' and 'to' query parameters are required",
		})
	}

	snap := s.Snapshot()
	if snap == nil {
		return s.noSnapshot(c)
	}

	if s.Data != nil {
		if body := s.Data.CachedRoute(c.Context(), from, to); body != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		}
	}

	route, err := snap.Planner.Route(from, to)
	switch {
	case errors.Is(err, router.ErrStationUnknown):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
	case errors.Is(err, router.ErrNoRoute):
		// Disconnected stations are routing information, not a failure.
		return c.JSON(RouteResponse{From: from, To: to, Found: false})
	case err != nil:
		errStr := err.Error()
		s.Logger.Errorw("routing failed", "from", from, "to", to, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Routing error",
			Message: "Failed to compute route",
			Stack:   &errStr,
		})
	}

	response := RouteResponse{
		From:      from,
		To:        to,
		Found:     true,
		Distance:  &route.Distance,
		Path:      route.Path,
		Steps:     route.Steps,
		Transfers: route.Transfers(),
	}

	if s.Data != nil {
		if body, err := json.Marshal(response); err == nil {
			s.Data.CacheRoute(c.Context(), from, to, body)
		}
	}

	return c.JSON(response)
}
