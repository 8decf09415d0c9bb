package api

import (
	"context"
	"fmt"
	"time"

	"github.com/metroroute/engine/src/common/graph"
	"github.com/metroroute/engine/src/common/router"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RebuildNetwork loads reference data, builds a fresh graph and swaps it
// in as the current snapshot. In-flight requests keep the prior snapshot.
func (s *APIServer) RebuildNetwork(ctx context.Context) error {
	stations, lines, err := s.Data.GetNetwork(ctx)
	if err != nil {
		return fmt.Errorf("failed to load network data: %w", err)
	}

	g, report := graph.Build(stations, lines)

	s.snapshot.Store(&Snapshot{
		Stations: stations,
		Lines:    lines,
		Graph:    g,
		Report:   report,
		BuiltAt:  time.Now(),
		Planner:  &router.Planner{Stations: stations, Graph: g},
	})

	s.Logger.Infow("network snapshot rebuilt",
		"stations", len(stations),
		"lines", len(lines),
		"edges", report.Edges,
		"skipped_missing", report.SkippedMissing,
		"skipped_no_coords", report.SkippedNoCoords,
	)

	return nil
}

// StartReloadConsumer consumes network-reload notifications and rebuilds
// the snapshot for each one, dropping the route cache afterwards.
func (s *APIServer) StartReloadConsumer(ctx context.Context, channel *amqp.Channel) error {
	_, err := channel.QueueDeclare("network-reload", false, false, false, false, nil)
	if err != nil {
		return err
	}

	msgs, err := channel.Consume("network-reload", "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}

				if err := s.RebuildNetwork(ctx); err != nil {
					s.Logger.Errorw("network rebuild failed", "error", err)
					continue
				}
				s.Data.FlushRouteCache(ctx)
			}
		}
	}()

	return nil
}
