package api

import (
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metroroute/engine/src/common/data"
	"github.com/metroroute/engine/src/common/graph"
	"github.com/metroroute/engine/src/common/router"
	"github.com/metroroute/engine/src/common/types"
	"github.com/metroroute/engine/src/common/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Snapshot is one immutable view of the network: reference data, the
// graph built from it, and a planner bound to both. Requests read whatever
// snapshot is current; rebuilds install a new one atomically so in-flight
// searches keep the view they started with.
type Snapshot struct {
	Stations map[string]*types.Station
	Lines    []*types.Line
	Graph    graph.Graph
	Report   graph.BuildReport
	BuiltAt  time.Time
	Planner  *router.Planner
}

type APIServer struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Logger *zap.SugaredLogger
	Data   *data.DataClient

	snapshot atomic.Pointer[Snapshot]
}

func NewServer() (*APIServer, error) {
	db, err := utils.NewPostgresConnection()
	logger := utils.GetLogger()
	if err != nil {
		logger.Errorw("failed to connect to database", "error", err)
		return nil, err
	}

	redis := utils.NewRedisClient()

	data := data.NewDataClient(db, redis, logger)

	return &APIServer{
		DB:     db,
		Redis:  redis,
		Logger: logger,
		Data:   data,
	}, nil
}

// Snapshot returns the current network view, or nil before the first
// successful build.
func (s *APIServer) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

func RegisterHandlers(app *fiber.App, server *APIServer) {
	app.Get("/health", server.GetHealth)
	app.Get("/stations", server.GetStations)
	app.Get("/lines", server.GetLines)
	app.Get("/network/report", server.GetNetworkReport)
	app.Post("/network/reload", server.PostNetworkReload)
	app.Get("/route", server.GetRoute)
}
