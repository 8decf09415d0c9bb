package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/metroroute/engine/src/common/utils"
	"github.com/metroroute/engine/src/http-api/api"
)

func main() {
	godotenv.Load()

	utils.InitLogger()
	defer utils.SyncLogger()
	log := utils.GetLogger()

	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		path := c.Path()
		method := c.Method()

		if path != "/health" {
			log.Infow("request", "method", method, "path", path, "status", c.Response().StatusCode())
		}

		return c.Next()
	})

	app.Use(cors.New())

	server, err := api.NewServer()
	if err != nil {
		log.Fatalw("failed to start http api server", "error", err)
		return
	}

	if err := server.RebuildNetwork(context.Background()); err != nil {
		// Serve anyway; a reload message or POST /network/reload can
		// recover once reference data lands.
		log.Warnw("initial network build failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conn, channel, err := utils.NewRabbitConnection(); err != nil {
		log.Warnw("rabbitmq unavailable, reload notifications disabled", "error", err)
	} else {
		defer conn.Close()
		defer channel.Close()

		if err := server.StartReloadConsumer(ctx, channel); err != nil {
			log.Warnw("failed to start reload consumer", "error", err)
		}
	}

	api.RegisterHandlers(app, server)

	if err := app.Listen(":3000"); err != nil {
		log.Fatalw("fiber listen failed", "error", err)
	}
}
