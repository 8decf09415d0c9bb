package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metroroute/engine/src/common/types"
	"github.com/metroroute/engine/src/common/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

// applyStation upserts one station record. Records without coordinates
// store NULL lat/lon; the graph builder skips such stations later.
func applyStation(ctx context.Context, pg *pgxpool.Pool, record types.StationRecord) error {
	var lat, lon *float64
	if len(record.Coords) == 2 {
		lat = &record.Coords[0]
		lon = &record.Coords[1]
	}

	_, err := pg.Exec(ctx, `
		INSERT INTO station (id, name, lat, lon) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = $2, lat = $3, lon = $4
	`, record.ID, record.Name, lat, lon)

	return err
}

// applyLine replaces a line and its station ordering in one transaction.
func applyLine(ctx context.Context, pg *pgxpool.Pool, record types.LineRecord) error {
	tx, err := pg.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO line (id, name, color) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = $2, color = $3
	`, record.ID, record.Name, record.Color)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, "DELETE FROM line_station WHERE line_id = $1", record.ID); err != nil {
		return err
	}

	for position, stationID := range record.Stations {
		_, err = tx.Exec(ctx, `
			INSERT INTO line_station (line_id, station_id, position) VALUES ($1, $2, $3)
		`, record.ID, stationID, position)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func notifyReload(channel *amqp.Channel, rdb *redis.Client) {
	logger := utils.GetLogger()

	if version, err := rdb.Incr(context.Background(), "network:version").Result(); err != nil {
		logger.Warnw("failed to bump network version", "error", err)
	} else {
		logger.Debugw("network version bumped", "version", version)
	}

	err := channel.Publish(
		"",
		"network-reload",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        []byte("{}"),
		},
	)
	if err != nil {
		logger.Warnw("failed to publish reload notification", "error", err)
	}
}

func consumeStations(ctx context.Context, wg *sync.WaitGroup, pg *pgxpool.Pool, channel *amqp.Channel, rdb *redis.Client) error {
	defer wg.Done()
	logger := utils.GetLogger()

	msgs, err := channel.Consume("station-updates", "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			var record types.StationRecord
			if err := json.Unmarshal(msg.Body, &record); err != nil {
				logger.Warnw("bad station update", "error", err)
				continue
			}

			if err := applyStation(ctx, pg, record); err != nil {
				logger.Errorw("failed to apply station update", "station", record.ID, "error", err)
				continue
			}

			fmt.Printf("Applied station update: %s\n", record.ID)
			notifyReload(channel, rdb)
		}
	}
}

func consumeLines(ctx context.Context, wg *sync.WaitGroup, pg *pgxpool.Pool, channel *amqp.Channel, rdb *redis.Client) error {
	defer wg.Done()
	logger := utils.GetLogger()

	msgs, err := channel.Consume("line-updates", "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			var record types.LineRecord
			if err := json.Unmarshal(msg.Body, &record); err != nil {
				logger.Warnw("bad line update", "error", err)
				continue
			}

			if err := applyLine(ctx, pg, record); err != nil {
				logger.Errorw("failed to apply line update", "line", record.ID, "error", err)
				continue
			}

			fmt.Printf("Applied line update: %s\n", record.ID)
			notifyReload(channel, rdb)
		}
	}
}

func main() {
	godotenv.Load()

	utils.InitLogger()
	defer utils.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := utils.NewPostgresConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	rdb := utils.NewRedisClient()
	defer rdb.Close()

	conn, err := utils.NewRabbitConnectionOnly()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Separate channels per consumer to avoid concurrency issues
	stationChannel, err := conn.Channel()
	if err != nil {
		log.Fatal(err)
	}
	defer stationChannel.Close()

	lineChannel, err := conn.Channel()
	if err != nil {
		log.Fatal(err)
	}
	defer lineChannel.Close()

	for _, queue := range []string{"station-updates", "line-updates", "network-reload"} {
		if _, err := stationChannel.QueueDeclare(queue, false, false, false, false, nil); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println("Applying network updates from feed queues...")

	var wg sync.WaitGroup

	wg.Add(1)
	go consumeStations(ctx, &wg, pg, stationChannel, rdb)

	wg.Add(1)
	go consumeLines(ctx, &wg, pg, lineChannel, rdb)

	<-ctx.Done()
	stop()

	wg.Wait()
}
