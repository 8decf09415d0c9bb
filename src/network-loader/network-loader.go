package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metroroute/engine/src/common/utils"
	amqp "github.com/rabbitmq/amqp091-go"
)

func ReferenceRequest(endpoint string) (*http.Response, error) {
	baseUrl := os.Getenv("NETWORK_API")
	apiKey := os.Getenv("NETWORK_API_KEY")

	client := &http.Client{}

	req, err := http.NewRequest("GET", baseUrl+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-apikey", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func EnsureSchema(pg *pgxpool.Pool) error {
	_, err := pg.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS station (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat  DOUBLE PRECISION,
			lon  DOUBLE PRECISION
		);
		CREATE TABLE IF NOT EXISTS line (
			id    TEXT PRIMARY KEY,
			name  TEXT NOT NULL,
			color TEXT
		);
		CREATE TABLE IF NOT EXISTS line_station (
			line_id    TEXT NOT NULL REFERENCES line(id) ON DELETE CASCADE,
			station_id TEXT NOT NULL,
			position   INT NOT NULL,
			PRIMARY KEY (line_id, position)
		);
		CREATE TABLE IF NOT EXISTS reference_fetch (
			key          TEXT PRIMARY KEY,
			last_fetched TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			max_age      INTERVAL NOT NULL DEFAULT '24 hours'
		);
		INSERT INTO reference_fetch (key, last_fetched)
			VALUES ('network', NOW() - INTERVAL '100 years')
			ON CONFLICT (key) DO NOTHING;
	`)
	return err
}

func UpdateNetwork(pg *pgxpool.Pool) error {
	res, err := ReferenceRequest("/v1/network")
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	reference, err := utils.UnmarshalNetworkReference(body)
	if err != nil {
		return err
	}

	tx, err := pg.Begin(context.Background())
	if err != nil {
		return err
	}
	defer tx.Rollback(context.Background())

	if _, err = tx.Exec(context.Background(), "TRUNCATE TABLE station, line, line_station"); err != nil {
		return err
	}

	for _, station := range reference.Stations {
		var lat, lon *float64
		if len(station.Coords) == 2 {
			lat = &station.Coords[0]
			lon = &station.Coords[1]
		}
		_, err := tx.Exec(context.Background(),
			"INSERT INTO station (id, name, lat, lon) VALUES ($1, $2, $3, $4)",
			station.ID, station.Name, lat, lon)
		if err != nil {
			return err
		}
	}

	for _, line := range reference.Lines {
		_, err := tx.Exec(context.Background(),
			"INSERT INTO line (id, name, color) VALUES ($1, $2, $3)",
			line.ID, line.Name, line.Color)
		if err != nil {
			return err
		}

		for position, stationID := range line.Stations {
			_, err := tx.Exec(context.Background(),
				"INSERT INTO line_station (line_id, station_id, position) VALUES ($1, $2, $3)",
				line.ID, stationID, position)
			if err != nil {
				return err
			}
		}
	}

	// A silently failed stamp would re-import on every cycle.
	if _, err = tx.Exec(context.Background(), "UPDATE reference_fetch SET last_fetched = NOW() WHERE key = 'network'"); err != nil {
		return err
	}

	if err := tx.Commit(context.Background()); err != nil {
		return err
	}

	return nil
}

func PublishReload() error {
	conn, channel, err := utils.NewRabbitConnection()
	if err != nil {
		return err
	}
	defer conn.Close()
	defer channel.Close()

	if _, err := channel.QueueDeclare("network-reload", false, false, false, false, nil); err != nil {
		return err
	}

	return channel.Publish(
		"",
		"network-reload",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        []byte("{}"),
		},
	)
}

func main() {
	godotenv.Load()

	pg, err := utils.NewPostgresConnection()
	if err != nil {
		log.Fatal(err)
	}

	if err := EnsureSchema(pg); err != nil {
		log.Fatal(err)
	}

	for {
		rows, err := pg.Query(context.Background(), "SELECT key FROM reference_fetch WHERE last_fetched + max_age < NOW()")
		if err != nil {
			log.Fatal(err)
		}

		var stale []string
		var key string
		for rows.Next() {
			if err := rows.Scan(&key); err != nil {
				log.Fatal(err)
			}
			stale = append(stale, key)
		}
		rows.Close()

		for _, key := range stale {
			switch key {
			case "network":
				log.Println("Updating network reference data...")
				if err := UpdateNetwork(pg); err != nil {
					log.Printf("Error updating network reference data: %v\n", err)
					continue
				}
				log.Println("Network reference data updated successfully.")

				if err := PublishReload(); err != nil {
					log.Printf("Error publishing reload notification: %v\n", err)
				}
			default:
				fmt.Printf("Unknown key: %s\n", key)
			}
		}

		// Sleep for a while before checking again
		time.Sleep(1 * time.Hour)
	}
}
