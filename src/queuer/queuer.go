package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/metroroute/engine/src/common/utils"
	"github.com/metroroute/engine/src/queuer/listener"

	amqp "github.com/rabbitmq/amqp091-go"
)

var mqConn *amqp.Connection

func HandleStationUpdates(channel *amqp.Channel, data string) {
	records, err := utils.UnmarshalStationUpdates(data)
	if err != nil {
		utils.GetLogger().Warnw("error unmarshalling station update", "error", err)
		return
	}

	for _, record := range records {
		body, _ := json.Marshal(record)
		err = channel.Publish(
			"",
			"station-updates",
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		if err != nil {
			utils.GetLogger().Warnw("error publishing message to RabbitMQ", "queue", "station-updates", "error", err)
		} else {
			utils.GetLogger().Debugw("published station update", "station", record.ID)
		}
	}
}

func HandleLineUpdates(channel *amqp.Channel, data string) {
	records, err := utils.UnmarshalLineUpdates(data)
	if err != nil {
		utils.GetLogger().Warnw("error unmarshalling line update", "error", err)
		return
	}

	for _, record := range records {
		body, _ := json.Marshal(record)
		err = channel.Publish(
			"",
			"line-updates",
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		if err != nil {
			utils.GetLogger().Warnw("error publishing message to RabbitMQ", "queue", "line-updates", "error", err)
		} else {
			utils.GetLogger().Debugw("published line update", "line", record.ID)
		}
	}
}

func main() {
	godotenv.Load()

	utils.InitLogger()
	defer utils.SyncLogger()
	logger := utils.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	mqConn, err = utils.NewRabbitConnectionOnly()
	if err != nil {
		logger.Fatalw("failed to connect to RabbitMQ", "error", err)
	}
	defer mqConn.Close()

	closeChan := make(chan *amqp.Error)
	mqConn.NotifyClose(closeChan)

	go func() {
		select {
		case err := <-closeChan:
			if err != nil {
				logger.Warnw("RabbitMQ connection closed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}()

	// Separate channels per listener to avoid concurrency issues
	stationChannel, err := mqConn.Channel()
	if err != nil {
		logger.Fatalw("failed to create station channel", "error", err)
	}
	defer stationChannel.Close()

	lineChannel, err := mqConn.Channel()
	if err != nil {
		logger.Fatalw("failed to create line channel", "error", err)
	}
	defer lineChannel.Close()

	stompConn, err := utils.NewFeedStompConnection()
	if err != nil {
		logger.Fatalw("failed to connect to network feed", "error", err)
	}

	var wg sync.WaitGroup

	stationListener := listener.NewListener(ctx, &wg, stationChannel, stompConn, "/topic/network.stations", HandleStationUpdates)
	stationListener.DeclareQueue("station-updates")

	lineListener := listener.NewListener(ctx, &wg, lineChannel, stompConn, "/topic/network.lines", HandleLineUpdates)
	lineListener.DeclareQueue("line-updates")

	wg.Add(1)
	go stationListener.Start()

	wg.Add(1)
	go lineListener.Start()

	<-ctx.Done()
	stop()

	wg.Wait()

	stompConn.Disconnect()
}
