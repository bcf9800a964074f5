package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/waytrylee/tectonicdb/internal/bootstrap"
	"github.com/waytrylee/tectonicdb/internal/consumer"
	v1 "github.com/waytrylee/tectonicdb/internal/domain/orderbook-consumer/v1"
	"github.com/waytrylee/tectonicdb/pkg/config"
	"github.com/waytrylee/tectonicdb/pkg/logger"
	"github.com/waytrylee/tectonicdb/pkg/questdb"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	questdbClient, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "questdb_connect"})
		return
	}
	defer questdbClient.Close()

	app := (&bootstrap.Bootstrap{}).Init(bootstrap.BoostrapConfig{
		QuestDB: questdbClient,
		Logger:  appLogger,
		Config:  cfg,
	})

	var orderBookConsumer v1.OrderBookConsumer = consumer.NewOrderBookConsumer(
		cfg.OrderBookKafka,
		appLogger,
		app.Repository.OrderBookRepository,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		orderBookConsumer.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		orderBookConsumer.Subscribe(ctx)
	}()

	<-quit

	appLogger.Info("Shutting down ingestor...")
	cancel()
	if err := orderBookConsumer.Stop(); err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "consumer_stop"})
	}

	appLogger.Info("Ingestor stopped")
}
