package main

import (
	"context"
	"log"

	"github.com/waytrylee/tectonicdb/internal/bootstrap"
	"github.com/waytrylee/tectonicdb/pkg/config"
	"github.com/waytrylee/tectonicdb/pkg/logger"
	"github.com/waytrylee/tectonicdb/pkg/questdb"
)

func main() {
	ctx := context.Background()

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

	path, count, err := app.Usecase.ArchiveUsecase.Archive(ctx, cfg.Archive.Symbol, cfg.Archive.BatchSize)
	if err != nil {
		appLogger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "archive"})
		return
	}

	appLogger.InfoContext(ctx, "archive run finished",
		logger.Field{Key: "symbol", Value: cfg.Archive.Symbol},
		logger.Field{Key: "path", Value: path},
		logger.Field{Key: "count", Value: count},
	)
}
