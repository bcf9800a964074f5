package main

import (
	"context"
	"flag"
	"log"

	"github.com/waytrylee/tectonicdb/pkg/config"
	"github.com/waytrylee/tectonicdb/pkg/migration"
	"github.com/waytrylee/tectonicdb/pkg/questdb"
)

func main() {
	var (
		direction = flag.String("direction", "up", "migration direction: up or down")
		steps     = flag.Int("steps", 0, "number of migrations to run (0 = all pending, up only)")
		dir       = flag.String("dir", "migrations", "migration files directory")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		log.Fatalf("Failed to initialize QuestDB client: %v", err)
	}
	defer client.Close()

	runner := migration.NewRunner(ctx, client, *dir)

	if err := runner.EnsureMigrationTable(); err != nil {
		log.Fatalf("Failed to ensure migration table: %v", err)
	}

	switch *direction {
	case "up":
		err = runner.MigrateUp(*steps)
	case "down":
		err = runner.MigrateDown(*steps)
	default:
		log.Fatalf("Unknown direction: %s", *direction)
	}

	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}
