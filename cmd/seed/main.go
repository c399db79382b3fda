package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"swissclock.ch/swissclock/core"
	"swissclock.ch/swissclock/directory"
	"swissclock.ch/swissclock/infrastructure/devops"
)

// seed creates the tables and inserts the configured users as employees.
func main() {
	configPath := flag.String("config", os.Getenv("SWISSCLOCK_CONFIG"), "config file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := devops.Load(ctx, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Storage.DSN == "" {
		log.Fatal("storage.dsn (or DSN) is required")
	}

	dm, err := core.New(cfg.Storage.DSN, cfg.Storage.MaxConnections, core.LogLevelInfo)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	if err := dm.Migrate(); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	created, err := directory.Seed(ctx, dm, cfg.Users)
	if err != nil {
		log.Fatalf("failed to seed employees: %v", err)
	}
	fmt.Printf("[INFO] created %d of %d employees\n", created, len(cfg.Users))
}
