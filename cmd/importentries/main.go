package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"swissclock.ch/swissclock/importer"
	"swissclock.ch/swissclock/infrastructure/devops"
	"swissclock.ch/swissclock/store"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

func main() {
	path := flag.String("file", "", "CSV of employeeId,clockIn,clockOut or a terminal punch export")
	configPath := flag.String("config", os.Getenv("SWISSCLOCK_CONFIG"), "config file")
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	cfg, err := devops.Load(ctx, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Storage.Driver == devops.StorageMemory {
		log.Fatal("importing into the memory store has no effect; configure sqlite or mysql")
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("failed to open file %s: %v", *path, err)
	}
	defer file.Close()

	accounting := timeclock.New(backend.Store, backend.Directory, timeclock.Options{
		Location: utils.LoadLocation(cfg.Timezone),
	})
	result, err := importer.Import(ctx, accounting, file)
	if result != nil {
		fmt.Printf("[INFO] imported %d entries, %d already present\n", result.Imported, result.Duplicates)
		for _, s := range result.Skipped {
			fmt.Printf("[WARN] employee %d on %s has a single punch, skipped\n", s.EmployeeID, s.Date)
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}
