package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"swissclock.ch/swissclock/infrastructure/devops"
	"swissclock.ch/swissclock/security"
	"swissclock.ch/swissclock/store"
)

func main() {
	id := flag.Int("id", 0, "employee id")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	configPath := flag.String("config", os.Getenv("SWISSCLOCK_CONFIG"), "config file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := devops.Load(ctx, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	secret, err := cfg.Secret()
	if err != nil {
		log.Fatal(err)
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	employee, ok := backend.Directory.Lookup(*id)
	if !ok {
		log.Fatalf("employee %d not found", *id)
	}

	token, err := security.CreateIdentityToken(security.Identity{
		EmployeeID: employee.ID,
		UniqueName: fmt.Sprintf("employee-%d", employee.ID),
		Name:       employee.Name,
	}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
