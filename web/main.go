package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"swissclock.ch/swissclock/infrastructure/broadcast"
	"swissclock.ch/swissclock/infrastructure/communication"
	"swissclock.ch/swissclock/infrastructure/devops"
	"swissclock.ch/swissclock/store"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
	"swissclock.ch/swissclock/web/handlers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := os.Getenv("SWISSCLOCK_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := devops.Load(ctx, path)
	if err != nil {
		log.Fatal(err)
	}
	secret, err := cfg.Secret()
	if err != nil {
		log.Fatal("Failed to decode signing secret:", err)
	}
	fmt.Printf("[INFO] using storage: %s\n", cfg.Storage.Driver)

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	loc := utils.LoadLocation(cfg.Timezone)
	broker := broadcast.NewBroker(0)
	defer broker.Close()

	publishers := broadcast.Fanout{broker}
	if slack := communication.ConnectSlack(loc); slack != nil {
		notifications := broadcast.NewBroker(64)
		defer notifications.Close()
		events, cancel := notifications.Subscribe()
		defer cancel()
		go slack.Relay(ctx, events)
		publishers = append(publishers, notifications)
		fmt.Println("[INFO] relaying clock events to Slack")
	}

	accounting := timeclock.New(backend.Store, backend.Directory, timeclock.Options{
		Publisher: publishers,
		Location:  loc,
	})

	r := handlers.NewRouter(handlers.Services{
		Accounting: accounting,
		Directory:  backend.Directory,
		Broker:     broker,
		Secret:     secret,
		TokenTTL:   cfg.TokenTTL,
	})

	fmt.Printf("[INFO] listening on %s (%s)\n", cfg.Addr, loc)
	if err := run(ctx, r, cfg.Addr, broker.Close); err != nil {
		log.Fatal(err)
	}
}
