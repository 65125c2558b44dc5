package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"betbot/cmd"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := cmd.Migrate(context.Background(), os.Args[2:]); err != nil {
				log.Fatal("Migration error: ", err)
			}
			return
		case "register":
			if err := cmd.RegisterCommands(); err != nil {
				log.Fatal("Register error: ", err)
			}
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}
