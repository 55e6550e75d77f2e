package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"llb/internal/app"
	"llb/internal/config"
	"llb/internal/logger"
)

func main() {
	log := logger.NewColoredLogger()

	if os.Geteuid() != 0 {
		log.Error("This program requires root privileges to run. Please run with sudo.")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("System detection failed: %v", err)
		os.Exit(1)
	}

	application := app.New(cfg, log)
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Received exit signal, shutting down gracefully...")
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		log.Error("Bootstrap failed: %v", err)
		os.Exit(1)
	}
}
