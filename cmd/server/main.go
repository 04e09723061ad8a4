package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lumatch/lumatch-backend/internal/config"
	"github.com/lumatch/lumatch-backend/internal/infrastructure/container"
	"github.com/lumatch/lumatch-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Initialize dependency injection container
	app, err := container.NewContainer(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("error closing application", zap.Error(err))
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown
	if err := app.Server.Shutdown(context.Background()); err != nil {
		log.Error("server shutdown error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("server exited properly")
}
