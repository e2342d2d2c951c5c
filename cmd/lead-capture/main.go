package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/quixlabs/lead-capture/internal/adapters/auth"
	"github.com/quixlabs/lead-capture/internal/core"
	"github.com/quixlabs/lead-capture/internal/di"
	"github.com/quixlabs/lead-capture/internal/ports"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	// A .env file is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	webServer ports.WebServer,
	sessions *auth.SessionStore,
	historyRepo core.HistoryRepository,
) error {
	defer logger.Sync()

	// Start the web server
	if err := webServer.Start(); err != nil {
		logger.Fatal("Failed to start web server", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := webServer.Stop(); err != nil {
		logger.Error("Failed to stop web server", zap.Error(err))
	}

	sessions.Stop()

	// Stop the history store if one is running
	if stopper, ok := historyRepo.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
