package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyager/internal/bootstrap"
	"voyager/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	container := bootstrap.NewContainer()
	container.MustInit()
	defer logger.Sync()

	log := container.Log

	if err := container.Start(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	waitForShutdown(container)
	log.Info("Goodbye")
}

// waitForShutdown blocks until a termination signal or a fatal
// component failure, then drains the container gracefully.
func waitForShutdown(container *bootstrap.Container) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		container.Log.Infof("Received signal %s, shutting down...", sig)
	case <-container.Context.Done():
		container.Log.Warn("Component failure, shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	container.Shutdown(ctx)
}
