// Command server runs the job board HTTP API, the websocket feed and the
// cache warm-up scheduler.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("[App] %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	logger := server.Container.Logger
	defer func() {
		if err := cleanup(); err != nil {
			logger.Printf("[App] cleanup error=%v", err)
		}
	}()

	listenErr := make(chan error, 1)
	go func() {
		logger.Printf("[App] listening addr=%s env=%s", addr, cfg.App.Environment)
		listenErr <- server.Fiber.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	logger.Printf("[App] shutdown requested, draining for up to %s", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Fiber.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
