// Package server boots the application: configuration, logging, database,
// cache, storage, routes, then an http.Server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/bazaar/app/routes"
	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM, then
// drains in-flight requests before returning.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: config: %w", err)
	}
	// Stdout logging always works; losing the Mongo sink is not fatal.
	if err := logger.Init(); err != nil {
		logger.Warn("log sink unavailable", "error", err)
	}
	defer logger.Shutdown()

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: database: %w", err)
	}

	// Redis is optional; without it read paths hit the database directly.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, running without it", "error", err)
	}

	storage.Connect()

	r := routes.Register(database.DB)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bazaar listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logger.Info("bye")
	return nil
}
