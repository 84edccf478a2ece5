package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/spotifylink/internal/bootstrap"
	"github.com/osse101/spotifylink/internal/config"
)

// @title Spotify Link API
// @version 1.0
// @description Links Discord users to their Spotify accounts via OAuth.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	err = run(cfg)
	if err != nil {
		slog.Error("Service exited with error", "error", err)
	}
	_ = logFile.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	pool, err := bootstrap.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}

	cb, err := bootstrap.NewCallbackExchanger(cfg, pool)
	if err != nil {
		pool.Close()
		return err
	}
	srv := bootstrap.NewServer(cfg, pool, cb)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sc)

	select {
	case err = <-serveErr:
	case sig := <-sc:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:        srv,
		Notifications: cb,
		DBPool:        pool,
	})

	return err
}
