package bootstrap

import (
	"context"
	"log/slog"
)

// Stopper is a component that stops accepting work within ctx.
type Stopper interface {
	Stop(ctx context.Context) error
}

// Drainer waits for background work started by a component.
type Drainer interface {
	Shutdown(ctx context.Context) error
}

// Closer releases a resource without a deadline.
type Closer interface {
	Close()
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server        Stopper
	Notifications Drainer
	DBPool        Closer
}

// GracefulShutdown stops the HTTP server first so in-flight callbacks can
// finish their writes, then waits for pending link notifications and
// finally closes the database pool.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Notifications != nil {
		slog.Info(LogMsgDrainingNotifications)
		if err := components.Notifications.Shutdown(ctx); err != nil {
			slog.Error(LogMsgNotificationsAbandoned, "error", err)
		}
	}

	if components.DBPool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
