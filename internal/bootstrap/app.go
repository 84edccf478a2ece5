package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/spotifylink/internal/config"
	"github.com/osse101/spotifylink/internal/database"
	"github.com/osse101/spotifylink/internal/handler"
	"github.com/osse101/spotifylink/internal/linkstore"
	"github.com/osse101/spotifylink/internal/notify"
	"github.com/osse101/spotifylink/internal/server"
	"github.com/osse101/spotifylink/internal/spotify"
)

// OpenDatabase creates the pool, checks reachability and applies the link
// state migration when enabled. An unreachable database is not fatal: the
// callback reports persistence failures and /readyz turns unhealthy until it
// comes back.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(cfg.DBConnString(), cfg.Database.MaxConns, cfg.Database.MaxConnIdle, cfg.Database.MaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreatePool, err)
	}

	if err := database.Ping(ctx, pool, StartupPingTimeout); err != nil {
		slog.Warn(LogMsgDatabaseUnreachable, "error", err)
		return pool, nil
	}

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, pool, cfg.Database.StateTable); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied, "table", cfg.Database.StateTable)
	}

	return pool, nil
}

// NewCallbackExchanger wires the token exchanger, the link store and the
// optional Discord notifier.
func NewCallbackExchanger(cfg *config.Config, pool *pgxpool.Pool) (*spotify.CallbackExchanger, error) {
	store := linkstore.NewStore(pool, cfg.Database.StateTable, cfg.Database.SerializeWrites)
	if cfg.Database.SerializeWrites {
		slog.Info(LogMsgSerializedWrites)
	}

	exchanger := spotify.NewOAuthExchanger(cfg.Spotify, &http.Client{Timeout: SpotifyHTTPTimeout})

	// A nil *DiscordNotifier must not reach the interface.
	var notifier spotify.Notifier
	if cfg.DiscordToken != "" {
		n, err := notify.NewDiscordNotifier(cfg.DiscordToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateNotify, err)
		}
		notifier = n
		slog.Info(LogMsgNotifierEnabled)
	}

	return spotify.NewCallbackExchanger(cfg.Spotify.RedirectBotToken, exchanger, store, notifier), nil
}

// NewServer builds the HTTP server with both link endpoints.
func NewServer(cfg *config.Config, pool *pgxpool.Pool, cb *spotify.CallbackExchanger) *server.Server {
	authURL := handler.NewAuthURLHandlers(spotify.NewAuthURLBuilder(cfg.Spotify))
	callback := handler.NewCallbackHandlers(cb, cfg.WebBaseURL)

	return server.NewServer(cfg.Port, cfg.TrustedProxies, cfg.Version, pool, authURL, callback)
}
