package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v3"

	"github.com/osse101/spotifylink/internal/config"
	"github.com/osse101/spotifylink/internal/database"
	"github.com/osse101/spotifylink/internal/domain"
	"github.com/osse101/spotifylink/internal/linkstore"
	"github.com/osse101/spotifylink/internal/spotify"
)

const (
	flagUserID = "user-id"

	// visible characters kept at each end of a masked token
	maskKeep = 4
)

// LinkReader looks up a stored link.
type LinkReader interface {
	GetLink(ctx context.Context, userID string) (*domain.LinkRecord, error)
}

// Runner holds the dependencies shared by the commands.
type Runner struct {
	cfg *config.Config
	out io.Writer

	openPool func(ctx context.Context) (*pgxpool.Pool, error)
	newStore func(pool *pgxpool.Pool) LinkReader
}

// NewRunner creates a runner that prints to out.
func NewRunner(cfg *config.Config, out io.Writer) *Runner {
	r := &Runner{cfg: cfg, out: out}
	r.openPool = func(ctx context.Context) (*pgxpool.Pool, error) {
		return database.NewPool(cfg.DBConnString(), cfg.Database.MaxConns, cfg.Database.MaxConnIdle, cfg.Database.MaxConnLifetime)
	}
	r.newStore = func(pool *pgxpool.Pool) LinkReader {
		return linkstore.NewStore(pool, cfg.Database.StateTable, cfg.Database.SerializeWrites)
	}
	return r
}

// Migrate applies the link state migration.
func (r *Runner) Migrate(ctx context.Context, _ *cli.Command) error {
	pool, err := r.openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, r.cfg.Database.StateTable); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "link state table %q is up to date\n", r.cfg.Database.StateTable)
	return nil
}

// Show prints the stored record of one user.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	userID := strings.TrimSpace(cmd.String(flagUserID))

	pool, err := r.openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	rec, err := r.newStore(pool).GetLink(ctx, userID)
	if errors.Is(err, domain.ErrLinkNotFound) {
		fmt.Fprintf(r.out, "no Spotify link stored for %s\n", userID)
		return nil
	}
	if err != nil {
		return err
	}

	r.printRecord(rec)
	return nil
}

// AuthURL prints the URL the auth-url endpoint would return.
func (r *Runner) AuthURL(_ context.Context, cmd *cli.Command) error {
	url, err := spotify.NewAuthURLBuilder(r.cfg.Spotify).Build(cmd.String(flagUserID))
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, url)
	return nil
}

func (r *Runner) printRecord(rec *domain.LinkRecord) {
	expires := rec.ExpiresAtTime().UTC()
	status := "valid"
	if time.Now().After(expires) {
		status = "expired"
	}

	fmt.Fprintf(r.out, "user_id:       %s\n", rec.UserID)
	fmt.Fprintf(r.out, "access_token:  %s\n", maskToken(rec.AccessToken))
	fmt.Fprintf(r.out, "refresh_token: %s\n", maskToken(rec.RefreshToken))
	fmt.Fprintf(r.out, "expires_at:    %s (%s)\n", expires.Format(time.RFC3339), status)
}

// maskToken keeps a few characters at each end so tokens can be told apart
// without being usable.
func maskToken(token string) string {
	if token == "" {
		return "(none)"
	}
	if len(token) <= 2*maskKeep {
		return strings.Repeat("*", len(token))
	}
	return token[:maskKeep] + strings.Repeat("*", len(token)-2*maskKeep) + token[len(token)-maskKeep:]
}
