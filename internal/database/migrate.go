package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate brings the link state schema up to date. The state table name is
// configurable, so the migrations are Go functions rather than SQL files.
func Migrate(ctx context.Context, pool *pgxpool.Pool, stateTable string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(migrations(stateTable)...),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateProvider, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	if len(results) == 0 {
		slog.Default().Info(LogMsgMigrationsUpToDate)
	}
	for _, r := range results {
		slog.Default().Info(LogMsgMigrationApplied,
			"version", r.Source.Version,
			"duration", r.Duration)
	}
	return nil
}

func migrations(stateTable string) []*goose.Migration {
	ident := pgx.Identifier{stateTable}.Sanitize()

	return []*goose.Migration{
		goose.NewGoMigration(1,
			&goose.GoFunc{RunTx: execTx(fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id         TEXT PRIMARY KEY,
					payload    JSONB NOT NULL DEFAULT '{}'::jsonb,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				)`, ident))},
			&goose.GoFunc{RunTx: execTx(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, ident))},
		),
	}
}

func execTx(query string) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query)
		return err
	}
}
