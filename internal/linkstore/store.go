package linkstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/spotifylink/internal/domain"
	"github.com/osse101/spotifylink/internal/logger"
)

// Store keeps the link state document in a PostgreSQL JSONB table.
type Store struct {
	pool      *pgxpool.Pool
	serialize bool

	selectSQL          string
	upsertSQL          string
	ensureSQL          string
	selectForUpdateSQL string
	updateSQL          string
}

// NewStore creates a store over table. With serialize set, UpsertLink runs
// the read-merge-write under a row lock so concurrent callbacks cannot
// overwrite each other's records.
func NewStore(pool *pgxpool.Pool, table string, serialize bool) *Store {
	ident := pgx.Identifier{table}.Sanitize()
	return &Store{
		pool:               pool,
		serialize:          serialize,
		selectSQL:          fmt.Sprintf(sqlSelectDocument, ident),
		upsertSQL:          fmt.Sprintf(sqlUpsertDocument, ident),
		ensureSQL:          fmt.Sprintf(sqlEnsureDocument, ident),
		selectForUpdateSQL: fmt.Sprintf(sqlSelectDocumentForUpdate, ident),
		updateSQL:          fmt.Sprintf(sqlUpdateDocument, ident),
	}
}

// UpsertLink merges rec into the state document and writes the whole
// document back. It reports whether a new entry was created. All errors
// wrap domain.ErrPersistenceFailed.
func (s *Store) UpsertLink(ctx context.Context, rec domain.LinkRecord) (bool, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return false, persistErr(ErrMsgAcquireConn, err)
	}
	defer conn.Release()

	if s.serialize {
		return s.upsertLocked(ctx, conn, rec)
	}

	doc, err := readDocument(ctx, conn, s.selectSQL)
	if err != nil {
		return false, err
	}

	merged, created := MergeLink(*doc, rec)
	payload, err := json.Marshal(merged)
	if err != nil {
		return false, persistErr(ErrMsgEncodeDocument, err)
	}

	if _, err := conn.Exec(ctx, s.upsertSQL, LinkStateDocumentID, payload); err != nil {
		return false, persistErr(ErrMsgWriteDocument, err)
	}

	logger.FromContext(ctx).Debug(LogMsgLinkStored, "entries", len(merged.Links), "created", created)
	return created, nil
}

func (s *Store) upsertLocked(ctx context.Context, conn *pgxpool.Conn, rec domain.LinkRecord) (bool, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return false, persistErr(ErrMsgBeginTransaction, err)
	}
	defer safeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, s.ensureSQL, LinkStateDocumentID); err != nil {
		return false, persistErr(ErrMsgWriteDocument, err)
	}

	doc, err := readDocument(ctx, tx, s.selectForUpdateSQL)
	if err != nil {
		return false, err
	}

	merged, created := MergeLink(*doc, rec)
	payload, err := json.Marshal(merged)
	if err != nil {
		return false, persistErr(ErrMsgEncodeDocument, err)
	}

	if _, err := tx.Exec(ctx, s.updateSQL, LinkStateDocumentID, payload); err != nil {
		return false, persistErr(ErrMsgWriteDocument, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, persistErr(ErrMsgCommit, err)
	}

	logger.FromContext(ctx).Debug(LogMsgLinkStored, "entries", len(merged.Links), "created", created, "serialized", true)
	return created, nil
}

// Load returns the whole state document. A missing document is empty.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, persistErr(ErrMsgAcquireConn, err)
	}
	defer conn.Release()

	return readDocument(ctx, conn, s.selectSQL)
}

// GetLink returns the record for userID or domain.ErrLinkNotFound.
func (s *Store) GetLink(ctx context.Context, userID string) (*domain.LinkRecord, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := doc.Find(userID)
	if i < 0 {
		return nil, domain.ErrLinkNotFound
	}
	rec := doc.Links[i].Record
	return &rec, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func readDocument(ctx context.Context, q queryRower, query string) (*Document, error) {
	var payload []byte
	err := q.QueryRow(ctx, query, LinkStateDocumentID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Document{}, nil
	}
	if err != nil {
		return nil, persistErr(ErrMsgReadDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, persistErr(ErrMsgDecodeDocument, err)
	}
	return &doc, nil
}

func safeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}

func persistErr(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistenceFailed, msg, err)
}
