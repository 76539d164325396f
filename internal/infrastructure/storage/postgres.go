package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lending-desk/internal/infrastructure/monitoring"
	"lending-desk/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const notifyChannel = "kv_blobs_changed"

// DBPool abstracts the pgx pool surface the store needs, so tests can
// substitute pgxmock.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps every key as a row in kv_blobs and broadcasts
// writes over LISTEN/NOTIFY so other instances can replace their
// in-memory state.
type PostgresStore struct {
	db      DBPool
	connStr string
	logger  *slog.Logger
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db DBPool, connStr string, logger *slog.Logger) *PostgresStore {
	if db == nil {
		panic("DBPool cannot be nil for PostgresStore")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PostgresStore{
		db:      db,
		connStr: connStr,
		logger:  logger.With("component", "PostgresStore"),
	}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS kv_blobs (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL DEFAULT now())`)
	if err != nil {
		return fmt.Errorf("%w: creating kv_blobs table: %w", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM kv_blobs WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: key %q", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: reading key %q: %w", apperrors.ErrStorage, key, err)
	}
	return []byte(value), nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	_, err := s.db.Exec(ctx,
		`INSERT INTO kv_blobs (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, string(value))
	status := "success"
	if err != nil {
		status = "failure"
	}
	monitoring.RecordStoreWrite(key, status, time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: writing key %q: %w", apperrors.ErrStorage, key, err)
	}
	if _, err := s.db.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, key); err != nil {
		// The write itself succeeded; peers will catch up on their next load.
		s.logger.Warn("Failed to notify peers of blob change", "key", key, "error", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM kv_blobs WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("%w: removing key %q: %w", apperrors.ErrStorage, key, err)
	}
	return nil
}

// Subscribe opens a dedicated connection, LISTENs for change
// notifications and re-reads the key whenever a peer writes it.
func (s *PostgresStore) Subscribe(ctx context.Context, key string) (<-chan []byte, error) {
	conn, err := pgx.Connect(ctx, s.connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open listen connection: %w", apperrors.ErrStorage, err)
	}
	if _, err := conn.Exec(ctx, `LISTEN `+notifyChannel); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("%w: LISTEN failed: %w", apperrors.ErrStorage, err)
	}

	out := make(chan []byte, 1)
	go func() {
		defer close(out)
		defer conn.Close(context.Background())
		for {
			notification, err := conn.WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Warn("Listen connection lost", "error", err)
				}
				return
			}
			if notification.Payload != key {
				continue
			}
			data, err := s.Get(ctx, key)
			if err != nil {
				s.logger.Warn("Failed to read changed blob", "key", key, "error", err)
				continue
			}
			select {
			case out <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
