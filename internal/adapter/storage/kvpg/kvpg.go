package kvpg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/leporo/sqlf"

	"maptrack/internal/adapter/storage"
)

const table = "kv_entries"

// Store is the Postgres key-value backend, for installs that already run a
// database and want the workout log to live there instead of a local file.
type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, storage.InternalError(err)
	}

	schema := `CREATE TABLE IF NOT EXISTS ` + table + ` (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, errors.Join(storage.InternalError(err), db.Close())
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	q := sqlf.From(table).
		Select("value").To(&value).
		Where("key = ?", key)

	if err := q.QueryRowAndClose(ctx, s.db); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", storage.ErrKeyNotFound, key)
		}
		return nil, storage.InternalError(err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	q := sqlf.InsertInto(table).
		Set("key", key).
		Set("value", value).
		Clause("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()")

	if _, err := q.ExecAndClose(ctx, s.db); err != nil {
		if outOfSpace(err) {
			return storage.WriteError(err)
		}
		return storage.InternalError(err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	q := sqlf.DeleteFrom(table).Where("key = ?", key)

	if _, err := q.ExecAndClose(ctx, s.db); err != nil {
		return storage.InternalError(err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// outOfSpace reports whether the server refused the write for resource
// reasons (class 53), the Postgres shape of a quota failure.
func outOfSpace(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgerrcode.IsInsufficientResources(pgErr.Code)
}
