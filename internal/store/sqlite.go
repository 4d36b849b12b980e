package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/caremitra/portal/pkg/logger"
)

const upsertQuery = `
	INSERT INTO collections (name, data) VALUES (?, ?)
	ON CONFLICT(name) DO UPDATE SET data = excluded.data
`

// SQLiteStore persists collections in a single key-value table of an
// embedded SQLite database.
type SQLiteStore struct {
	db  *sqlx.DB
	log *logger.Logger
}

// Open connects to the SQLite database at dsn and ensures the collections
// table exists.
func Open(dsn string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	db.SetMaxOpenConns(1)

	schema := `CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize record store: %w", err)
	}

	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, collection string, out any) error {
	var data string
	err := s.db.GetContext(ctx, &data, `SELECT data FROM collections WHERE name = ?`, collection)
	if errors.Is(err, sql.ErrNoRows) {
		zero(out)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", collection, err)
	}

	decode(collection, []byte(data), out, s.log)
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %s: %w", collection, err)
	}

	if _, err := s.db.ExecContext(ctx, upsertQuery, collection, string(data)); err != nil {
		return fmt.Errorf("failed to save collection %s: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	dbTx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin store transaction: %w", err)
	}

	if err := fn(&sqliteTx{tx: dbTx, ctx: ctx, log: s.log}); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			s.log.Error(rbErr, "failed to roll back store transaction")
		}
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit store transaction: %w", err)
	}
	return nil
}

type sqliteTx struct {
	tx  *sqlx.Tx
	ctx context.Context
	log *logger.Logger
}

func (t *sqliteTx) Load(collection string, out any) error {
	var data string
	err := t.tx.GetContext(t.ctx, &data, `SELECT data FROM collections WHERE name = ?`, collection)
	if errors.Is(err, sql.ErrNoRows) {
		zero(out)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", collection, err)
	}

	decode(collection, []byte(data), out, t.log)
	return nil
}

func (t *sqliteTx) Save(collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %s: %w", collection, err)
	}

	if _, err := t.tx.ExecContext(t.ctx, upsertQuery, collection, string(data)); err != nil {
		return fmt.Errorf("failed to save collection %s: %w", collection, err)
	}
	return nil
}

// decode unmarshals data into out, falling back to an empty collection on
// malformed content. Unmarshal can partially populate a slice before
// failing, so out is re-zeroed on error.
func decode(collection string, data []byte, out any, log *logger.Logger) {
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn("discarding corrupt collection content", "collection", collection, "error", err.Error())
		zero(out)
	}
}

func zero(out any) {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	elem := v.Elem()
	elem.Set(reflect.Zero(elem.Type()))
}
