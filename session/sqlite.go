package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps session states in a single-file SQLite database.
//
// Path ":memory:" gives a private in-memory database; the pool is capped at one
// connection so every query sees the same database.
type SQLiteStore struct {
	db    *sql.DB
	ttl   time.Duration
	now   func() time.Time
	sweep *sweeper
}

// NewSQLiteStore opens path, enables WAL mode and creates the schema.
func NewSQLiteStore(path string, ttl time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err = db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("session: %s: %w", pragma, err)
		}
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			state      BLOB NOT NULL,
			updated_at INTEGER NOT NULL,
			expires_at INTEGER
		)`
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session: create tables: %w", err)
	}

	return &SQLiteStore{db: db, ttl: ttl, now: time.Now}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, id string, state []byte) error {
	if err := validateID(id); err != nil {
		return err
	}
	now := s.now()
	var expires sql.NullInt64
	if s.ttl > 0 {
		expires = sql.NullInt64{Int64: now.Add(s.ttl).UnixNano(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, state, updated_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at`,
		id, state, now.UnixNano(), expires)
	if err != nil {
		return fmt.Errorf("session: sqlite save %q: %w", id, err)
	}

	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, id string) ([]byte, error) {
	var state []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM sessions WHERE id = ? AND (expires_at IS NULL OR expires_at > ?)`,
		id, s.now().UnixNano()).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: sqlite load %q: %w", id, err)
	}

	return state, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ? AND (expires_at IS NULL OR expires_at > ?)`,
		id, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("session: sqlite delete %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("session: sqlite delete %q: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Purge removes expired rows and reports how many were deleted.
func (s *SQLiteStore) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("session: sqlite purge: %w", err)
	}

	return res.RowsAffected()
}

// StartSweeper runs Purge every interval until Close.
// It is a no-op when the store has no TTL or a sweeper is already running.
func (s *SQLiteStore) StartSweeper(interval time.Duration, logger *slog.Logger) {
	if s.ttl <= 0 || interval <= 0 || s.sweep != nil {
		return
	}
	s.sweep = startSweeper(s, interval, logger)
}

// Close stops the sweeper and closes the database.
func (s *SQLiteStore) Close() error {
	s.sweep.close()
	s.sweep = nil

	return s.db.Close()
}
