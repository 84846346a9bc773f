// Package session persists serialized traversal states between HTTP calls.
//
// A Store maps an opaque session id to the bytes produced by stepper.Marshal.
// Three implementations are provided:
//
//	MemoryStore  – process-local map, for tests and single-instance servers
//	BadgerStore  – embedded BadgerDB, survives restarts
//	SQLiteStore  – single-file SQLite database (modernc.org/sqlite, no cgo)
//
// Every store honors a TTL: a session not saved within TTL is reported as
// ErrNotFound. A zero TTL disables expiry. Badger drops expired keys itself;
// stores built by Open for the memory and sqlite drivers run a sweeper that
// purges expired entries nobody reads again.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session: not found")

// Store persists serialized runner states by session id.
// Implementations are safe for concurrent use.
type Store interface {
	// Save creates or replaces the state of id and restarts its TTL.
	Save(ctx context.Context, id string, state []byte) error

	// Load returns the state of id, or ErrNotFound.
	Load(ctx context.Context, id string) ([]byte, error)

	// Delete removes id. Deleting an unknown id returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying resources.
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Options selects and configures a Store.
type Options struct {
	Driver string
	// Path is the Badger directory or SQLite file; ignored by the memory driver.
	// An empty Path with the badger driver opens an in-memory database.
	Path string
	TTL  time.Duration
	// SweepInterval is the purge period for stores without native expiry.
	// Zero picks min(TTL, DefaultSweepInterval).
	SweepInterval time.Duration
	Logger        *slog.Logger
}

// Open constructs the store named by opts.Driver.
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory, "":
		s := NewMemoryStore(opts.TTL)
		if opts.TTL > 0 {
			s.StartSweeper(sweepInterval(opts.TTL, opts.SweepInterval), opts.Logger)
		}
		return s, nil
	case DriverBadger:
		cfg := DefaultBadgerConfig()
		if opts.Path == "" {
			cfg = InMemoryBadgerConfig()
		}
		cfg.Path = opts.Path
		cfg.TTL = opts.TTL
		cfg.Logger = opts.Logger
		return OpenBadger(cfg)
	case DriverSQLite:
		path := opts.Path
		if path == "" {
			path = ":memory:"
		}
		s, err := NewSQLiteStore(path, opts.TTL)
		if err != nil {
			return nil, err
		}
		if opts.TTL > 0 {
			s.StartSweeper(sweepInterval(opts.TTL, opts.SweepInterval), opts.Logger)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("session: unknown store driver %q", opts.Driver)
	}
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty session id", ErrNotFound)
	}

	return nil
}
