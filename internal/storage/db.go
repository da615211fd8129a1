// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required) behind a single connection.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection.
type DB struct {
	db     *sql.DB
	dbPath string
	logger *log.Logger
}

// Option configures a DB at open time.
type Option func(*DB)

// WithLogger routes storage logs to the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *DB) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Open opens or creates a SQLite database at the given path and bootstraps
// the schema. A bootstrap failure is returned as a *SchemaError.
func Open(dbPath string, opts ...Option) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	d, err := open(dbPath, opts...)
	if err != nil {
		return nil, err
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = d.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	return d, nil
}

// OpenInMemory opens a private in-memory database. Each call yields an
// isolated store, which is what tests want.
func OpenInMemory(opts ...Option) (*DB, error) {
	return open(":memory:", opts...)
}

// OpenDefault opens the database at the default XDG data path.
func OpenDefault(opts ...Option) (*DB, error) {
	return Open(DefaultDBPath(), opts...)
}

func open(dsn string, opts ...Option) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One handle: in-memory databases are per-connection and SQLite has a
	// single writer anyway.
	db.SetMaxOpenConns(1)

	d := &DB{
		db:     db,
		dbPath: dsn,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}

	ctx := context.Background()
	if err := d.configurePragmas(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := d.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return d, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitspire")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "fitspire.db")
}

// Path returns the database file path, or ":memory:".
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for integrity and performance.
func (d *DB) configurePragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	if d.dbPath != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := d.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
