// Package db provides database connection management and operations.
package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB with e-board specific configuration.
type DB struct {
	*sql.DB
}

// connParams are applied by the driver to every new connection:
// foreign keys for cascades, a busy timeout, and IMMEDIATE transactions
// so that writers serialize at BEGIN instead of failing at COMMIT.
const connParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// DSN converts a DATABASE_URI into a modernc sqlite data source name.
// Accepted forms: "sqlite:///path", "sqlite://" (memory), "file:path",
// ":memory:" and a plain file path.
func DSN(uri string) (dsn string, memory bool, err error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return "", false, fmt.Errorf("empty database uri")
	case uri == ":memory:" || uri == "sqlite://" || uri == "sqlite:///:memory:":
		return ":memory:?" + connParams, true, nil
	case strings.HasPrefix(uri, "sqlite:///"):
		// Three slashes mean a relative path, four an absolute one.
		uri = strings.TrimPrefix(uri, "sqlite:///")
	case strings.HasPrefix(uri, "sqlite:"):
		return "", false, fmt.Errorf("unsupported database uri %q", uri)
	case strings.HasPrefix(uri, "file:"):
		u, perr := url.Parse(uri)
		if perr != nil {
			return "", false, fmt.Errorf("invalid database uri %q: %w", uri, perr)
		}
		uri = u.Opaque
		if uri == "" {
			uri = u.Path
		}
	case strings.Contains(uri, "://"):
		return "", false, fmt.Errorf("unsupported database scheme in %q", uri)
	}
	if uri == "" {
		return "", false, fmt.Errorf("database uri has no path")
	}
	return uri + "?" + connParams + "&_pragma=journal_mode(WAL)", false, nil
}

// Open opens the database named by a DATABASE_URI.
// File databases get their directory created and run in WAL mode.
func Open(uri string) (*DB, error) {
	dsn, memory, err := DSN(uri)
	if err != nil {
		return nil, err
	}

	if !memory {
		path := dsn[:strings.IndexByte(dsn, '?')]
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers, and an in-memory database
	// lives only as long as its single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{db}, nil
}

// Setup opens the database and applies every pending migration.
func Setup(uri string) (*DB, error) {
	database, err := Open(uri)
	if err != nil {
		return nil, err
	}
	migrator := NewMigrator(database.DB, Migrations)
	if err := migrator.Initialize(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	if err := migrator.Up(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
