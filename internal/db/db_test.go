// Package db tests for database connection management.
package db

import (
	"path/filepath"
	"strings"
	"testing"
)

// setupTestDB opens an in-memory database with every migration applied.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Setup(":memory:")
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		prefix  string
		memory  bool
		wantErr bool
	}{
		{"memory", ":memory:", ":memory:?", true, false},
		{"sqlite memory", "sqlite://", ":memory:?", true, false},
		{"relative", "sqlite:///data/eboard.db", "data/eboard.db?", false, false},
		{"absolute", "sqlite:////var/lib/eboard.db", "/var/lib/eboard.db?", false, false},
		{"file uri", "file:/tmp/e.db", "/tmp/e.db?", false, false},
		{"plain path", "eboard.db", "eboard.db?", false, false},
		{"empty", "  ", "", false, true},
		{"postgres", "postgres://localhost/eboard", "", false, true},
		{"other sqlite form", "sqlite:eboard.db", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, memory, err := DSN(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DSN(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.HasPrefix(dsn, tt.prefix) {
				t.Errorf("DSN(%q) = %q, want prefix %q", tt.uri, dsn, tt.prefix)
			}
			if memory != tt.memory {
				t.Errorf("DSN(%q) memory = %v, want %v", tt.uri, memory, tt.memory)
			}
			if !strings.Contains(dsn, "foreign_keys(1)") {
				t.Errorf("DSN(%q) = %q does not enable foreign keys", tt.uri, dsn)
			}
		})
	}
}

// TestOpen verifies database opening with proper configuration.
func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "eboard.db")

	db, err := Open("sqlite:///" + dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil || result != 1 {
		t.Errorf("Database query failed: %v (got %d)", err, result)
	}

	var walMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&walMode); err != nil {
		t.Errorf("Failed to check WAL mode: %v", err)
	}
	if walMode != "wal" {
		t.Errorf("WAL mode not enabled, got: %s", walMode)
	}

	var fkEnabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Errorf("Failed to check foreign keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Errorf("Foreign keys not enabled, got: %d", fkEnabled)
	}
}

// TestOpen_invalidDataDir verifies error when data directory cannot be created.
func TestOpen_invalidDataDir(t *testing.T) {
	_, err := Open("/dev/null/invalid_path/that/cannot/be/created/e.db")
	if err == nil {
		t.Error("Open() with invalid path should return error")
	}
}

func TestSetup_schema(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{
		"users", "tasks", "notes", "projects", "milestones", "events",
		"bookmarks", "items", "tags", "taskstags", "notestags",
	} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSetup_reopenIsIdempotent(t *testing.T) {
	uri := "sqlite:///" + filepath.Join(t.TempDir(), "eboard.db")

	first, err := Setup(uri)
	if err != nil {
		t.Fatalf("first Setup() failed: %v", err)
	}
	first.Close()

	second, err := Setup(uri)
	if err != nil {
		t.Fatalf("second Setup() failed: %v", err)
	}
	defer second.Close()

	var version int
	if err := second.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}
