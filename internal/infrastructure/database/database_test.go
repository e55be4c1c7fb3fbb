package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hawkins.db")

	db, err := Open(Config{Path: path, WALMode: true, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
}

func TestHealthCheck(t *testing.T) {
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "hawkins.db"), BusyTimeout: 5})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error: %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "hawkins.db"), BusyTimeout: 5})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Errorf("first Close() error: %v", err)
	}
	// sql.DB.Close is safe to call twice.
	if err := db.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
