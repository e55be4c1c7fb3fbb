package world

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	return s
}

func TestSQLiteStore_SeedsOnFirstLoad(t *testing.T) {
	s := newSQLiteStore(t)

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if len(doc.EnergySpikes) != 4 || doc.GateOpen {
		t.Errorf("unexpected seed: spikes=%d gateOpen=%v", len(doc.EnergySpikes), doc.GateOpen)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := newSQLiteStore(t)

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	doc.GateOpen = true
	doc.RequestLogs = []RequestLogEntry{{Method: "GET", Path: "/health", StatusCode: 200}}
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	reloaded, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.GateOpen {
		t.Error("gateOpen not persisted")
	}
	if len(reloaded.RequestLogs) != 1 || reloaded.RequestLogs[0].Path != "/health" {
		t.Errorf("request logs not persisted: %+v", reloaded.RequestLogs)
	}
}

func TestSQLiteStore_SingleRow(t *testing.T) {
	s := newSQLiteStore(t)

	doc, _ := s.Load()
	for i := 0; i < 5; i++ {
		doc.GateOpen = !doc.GateOpen
		if err := s.Save(doc); err != nil {
			t.Fatalf("Save #%d: %v", i+1, err)
		}
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM world_state`).Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 1 {
		t.Errorf("world_state rows = %d, want 1", count)
	}
}
