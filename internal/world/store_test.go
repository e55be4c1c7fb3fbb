package world

import (
	"os"
	"path/filepath"
	"testing"
)

// Store backends share one behavioural contract; these tests run the
// file and memory implementations through it. The sqlite backend has
// its own file (sqlite_test.go) because it needs a driver.
//
// None of the backends coordinate concurrent writers: the
// load-mutate-save cycle is a documented read-modify-write race under
// the single-process assumption, so no test exercises parallel writes.

func TestFileStore_SeedsOnFirstLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s := NewFileStore(path)

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if len(doc.Monsters) != 1 || doc.Monsters[0].Name != "Demogorgon" {
		t.Errorf("seed monsters = %+v", doc.Monsters)
	}
	if len(doc.EnergySpikes) != 4 {
		t.Errorf("seed spikes = %d, want 4", len(doc.EnergySpikes))
	}
	if len(doc.Inventory) != 4 {
		t.Errorf("seed inventory = %d, want 4", len(doc.Inventory))
	}
	if doc.GateOpen {
		t.Error("seed gate should be closed")
	}

	// The seed must be written back before the first read returns.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("seed file not written: %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "db.json"))

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	doc.GateOpen = true
	doc.Monsters[0].Health = 42
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
	if reloaded.Monsters[0].Health != 42 {
		t.Errorf("health = %d, want 42", reloaded.Monsters[0].Health)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(); err == nil {
		t.Error("expected error for corrupt state file")
	}
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	s := NewMemoryStore()

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	doc.GateOpen = true // mutate the copy without saving

	fresh, err := s.Load()
	if err != nil {
		t.Fatalf("second Load(): %v", err)
	}
	if fresh.GateOpen {
		t.Error("mutating a loaded copy must not affect the store")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	doc, _ := s.Load()
	doc.Inventory[0].Quantity = 99
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	reloaded, _ := s.Load()
	if reloaded.Inventory[0].Quantity != 99 {
		t.Errorf("quantity = %d, want 99", reloaded.Inventory[0].Quantity)
	}
}
