package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the persistence contract for the world document. Load and
// Save always move the whole document; there are no partial reads.
//
// Implementations do not coordinate concurrent writers. A
// load-mutate-save cycle is a read-modify-write race by design
// (single-process assumption, see package doc).
type Store interface {
	Load() (*Document, error)
	Save(*Document) error
}

// File permission constants for the file-backed store.
const (
	storeDirPermissions  = 0750
	storeFilePermissions = 0600
)

// FileStore persists the document as one pretty-printed JSON file,
// rewritten wholesale on every save.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path. The file
// is created from the seed on first Load.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and parses the document. If the backing file does not
// exist it is initialised from Seed() and the seed is written back
// before returning.
func (s *FileStore) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := Seed()
		if saveErr := s.Save(doc); saveErr != nil {
			return nil, fmt.Errorf("initialising state file: %w", saveErr)
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}
	return &doc, nil
}

// Save serialises and overwrites the backing file.
func (s *FileStore) Save(doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), storeDirPermissions); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialising state: %w", err)
	}

	if err := os.WriteFile(s.path, data, storeFilePermissions); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}

// MemoryStore keeps the document in process memory. Used by tests and
// by ephemeral playground runs (store.backend: memory). Load returns a
// deep copy so callers cannot mutate shared state behind Save's back.
type MemoryStore struct {
	mu  sync.Mutex
	doc []byte
}

// NewMemoryStore creates a memory store initialised from the seed.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	//nolint:errcheck // seed marshals cleanly by construction
	s.doc, _ = json.Marshal(Seed())
	return s
}

// Load returns a copy of the current document.
func (s *MemoryStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc Document
	if err := json.Unmarshal(s.doc, &doc); err != nil {
		return nil, fmt.Errorf("decoding in-memory state: %w", err)
	}
	return &doc, nil
}

// Save replaces the current document.
func (s *MemoryStore) Save(doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding in-memory state: %w", err)
	}

	s.mu.Lock()
	s.doc = data
	s.mu.Unlock()
	return nil
}
