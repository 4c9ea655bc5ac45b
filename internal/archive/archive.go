package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"doc-ingest/internal/llm"
)

// Event is one appended reflection.
type Event struct {
	Source    string         `json:"source"`
	Reflected llm.Reflection `json:"reflected"`
	Timestamp time.Time      `json:"timestamp"`
}

// Archive is the cumulative store of all reflections across runs. It only
// grows; nothing in this system prunes it.
type Archive struct {
	SymbolicEvents  []Event           `json:"symbolic_events"`
	DriftLogs       []json.RawMessage `json:"drift_logs"`
	ReasoningBlends []json.RawMessage `json:"reasoning_blends"`
	DreamLogs       []json.RawMessage `json:"dream_logs"`
}

// Store appends reflections to the archive and reads it back.
type Store interface {
	Append(source string, reflected llm.Reflection, ts time.Time) error
	Load() (Archive, error)
}

// FileStore keeps the archive as a single pretty-printed JSON document,
// rewritten atomically on every append. The mutex serializes writers
// within the process; the whole-file rewrite is not safe across
// processes.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Archive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append reads the current archive (defaulting to the empty shape when
// the file does not exist yet), appends one symbolic event, and rewrites
// the file. Re-appending the same source adds a second event; readers
// wanting the latest reflection for a source must take the last match.
func (s *FileStore) Append(source string, reflected llm.Reflection, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.load()
	if err != nil {
		return err
	}
	a.SymbolicEvents = append(a.SymbolicEvents, Event{Source: source, Reflected: reflected, Timestamp: ts})
	return s.write(a)
}

func (s *FileStore) load() (Archive, error) {
	a := emptyArchive()
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return a, nil
	}
	if err != nil {
		return a, fmt.Errorf("read archive: %w", err)
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return emptyArchive(), fmt.Errorf("parse archive: %w", err)
	}
	return a, nil
}

func (s *FileStore) write(a Archive) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace archive: %w", err)
	}
	return nil
}

// emptyArchive keeps all four sequences non-nil so an empty archive still
// serializes with every named sequence present.
func emptyArchive() Archive {
	return Archive{
		SymbolicEvents:  []Event{},
		DriftLogs:       []json.RawMessage{},
		ReasoningBlends: []json.RawMessage{},
		DreamLogs:       []json.RawMessage{},
	}
}
