package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"doc-ingest/internal/result"
)

// Linker connects a result entry to the hybrid memory layer.
type Linker interface {
	// Link stores a memory node for the entry and returns its uid.
	// linked is false when no memory layer is available.
	Link(entry result.Entry) (uid string, linked bool)
}

// Noop is used when the memory layer is absent; linking silently does
// nothing.
type Noop struct{}

func (Noop) Link(result.Entry) (string, bool) { return "", false }

// NodeStore writes one JSON node per linked entry into a directory.
type NodeStore struct {
	dir string
}

func NewNodeStore(dir string) *NodeStore { return &NodeStore{dir: dir} }

type node struct {
	UID       string       `json:"uid"`
	Source    string       `json:"source"`
	Processor string       `json:"processor"`
	Entry     result.Entry `json:"entry"`
}

// Link assigns a fresh uid and persists the node. A failed write degrades
// to "not linked" rather than failing the document.
func (s *NodeStore) Link(entry result.Entry) (string, bool) {
	uid := uuid.NewString()
	data, err := json.MarshalIndent(node{
		UID:       uid,
		Source:    entry.Source,
		Processor: entry.Processor,
		Entry:     entry,
	}, "", "  ")
	if err != nil {
		return "", false
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", false
	}
	path := filepath.Join(s.dir, fmt.Sprintf("node_%s.json", uid))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", false
	}
	return uid, true
}
