package entropy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Record is one logged processing failure.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Reason    string    `json:"reason"`
	Flag      string    `json:"flag"`
}

const processingErrorFlag = "processing_error"

// Log appends failure records to processing_errors.json in dir, using the
// same read-append-rewrite shape as the archive.
type Log struct {
	path string
	mu   sync.Mutex
}

func NewLog(dir string) *Log {
	return &Log{path: filepath.Join(dir, "processing_errors.json")}
}

// Path returns the location of the error log file.
func (l *Log) Path() string { return l.path }

// Append records a processing failure for source.
func (l *Log) Append(source, reason string, ts time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := []Record{}
	data, err := os.ReadFile(l.path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return fmt.Errorf("read error log: %w", err)
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("parse error log: %w", err)
		}
	}
	records = append(records, Record{Timestamp: ts, Source: source, Reason: reason, Flag: processingErrorFlag})

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal error log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("write error log: %w", err)
	}
	return os.Rename(tmp, l.path)
}
