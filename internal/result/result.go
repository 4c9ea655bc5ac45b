package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"doc-ingest/internal/llm"
)

// ContentSampleLen bounds the content excerpt stored on each entry, in
// characters.
const ContentSampleLen = 5000

// Entry is the persisted unit of work for one processed document. It is
// immutable after write except for the optional HybridUID link, which is
// filled in before persisting when memory linking is enabled.
type Entry struct {
	Source            string         `json:"source"`
	Timestamp         time.Time      `json:"timestamp"`
	ContentSample     string         `json:"content_sample"`
	FullContentLength int            `json:"full_content_length"`
	Summary           string         `json:"summary"`
	ValonReflection   llm.Reflection `json:"valon_reflection"`
	Processor         string         `json:"processor"`
	HybridUID         string         `json:"hybrid_uid,omitempty"`
}

// ReflectionFile is the reflection-only companion document.
type ReflectionFile struct {
	Summary    string         `json:"summary"`
	Reflection llm.Reflection `json:"reflection"`
}

// NewEntry builds an entry from extracted content and pipeline outputs.
// The sample and the recorded length count characters, never splitting a
// multibyte rune.
func NewEntry(source, content, summary string, reflection llm.Reflection, processor string, ts time.Time) Entry {
	sample := content
	if runes := []rune(content); len(runes) > ContentSampleLen {
		sample = string(runes[:ContentSampleLen])
	}
	return Entry{
		Source:            source,
		Timestamp:         ts,
		ContentSample:     sample,
		FullContentLength: utf8.RuneCountInString(content),
		Summary:           summary,
		ValonReflection:   reflection,
		Processor:         processor,
	}
}

// Writer persists entries and reflection files under the vault layout:
// <vault>/modi/<base>_<processor>.json for entries and
// <vault>/valon/<base>_<processor>.json for reflection files.
type Writer struct {
	vaultDir string
}

func NewWriter(vaultDir string) *Writer { return &Writer{vaultDir: vaultDir} }

// EntryPath returns where the entry for source would be written.
func (w *Writer) EntryPath(source, processor string) string {
	return filepath.Join(w.vaultDir, "modi", fileBase(source)+"_"+processor+".json")
}

// ReflectionPath returns where the reflection file for source would be written.
func (w *Writer) ReflectionPath(source, processor string) string {
	return filepath.Join(w.vaultDir, "valon", fileBase(source)+"_"+processor+".json")
}

func (w *Writer) WriteEntry(e Entry) (string, error) {
	path := w.EntryPath(e.Source, e.Processor)
	if err := writeJSON(path, e); err != nil {
		return "", err
	}
	return path, nil
}

func (w *Writer) WriteReflection(source, processor string, f ReflectionFile) (string, error) {
	path := w.ReflectionPath(source, processor)
	if err := writeJSON(path, f); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a previously persisted entry.
func Load(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("parse result %s: %w", path, err)
	}
	return e, nil
}

func fileBase(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source))
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
