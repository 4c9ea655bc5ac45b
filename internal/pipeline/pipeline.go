package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doc-ingest/internal/archive"
	"doc-ingest/internal/chunker"
	"doc-ingest/internal/entropy"
	"doc-ingest/internal/extract"
	"doc-ingest/internal/llm"
	"doc-ingest/internal/memory"
	"doc-ingest/internal/result"
)

// State tracks where a document is in its run through the pipeline.
type State int

const (
	StateIdle State = iota
	StateExtracting
	StateChunking
	StateSummarizing
	StateReflecting
	StatePersisting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExtracting:
		return "extracting"
	case StateChunking:
		return "chunking"
	case StateSummarizing:
		return "summarizing"
	case StateReflecting:
		return "reflecting"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options holds per-run pipeline parameters.
type Options struct {
	ChunkSize          int
	ChunkOverlap       int
	ReflectionMaxChars int
	Processor          string
	Link               bool
}

// Orchestrator runs each document through extract, chunk, summarize,
// reflect, persist. Documents go through strictly sequential transitions;
// the archive is the only state shared between them.
type Orchestrator struct {
	Extractor extract.Extractor
	Chain     *llm.Chain
	Reflector llm.Reflector
	Archive   archive.Store
	Errors    *entropy.Log
	Results   *result.Writer
	Memory    memory.Linker
	Log       *slog.Logger
	Opts      Options
}

// ProcessFile runs one document end to end. Extraction failure is
// terminal for the document: it is logged to the error log and nothing is
// written. Provider failures during summarization or reflection degrade
// instead of aborting.
func (o *Orchestrator) ProcessFile(ctx context.Context, path string) error {
	source := filepath.Base(path)
	log := o.Log.With("source", source)
	log.Info("processing document", "state", StateExtracting)

	doc, err := o.Extractor.Extract(ctx, path)
	if err != nil {
		log.Error("text extraction failed", "state", StateFailed, "err", err)
		if lerr := o.Errors.Append(source, "Failed to extract text", time.Now()); lerr != nil {
			log.Error("could not record extraction failure", "err", lerr)
		}
		return fmt.Errorf("extract %s: %w", source, err)
	}

	log.Info("chunking content", "state", StateChunking, "chars", len(doc.Text))
	chunks, err := chunker.Split(doc.Text, chunker.Options{Size: o.Opts.ChunkSize, Overlap: o.Opts.ChunkOverlap})
	if err != nil {
		return fmt.Errorf("chunk %s: %w", source, err)
	}

	log.Info("summarizing chunks", "state", StateSummarizing, "chunks", len(chunks))
	summary := o.summarize(ctx, chunks)

	log.Info("reflecting on document", "state", StateReflecting)
	reflection := o.reflect(ctx, doc.Text, log)

	log.Info("persisting results", "state", StatePersisting)
	entry := result.NewEntry(source, doc.Text, summary, reflection, o.Opts.Processor, time.Now())

	if o.Opts.Link {
		if uid, linked := o.Memory.Link(entry); linked {
			entry.HybridUID = uid
			log.Info("linked into hybrid memory", "uid", uid)
		}
	}

	entryPath, err := o.Results.WriteEntry(entry)
	if err != nil {
		return fmt.Errorf("persist %s: %w", source, err)
	}
	if err := o.Archive.Append(source, reflection, time.Now()); err != nil {
		// The entry is already on disk; a failed archive update does not
		// undo the document.
		log.Error("archive update failed", "err", err)
	}
	if _, err := o.Results.WriteReflection(source, o.Opts.Processor, result.ReflectionFile{Summary: summary, Reflection: reflection}); err != nil {
		return fmt.Errorf("persist reflection %s: %w", source, err)
	}

	log.Info("document processed", "state", StateDone, "entry", entryPath)
	return nil
}

// ProcessDirectory processes every PDF in dir in directory-listing order.
// One document's failure never aborts the batch.
func (o *Orchestrator) ProcessDirectory(ctx context.Context, dir string) (processed, failed int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("read source dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		if err := o.ProcessFile(ctx, filepath.Join(dir, e.Name())); err != nil {
			o.Log.Error("document failed", "source", e.Name(), "err", err)
			failed++
			continue
		}
		processed++
	}
	o.Log.Info("batch complete", "processed", processed, "failed", failed)
	return processed, failed, nil
}

// summarize joins the per-chunk records into the document summary. Zero
// chunks mean there is nothing to summarize, which is not an error.
func (o *Orchestrator) summarize(ctx context.Context, chunks []chunker.Chunk) string {
	if len(chunks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		rec := o.Chain.Summarize(ctx, ch.Text, ch.Index, ch.Total)
		parts = append(parts, fmt.Sprintf("--- Chunk %d ---\n%s", ch.Index+1, strings.TrimSpace(rec.Text)))
	}
	return strings.Join(parts, "\n\n")
}

// reflect sends at most ReflectionMaxChars characters of the document to
// the reflector. Content past the cap is not reflected upon. Empty text
// means there is nothing to reflect on, and a reflector failure degrades
// to the zero-value reflection, so persistence never blocks on either.
func (o *Orchestrator) reflect(ctx context.Context, text string, log *slog.Logger) llm.Reflection {
	if text == "" {
		return llm.Reflection{}
	}
	if o.Opts.ReflectionMaxChars > 0 {
		if runes := []rune(text); len(runes) > o.Opts.ReflectionMaxChars {
			text = string(runes[:o.Opts.ReflectionMaxChars])
		}
	}
	reflection, err := o.Reflector.Reflect(ctx, text)
	if err != nil {
		log.Warn("reflection failed; using empty reflection", "err", err)
		return llm.Reflection{}
	}
	return reflection
}
