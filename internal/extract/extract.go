package extract

import (
	"context"
	"time"
)

// Document is the immutable product of text extraction.
type Document struct {
	Source      string
	Text        string
	ExtractedAt time.Time
}

// Extractor turns a source file into a page-delimited text blob.
type Extractor interface {
	Extract(ctx context.Context, path string) (Document, error)
}
