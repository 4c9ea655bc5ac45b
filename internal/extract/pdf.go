package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// PDF extracts plain text from PDF files page by page. Each non-empty
// page is delimited by a "--- Page N ---" marker so page boundaries
// survive into the text blob.
type PDF struct{}

func NewPDF() *PDF { return &PDF{} }

func (p *PDF) Extract(ctx context.Context, path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n%s\n", i, text)
	}

	return Document{
		Source:      filepath.Base(path),
		Text:        b.String(),
		ExtractedAt: time.Now(),
	}, nil
}
