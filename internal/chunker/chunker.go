package chunker

import "fmt"

// Options controls the sliding window.
type Options struct {
	Size    int // window length in characters
	Overlap int // characters shared between consecutive windows
}

const (
	DefaultSize    = 3000
	DefaultOverlap = 500
)

// Chunk is one window of document text. StartOffset counts characters,
// not bytes.
type Chunk struct {
	Index       int
	Total       int
	Text        string
	StartOffset int
}

// Split cuts text into overlapping fixed-size windows covering all of it.
// Sizes and offsets are in characters so a window never ends inside a
// multibyte rune. Consecutive chunks share exactly opts.Overlap
// characters, so the start offset advances by Size-Overlap each step; the
// final chunk may be shorter. Empty input yields zero chunks and no error.
func Split(text string, opts Options) ([]Chunk, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Overlap < 0 {
		opts.Overlap = 0
	}
	step := opts.Size - opts.Overlap
	if step <= 0 {
		return nil, fmt.Errorf("chunker: overlap %d must be smaller than size %d", opts.Overlap, opts.Size)
	}

	runes := []rune(text)
	var chunks []Chunk
	for start := 0; start < len(runes); start += step {
		end := start + opts.Size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			Index:       len(chunks),
			Text:        string(runes[start:end]),
			StartOffset: start,
		})
	}
	for i := range chunks {
		chunks[i].Total = len(chunks)
	}
	return chunks, nil
}
