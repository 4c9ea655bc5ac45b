package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// SummaryRecord is the per-chunk outcome of the provider chain. Provider
// names which provider's answer was kept.
type SummaryRecord struct {
	ChunkIndex int
	Provider   string
	Text       string
}

// Chain sequences providers for one chunk: try the primary, and on any
// provider error try the fallback once. The fallback's answer is kept
// verbatim; if it fails too, the error is embedded in the record text
// instead of being returned. Exactly one record comes out per chunk.
type Chain struct {
	Primary  Summarizer
	Fallback Summarizer
	Log      *slog.Logger
}

func NewChain(primary, fallback Summarizer, log *slog.Logger) *Chain {
	return &Chain{Primary: primary, Fallback: fallback, Log: log}
}

func (c *Chain) Summarize(ctx context.Context, text string, index, total int) SummaryRecord {
	c.Log.Info("summarizing chunk", "chunk", index+1, "total", total, "provider", c.Primary.Name())

	out, err := c.Primary.SummarizeChunk(ctx, text, index, total)
	if err == nil {
		return SummaryRecord{ChunkIndex: index, Provider: c.Primary.Name(), Text: out}
	}
	c.Log.Warn("primary provider failed; falling back",
		"chunk", index+1, "fallback", c.Fallback.Name(), "err", err)

	out, err = c.Fallback.SummarizeChunk(ctx, text, index, total)
	if err != nil {
		return SummaryRecord{ChunkIndex: index, Provider: c.Fallback.Name(), Text: fmt.Sprintf("[ERROR: %v]", err)}
	}
	return SummaryRecord{ChunkIndex: index, Provider: c.Fallback.Name(), Text: out}
}
