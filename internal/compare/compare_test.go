package compare

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-ingest/internal/llm"
	"doc-ingest/internal/result"
)

func entryWith(summary string, processor string, r llm.Reflection) result.Entry {
	return result.Entry{
		Source:          "manual.pdf",
		Summary:         summary,
		Processor:       processor,
		ValonReflection: r,
	}
}

func TestDiffEqualSummaryLengthsNotFlagged(t *testing.T) {
	baseline := entryWith("aaaa", "mistral", llm.Reflection{})
	candidate := entryWith("bbbb", "gemini", llm.Reflection{})

	report := Diff(baseline, candidate)

	require.NotEmpty(t, report.Fields)
	lengths := report.Fields[0]
	assert.Equal(t, "summary length", lengths.Field)
	assert.True(t, lengths.Equal)
	assert.Equal(t, "4", lengths.Baseline)
	assert.Equal(t, "4", lengths.Candidate)
}

func TestDiffSummaryLengthCountsCharacters(t *testing.T) {
	// Same character count on both sides despite different byte lengths.
	baseline := entryWith("éééé", "mistral", llm.Reflection{})
	candidate := entryWith("abcd", "gemini", llm.Reflection{})

	report := Diff(baseline, candidate)

	lengths := report.Fields[0]
	assert.True(t, lengths.Equal)
	assert.Equal(t, "4", lengths.Baseline)
	assert.Equal(t, "4", lengths.Candidate)
}

func TestDiffFlagsUnequalFields(t *testing.T) {
	baseline := entryWith("short", "mistral", llm.Reflection{
		SymbolicTerms: []string{"engine"},
		Emotions:      []string{"calm"},
	})
	candidate := entryWith("a much longer summary", "gemini", llm.Reflection{
		SymbolicTerms: []string{"engine", "piston"},
		Emotions:      []string{"calm"},
	})

	report := Diff(baseline, candidate)

	assert.Equal(t, "mistral", report.BaselineProcessor)
	assert.Equal(t, "gemini", report.CandidateProcessor)

	byField := map[string]FieldDiff{}
	for _, f := range report.Fields {
		byField[f.Field] = f
	}
	assert.False(t, byField["summary length"].Equal)
	assert.False(t, byField["symbolic terms"].Equal)
	assert.True(t, byField["emotions"].Equal)
}

func TestDiffDoesNotMutateEntries(t *testing.T) {
	baseline := entryWith("s", "mistral", llm.Reflection{SymbolicTerms: []string{"a"}})
	candidate := entryWith("s", "gemini", llm.Reflection{SymbolicTerms: []string{"b"}})

	_ = Diff(baseline, candidate)

	assert.Equal(t, []string{"a"}, baseline.ValonReflection.SymbolicTerms)
	assert.Equal(t, []string{"b"}, candidate.ValonReflection.SymbolicTerms)
}

func TestRender(t *testing.T) {
	report := Diff(
		entryWith("aa", "mistral", llm.Reflection{}),
		entryWith("aaaa", "gemini", llm.Reflection{}),
	)

	var buf bytes.Buffer
	report.Render(&buf)
	out := buf.String()

	assert.Contains(t, out, "COMPARISON RESULTS")
	assert.Contains(t, out, "Baseline processor: mistral")
	assert.Contains(t, out, "Candidate processor: gemini")
	assert.True(t, strings.Contains(out, "[!] summary length"), "unequal lengths should be flagged: %s", out)
}

func TestBaselinePath(t *testing.T) {
	tests := []struct {
		candidate string
		processor string
		expected  string
	}{
		{"memory_vault/modi/manual_gemini.json", "gemini", "memory_vault/modi/manual.json"},
		{"manual_gemini.json", "gemini", "manual.json"},
		{"manual.json", "gemini", "manual.json"},
		{"manual_mistral.json", "gemini", "manual_mistral.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, BaselinePath(tt.candidate, tt.processor))
	}
}
