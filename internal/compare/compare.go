package compare

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"doc-ingest/internal/result"
)

// FieldDiff is one compared field with both values side by side.
type FieldDiff struct {
	Field     string
	Baseline  string
	Candidate string
	Equal     bool
}

// Report is the outcome of comparing two result entries.
type Report struct {
	BaselineProcessor  string
	CandidateProcessor string
	Fields             []FieldDiff
}

// Diff reports field-level differences between two entries: summary
// length, reflection symbolic terms, and reflection emotions. It is pure
// reporting and never mutates either entry.
func Diff(baseline, candidate result.Entry) Report {
	r := Report{
		BaselineProcessor:  baseline.Processor,
		CandidateProcessor: candidate.Processor,
	}
	blen := utf8.RuneCountInString(baseline.Summary)
	clen := utf8.RuneCountInString(candidate.Summary)
	r.Fields = append(r.Fields, FieldDiff{
		Field:     "summary length",
		Baseline:  strconv.Itoa(blen),
		Candidate: strconv.Itoa(clen),
		Equal:     blen == clen,
	})
	r.Fields = append(r.Fields,
		diffList("symbolic terms", baseline.ValonReflection.SymbolicTerms, candidate.ValonReflection.SymbolicTerms),
		diffList("emotions", baseline.ValonReflection.Emotions, candidate.ValonReflection.Emotions),
	)
	return r
}

func diffList(field string, baseline, candidate []string) FieldDiff {
	b, c := joinList(baseline), joinList(candidate)
	return FieldDiff{Field: field, Baseline: b, Candidate: c, Equal: b == c}
}

func joinList(v []string) string {
	if len(v) == 0 {
		return "(none)"
	}
	return strings.Join(v, ", ")
}

// Render writes the report as a human-readable side-by-side block.
// Unequal fields are marked with "!".
func (r Report) Render(w io.Writer) {
	fmt.Fprintln(w, "=== COMPARISON RESULTS ===")
	fmt.Fprintf(w, "Baseline processor: %s\n", r.BaselineProcessor)
	fmt.Fprintf(w, "Candidate processor: %s\n", r.CandidateProcessor)
	for _, f := range r.Fields {
		marker := "="
		if !f.Equal {
			marker = "!"
		}
		fmt.Fprintf(w, "[%s] %s - baseline: %s, candidate: %s\n", marker, f.Field, f.Baseline, f.Candidate)
	}
}

// BaselinePath derives the baseline file for a candidate by stripping the
// processor suffix: report_gemini.json becomes report.json. A candidate
// without the suffix is returned unchanged.
func BaselinePath(candidate, processor string) string {
	suffix := "_" + processor + ".json"
	if strings.HasSuffix(candidate, suffix) {
		return strings.TrimSuffix(candidate, suffix) + ".json"
	}
	return candidate
}
