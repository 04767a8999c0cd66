package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"video-digest/pkg/domain"
	"video-digest/pkg/llm"
	"video-digest/pkg/store"
)

// scriptedExtractor returns canned results per function name, recording the
// calls it receives.
type scriptedExtractor struct {
	results map[string]json.RawMessage
	err     error
	calls   []string
	inputs  []string
}

func (e *scriptedExtractor) Extract(_ context.Context, text, _ string, fn llm.FunctionSpec) (json.RawMessage, error) {
	e.calls = append(e.calls, fn.Name)
	e.inputs = append(e.inputs, text)
	if e.err != nil {
		return nil, e.err
	}
	raw, ok := e.results[fn.Name]
	if !ok {
		return nil, errors.New("no scripted result for " + fn.Name)
	}
	return raw, nil
}

func newTestService(ex Extractor, opts Options) *Service {
	return New(ex, store.NewSessionCache(), newMapStore(), opts)
}

func sections(n int) []domain.ChunkSummary {
	var out []domain.ChunkSummary
	for i := 0; i < n; i++ {
		out = append(out, domain.ChunkSummary{
			SectionTitle:   "Section " + string(rune('A'+i)),
			KeyPoints:      []string{"point 1", "point 2", "point 3"},
			SectionSummary: "This section covers a topic in some detail.",
		})
	}
	return out
}

func TestMerge_EmptySectionsReturnsFailedSummary(t *testing.T) {
	ex := &scriptedExtractor{}
	s := newTestService(ex, Options{})

	got := s.Merge(context.Background(), nil)

	if got.Verdict == "" {
		t.Error("failed summary must carry a verdict")
	}
	if len(got.Points) == 0 {
		t.Error("failed summary must carry points")
	}
	if got.Verdict != "Summary generation failed." {
		t.Errorf("verdict = %q", got.Verdict)
	}
	if len(ex.calls) != 0 {
		t.Errorf("no extraction calls expected for empty sections, got %v", ex.calls)
	}
}

func TestMerge_ConsolidationSuccess(t *testing.T) {
	ex := &scriptedExtractor{results: map[string]json.RawMessage{
		"create_final_summary": json.RawMessage(`{
			"title": "Consolidated",
			"points": ["a", "b"],
			"summary": "Everything in one place.",
			"noteworthy_mentions": ["someone"],
			"verdict": "Good."
		}`),
	}}
	s := newTestService(ex, Options{})

	got := s.Merge(context.Background(), sections(3))

	if got.Title != "Consolidated" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Verdict != "Good." {
		t.Errorf("verdict = %q", got.Verdict)
	}
	if len(ex.calls) != 1 || ex.calls[0] != "create_final_summary" {
		t.Errorf("calls = %v", ex.calls)
	}
	// The consolidation input is the serialized sections.
	if !strings.Contains(ex.inputs[0], "Section A") {
		t.Error("consolidation input should contain the section payload")
	}
}

func TestMerge_ConsolidationFailureReducesLocally(t *testing.T) {
	ex := &scriptedExtractor{err: errors.New("service down")}
	s := newTestService(ex, Options{})

	got := s.Merge(context.Background(), sections(3))

	if got.Title != "Section A" {
		t.Errorf("title should come from the first section, got %q", got.Title)
	}
	if len(got.Points) != 5 {
		t.Errorf("expected the first 5 key points, got %d", len(got.Points))
	}
	if got.Verdict != "Summary generation partially succeeded." {
		t.Errorf("verdict = %q", got.Verdict)
	}
	if got.NoteworthyMentions == nil || len(got.NoteworthyMentions) != 0 {
		t.Errorf("mentions = %v", got.NoteworthyMentions)
	}
}

func TestMerge_LocalReductionTruncatesSummary(t *testing.T) {
	ex := &scriptedExtractor{err: errors.New("service down")}
	s := newTestService(ex, Options{})

	long := sections(1)
	long[0].SectionSummary = strings.Repeat("x", 600)

	got := s.Merge(context.Background(), long)

	if len(got.Summary) != 500+len("...") {
		t.Errorf("summary length = %d, want 503", len(got.Summary))
	}
	if !strings.HasSuffix(got.Summary, "...") {
		t.Error("truncated summary should end with an ellipsis")
	}
}

func TestMerge_LocalReductionPlaceholderPoint(t *testing.T) {
	ex := &scriptedExtractor{err: errors.New("service down")}
	s := newTestService(ex, Options{})

	secs := sections(1)
	secs[0].KeyPoints = nil

	got := s.Merge(context.Background(), secs)

	if len(got.Points) != 1 {
		t.Fatalf("expected one placeholder point, got %v", got.Points)
	}
}
