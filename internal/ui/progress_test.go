package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"diagsynth/internal/pipeline"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.facts.yaml", 40, "short.facts.yaml"},
		{"a/very/long/path/to/doc.facts.yaml", 12, "a/very..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
	// wide runes count by display width
	if got := truncate("日本語のファイル.facts.yaml", 10); runewidth.StringWidth(got) > 10 {
		t.Errorf("truncated width %d > 10: %q", runewidth.StringWidth(got), got)
	}
}

func TestApplyEvents(t *testing.T) {
	m := NewProgressModel("explain", []string{"a.facts.yaml", "b.facts.yaml"}, nil).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.facts.yaml", Stage: pipeline.StageRender, Status: pipeline.StatusWorking})
	if m.items[0].status != "rendering" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	if got := m.percent(); got != 0.3 {
		t.Fatalf("percent = %v", got)
	}

	m.applyEvent(pipeline.Event{File: "a.facts.yaml", Stage: pipeline.StageRender, Status: pipeline.StatusCached})
	m.applyEvent(pipeline.Event{File: "b.facts.yaml", Stage: pipeline.StageDecode, Status: pipeline.StatusError, Err: errors.New("bad")})
	// late events for a finished document are ignored
	m.applyEvent(pipeline.Event{File: "b.facts.yaml", Stage: pipeline.StageResolve, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: "unknown", Status: pipeline.StatusDone})

	if m.items[0].status != "cached" || m.items[1].status != "error" {
		t.Fatalf("items = %+v", m.items)
	}
	if m.percent() != 1 || m.failures != 1 {
		t.Fatalf("percent=%v failures=%d", m.percent(), m.failures)
	}

	m.done = true
	view := m.View()
	for _, want := range []string{"done: explain, 1 failed", "a.facts.yaml", "b.facts.yaml"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBatchStageLabel(t *testing.T) {
	m := NewProgressModel("explain", []string{"a"}, nil).(*progressModel)
	m.applyEvent(pipeline.Event{Stage: pipeline.StageResolve, Status: pipeline.StatusWorking})
	if m.stageLabel != "resolving" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
}
