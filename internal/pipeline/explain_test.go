package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"diagsynth/internal/driver"
)

const lintDoc = `
files:
  - path: b.js
    content: "if (x) {}\n"
facts:
  - kind: lint
    rule: sketchy-null
    detail: Sketchy null check.
    reason: {loc: {file: b.js, start: 4, end: 5}, desc: {kind: identifier, name: x}}
`

func writeDocs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"ok.facts.yaml":        lintDoc,
		"sub/bad.facts.yaml":   "facts: {",
		"sub/ignored.yaml.txt": lintDoc,
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestPlan(t *testing.T) {
	dir := writeDocs(t)
	base, files, display, err := Plan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if base != dir || len(files) != 2 {
		t.Fatalf("base=%q files=%v", base, files)
	}
	if want := []string{"ok.facts.yaml", "sub/bad.facts.yaml"}; !reflect.DeepEqual(display, want) {
		t.Fatalf("display = %v, want %v", display, want)
	}

	_, _, display, err = Plan(filepath.Join(dir, "sub", "bad.facts.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"bad.facts.yaml"}; !reflect.DeepEqual(display, want) {
		t.Fatalf("single display = %v", display)
	}
}

func TestRunProgress(t *testing.T) {
	dir := writeDocs(t)
	events := make(chan Event, 64)
	observed := 0
	res, err := Run(context.Background(), &Request{
		Target:   dir,
		Options:  driver.Options{Jobs: 2, Observer: func(driver.PhaseEvent) { observed++ }},
		Progress: ChannelSink{Ch: events},
	})
	close(events)
	if err != nil {
		t.Fatal(err)
	}
	if observed == 0 {
		t.Fatal("caller observer not chained")
	}

	var got []Event
	for ev := range events {
		got = append(got, ev)
	}
	if len(got) < 2 || got[0].Status != StatusQueued || got[1].Status != StatusQueued {
		t.Fatalf("queued events must come first: %+v", got)
	}
	final := map[string]Status{}
	for _, ev := range got {
		if ev.File != "" {
			final[ev.File] = ev.Status
		}
	}
	want := map[string]Status{"ok.facts.yaml": StatusDone, "sub/bad.facts.yaml": StatusError}
	if !reflect.DeepEqual(final, want) {
		t.Fatalf("final statuses = %v, want %v", final, want)
	}
	if !res.Timings.Has(StageDecode) || !res.Timings.Has(StageRender) {
		t.Fatalf("timings = %+v", res.Timings)
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("diagnostics = %d", res.Bag.Len())
	}
}

func TestRunCachedStatus(t *testing.T) {
	dir := writeDocs(t)
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	req := &Request{Target: filepath.Join(dir, "ok.facts.yaml"), Options: driver.Options{Cache: cache}}
	if _, err := Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 16)
	req.Progress = ChannelSink{Ch: events}
	if _, err := Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	close(events)
	var last Event
	for ev := range events {
		last = ev
	}
	if last.Status != StatusCached {
		t.Fatalf("last event = %+v", last)
	}
}

func TestRunMissingTarget(t *testing.T) {
	if _, err := Run(context.Background(), &Request{Target: filepath.Join(t.TempDir(), "none")}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil request")
	}
}
