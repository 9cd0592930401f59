// Package pipeline runs an explain batch and turns driver phase boundaries into
// per-document progress events.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"diagsynth/internal/driver"
)

// Request configures one explain run.
type Request struct {
	// Target is a fact document or a directory of them.
	Target   string
	Options  driver.Options
	Progress ProgressSink
}

type Result struct {
	*driver.Result
	Timings Timings
	// Files are the display names, in processing order.
	Files []string
}

// Plan lists the documents Run will process and the names progress output uses.
func Plan(target string) (baseDir string, files []string, display []string, err error) {
	st, err := os.Stat(target)
	if err != nil {
		return "", nil, nil, err
	}
	if st.IsDir() {
		baseDir = target
		files, err = driver.ListFactFiles(target)
		if err != nil {
			return "", nil, nil, fmt.Errorf("failed to list %s: %w", target, err)
		}
	} else {
		baseDir = filepath.Dir(target)
		files = []string{target}
	}
	_, display = displayPaths(files, baseDir)
	return baseDir, files, display, nil
}

// Run explains req.Target. Progress events and the caller's observer are
// invoked from worker goroutines, one at a time.
func Run(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, errors.New("missing explain request")
	}
	baseDir, files, _, err := Plan(req.Target)
	if err != nil {
		emit(req.Progress, Event{Stage: StageDecode, Status: StatusError, Err: err})
		return result, err
	}
	names, display := displayPaths(files, baseDir)
	result.Files = display
	emitQueued(req.Progress, display)

	var mu sync.Mutex
	opts := req.Options
	next := opts.Observer
	opts.Observer = func(ev driver.PhaseEvent) {
		mu.Lock()
		defer mu.Unlock()
		if next != nil {
			next(ev)
		}
		stage, ok := stageOf(ev.Name)
		if !ok {
			return
		}
		if ev.Status == driver.PhaseEnd {
			result.Timings.Add(stage, ev.Elapsed)
		}
		emit(req.Progress, progressEvent(names[ev.Document], stage, ev))
	}

	res, err := driver.ExplainFiles(ctx, baseDir, files, opts)
	result.Result = res
	if err != nil {
		emit(req.Progress, Event{Stage: StageRender, Status: StatusError, Err: err})
		return result, err
	}
	return result, nil
}

func stageOf(name string) (Stage, bool) {
	switch name {
	case "decode":
		return StageDecode, true
	case "resolve":
		return StageResolve, true
	case "render":
		return StageRender, true
	}
	return "", false
}

// progressEvent: render is the last stage, so its end marks the document done;
// a failure at any stage ends the document.
func progressEvent(file string, stage Stage, ev driver.PhaseEvent) Event {
	out := Event{File: file, Stage: stage, Status: StatusWorking, Err: ev.Err, Elapsed: ev.Elapsed}
	switch {
	case ev.Status == driver.PhaseStart:
	case ev.Err != nil:
		out.Status = StatusError
	case stage == StageRender && ev.Cached:
		out.Status = StatusCached
	case stage == StageRender:
		out.Status = StatusDone
	}
	return out
}
