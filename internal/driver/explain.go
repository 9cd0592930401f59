// Package driver runs a batch of fact documents through decoding, resolution
// and rendering and collects the resulting diagnostics.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"diagsynth/internal/diag"
	"diagsynth/internal/observ"
	"diagsynth/internal/report"
	"diagsynth/internal/source"
	"diagsynth/internal/trace"
)

// Options configure Explain.
type Options struct {
	Mode report.Mode
	// MaxDiagnostics caps the sorted result; <= 0 means no cap.
	MaxDiagnostics int
	// Jobs bounds parallel decoding and rendering; <= 0 means GOMAXPROCS.
	Jobs int
	// SourceFile overrides every document's source_file.
	SourceFile    string
	EnableTimings bool
	// TimingsDiagnostic appends the timing report to the bag as an info
	// diagnostic (for JSON consumers).
	TimingsDiagnostic bool
	Cache             *DiskCache
	Observer          PhaseObserver
}

// DocumentResult summarises one input document.
type DocumentResult struct {
	Path        string
	SourceFile  source.FileID
	Facts       int
	Diagnostics int
	Cached      bool
	Err         error
}

type Result struct {
	FileSet   *source.FileSet
	Bag       *diag.Bag
	Documents []DocumentResult
	Timing    *observ.Report
	// HasErrors is taken before MaxDiagnostics drops anything.
	HasErrors bool
}

// Failed reports how many documents could not be decoded or resolved.
func (r *Result) Failed() int {
	n := 0
	for _, d := range r.Documents {
		if d.Err != nil {
			n++
		}
	}
	return n
}

// Explain renders one fact document, or every fact document under a directory.
func Explain(ctx context.Context, target string, opts Options) (*Result, error) {
	st, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return ExplainFiles(ctx, filepath.Dir(target), []string{target}, opts)
	}
	started := opts.Observer.start("list", "")
	files, err := ListFactFiles(target)
	opts.Observer.end("list", "", started, err, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", target, err)
	}
	return ExplainFiles(ctx, target, files, opts)
}

// ExplainFiles renders the given documents; baseDir is what reported paths are
// relative to.
func ExplainFiles(ctx context.Context, baseDir string, files []string, opts Options) (*Result, error) {
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	ctx, runSpan := trace.Start(ctx, trace.ScopeRun, "explain")
	runSpan.WithExtra("documents", fmt.Sprint(len(files)))

	fileSet := source.NewFileSetWithBase(baseDir)
	result := &Result{FileSet: fileSet}

	// decode: параллельно, без FileSet
	idx := timer.Begin("decode")
	stageCtx, stage := trace.Start(ctx, trace.ScopeStage, "decode")
	decoded, err := decodeAll(stageCtx, files, &opts, timer)
	stage.End(errDetail(err))
	timer.End(idx, fmt.Sprintf("documents=%d", len(files)))
	if err != nil {
		runSpan.End(errDetail(err))
		return nil, err
	}

	// resolve: FileSet не потокобезопасен, регистрируем файлы последовательно
	idx = timer.Begin("resolve")
	stageCtx, stage = trace.Start(ctx, trace.ScopeStage, "resolve")
	docs := make([]*resolved, len(decoded))
	for i, ld := range decoded {
		docs[i] = resolveOne(stageCtx, fileSet, ld, &opts)
	}
	stage.End("")
	timer.End(idx, fmt.Sprintf("files=%d", fileSet.Len()))

	idx = timer.Begin("render")
	stageCtx, stage = trace.Start(ctx, trace.ScopeStage, "render")
	err = renderAll(stageCtx, docs, &opts, timer)
	stage.End(errDetail(err))
	timer.End(idx, "")
	if err != nil {
		runSpan.End(errDetail(err))
		return nil, err
	}

	// collect: порядок документов фиксирован, дедупликация детерминирована
	idx = timer.Begin("collect")
	all := diag.NewBag(0)
	reporter := diag.NewDedupReporter(diag.NewBagReporter(all), nil)
	result.Documents = make([]DocumentResult, len(docs))
	for i, rd := range docs {
		dr := DocumentResult{Path: rd.path, SourceFile: source.NoFileID, Cached: rd.cached}
		if rd.failure != nil {
			reporter.Report(rd.failure)
			dr.Err = rd.err
		} else {
			dr.SourceFile = rd.input.SourceFile
			dr.Facts = len(rd.input.Facts)
			dr.Diagnostics = len(rd.diags)
			for j := range rd.diags {
				reporter.Report(&rd.diags[j])
			}
		}
		result.Documents[i] = dr
	}
	all.Sort()
	result.HasErrors = all.HasErrors()
	result.Bag = diag.NewBag(opts.MaxDiagnostics)
	result.Bag.Merge(all)
	timer.End(idx, fmt.Sprintf("diagnostics=%d dropped=%d", result.Bag.Len(), all.Len()-result.Bag.Len()))

	if timer != nil {
		rep := timer.Report()
		result.Timing = &rep
	}
	if timer != nil && opts.TimingsDiagnostic {
		appendTimingDiagnostic(result.Bag, timingPayload{
			Path:      baseDir,
			Documents: len(files),
			TotalMS:   result.Timing.TotalMS,
			Phases:    result.Timing.Phases,
		})
	}
	runSpan.WithExtra("diagnostics", fmt.Sprint(result.Bag.Len())).End("")
	return result, nil
}

func resolveOne(ctx context.Context, fileSet *source.FileSet, ld loaded, opts *Options) *resolved {
	rd := &resolved{path: ld.path}
	if ld.err != nil {
		code := diag.IODecodeError
		if errors.Is(ld.err, os.ErrNotExist) || errors.Is(ld.err, os.ErrPermission) {
			code = diag.IOLoadFileError
		}
		rd.err = ld.err
		rd.failure = failureDiagnostic(ld.path, code, ld.err)
		return rd
	}

	started := opts.Observer.start("resolve", ld.path)
	if opts.SourceFile != "" {
		ld.doc.SourceFile = opts.SourceFile
	}
	input, err := ld.doc.Resolve(fileSet, filepath.Dir(ld.path))
	opts.Observer.end("resolve", ld.path, started, err, false)
	if err != nil {
		trace.Error(trace.FromContext(ctx), trace.ScopeDocument, "resolve:"+ld.path, err, trace.CurrentSpan(ctx))
		rd.err = err
		rd.failure = failureDiagnostic(ld.path, diag.IODecodeError, err)
		return rd
	}
	input.Path = ld.path
	rd.input = input
	rd.key = cacheKey(ld.raw, opts.Mode, opts.SourceFile)
	return rd
}
