package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"diagsynth/internal/diag"
	"diagsynth/internal/factio"
	"diagsynth/internal/observ"
	"diagsynth/internal/report"
	"diagsynth/internal/source"
	"diagsynth/internal/trace"
)

// ListFactFiles возвращает отсортированный список документов фактов в директории.
func ListFactFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && len(d.Name()) > 1 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		if !d.IsDir() && factio.IsFactFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// loaded is one decoded document, before its files enter the FileSet.
type loaded struct {
	path string
	doc  *factio.Document
	raw  []byte
	err  error
}

func jobsFor(jobs, n int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

// decodeAll читает и декодирует документы параллельно. Ошибки отдельных
// документов остаются в результатах; фатальна только отмена контекста.
func decodeAll(ctx context.Context, files []string, opts *Options, timer *observ.Timer) ([]loaded, error) {
	results := make([]loaded, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobsFor(opts.Jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				started := opts.Observer.start("decode", path)
				_, span := trace.Start(gctx, trace.ScopeDocument, "decode:"+path)
				doc, raw, err := factio.ReadFile(path)
				span.End(errDetail(err))
				timer.Track("decode/document", time.Since(started))
				opts.Observer.end("decode", path, started, err, false)

				// индекс i уникален — мьютекс не нужен
				results[i] = loaded{path: path, doc: doc, raw: raw, err: err}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// resolved is a document whose facts point into the shared FileSet.
type resolved struct {
	path  string
	key   Digest
	input *factio.Input
	diags []diag.Diagnostic
	// failure is set instead of input when the document could not be used
	failure *diag.Diagnostic
	err     error
	cached  bool
}

// renderAll строит диагностики для каждого документа на пуле воркеров.
// report.Build не трогает FileSet, поэтому общий FileSet читается без блокировок.
func renderAll(ctx context.Context, docs []*resolved, opts *Options, timer *observ.Timer) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobsFor(opts.Jobs, len(docs)))

	for _, rd := range docs {
		if rd.failure != nil {
			continue
		}
		g.Go(func(rd *resolved) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				started := opts.Observer.start("render", rd.path)
				dctx, span := trace.Start(gctx, trace.ScopeDocument, "render:"+rd.path)
				err := renderDocument(dctx, rd, opts)
				span.WithExtra("facts", fmt.Sprint(len(rd.input.Facts))).
					WithExtra("cached", fmt.Sprint(rd.cached)).
					End(errDetail(err))
				timer.Track("render/document", time.Since(started))
				opts.Observer.end("render", rd.path, started, err, rd.cached)
				return err
			}
		}(rd))
	}
	return g.Wait()
}

func renderDocument(ctx context.Context, rd *resolved, opts *Options) error {
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(rd.key, &payload)
		if err != nil {
			// битая запись — просто перерисуем
			trace.Error(trace.FromContext(ctx), trace.ScopeDocument, "cache:"+rd.path, err, trace.CurrentSpan(ctx))
		}
		if hit && err == nil && payload.Facts == len(rd.input.Facts) {
			rd.diags = fromLocal(payload.Diagnostics, rd.input.Files)
			rd.cached = true
			return nil
		}
	}

	ropts := report.Options{Mode: opts.Mode, SourceFile: rd.input.SourceFile}
	rd.diags = make([]diag.Diagnostic, 0, len(rd.input.Facts))
	for i, f := range rd.input.Facts {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, span := trace.Start(ctx, trace.ScopeFact, fmt.Sprintf("fact:%d", i))
		d := report.Build(f, ropts)
		span.WithExtra("code", d.Code.ID()).End("")
		rd.diags = append(rd.diags, d)
	}

	if opts.Cache != nil {
		payload := &DiskPayload{Path: rd.path, Facts: len(rd.input.Facts), Diagnostics: toLocal(rd.diags, rd.input.Files)}
		if err := opts.Cache.Put(rd.key, payload); err != nil {
			trace.Error(trace.FromContext(ctx), trace.ScopeDocument, "cache:"+rd.path, err, trace.CurrentSpan(ctx))
		}
	}
	return nil
}

// failureDiagnostic turns a document that could not be used into a diagnostic
// so one bad file does not hide the rest of the batch.
func failureDiagnostic(path string, code diag.Code, err error) *diag.Diagnostic {
	return &diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Kind:     diag.KindIO,
		Message:  fmt.Sprintf("%s: %v", path, err),
		Primary:  source.NoSpan,
	}
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
