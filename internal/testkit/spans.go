package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"diagsynth/internal/diag"
	"diagsynth/internal/source"
)

// CheckSpanInvariants runs the span invariants every rendered diagnostic keeps:
// 1) every span (primary, notes, fixes, info tree, friendly parts) names a file of fs
// 2) spans are ordered: Start <= End
// 3) spans stay inside the file content
// NoSpan is allowed anywhere.
func CheckSpanInvariants(d diag.Diagnostic, fs *source.FileSet) error {
	if fs == nil {
		return fmt.Errorf("nil file set")
	}
	var errs []error
	d.MapSpans(func(sp source.Span) source.Span {
		if err := checkSpan(sp, fs); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", d.Code.ID(), d.Message, err))
		}
		return sp
	})
	return errors.Join(errs...)
}

// CheckBag applies CheckSpanInvariants to every diagnostic of bag.
func CheckBag(bag *diag.Bag, fs *source.FileSet) error {
	var errs []error
	for _, d := range bag.Pointers() {
		errs = append(errs, CheckSpanInvariants(*d, fs))
	}
	return errors.Join(errs...)
}

func checkSpan(sp source.Span, fs *source.FileSet) error {
	f := fs.Get(sp.File)
	if f == nil {
		return fmt.Errorf("span %v points to unknown file", sp)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("span %v is reversed", sp)
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span %v ends beyond %s (%d bytes)", sp, f.Path, lenContent)
	}
	return nil
}
