package diagfmt

import (
	"io"

	"diagsynth/internal/diag"
	"diagsynth/internal/source"
)

// Short prints one "severity code path:line:col message" line per diagnostic.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Pointers(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
