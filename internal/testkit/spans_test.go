package testkit

import (
	"strings"
	"testing"

	"diagsynth/internal/diag"
	"diagsynth/internal/source"
)

func TestCheckSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.js", []byte("let x = 1;\n"))

	tests := []struct {
		name    string
		diag    diag.Diagnostic
		wantErr string
	}{
		{"ok", diag.Diagnostic{Primary: source.Span{File: id, Start: 4, End: 5}}, ""},
		{"no span", diag.Diagnostic{Primary: source.NoSpan}, ""},
		{"end of file", diag.Diagnostic{Primary: source.Span{File: id, Start: 11, End: 11}}, ""},
		{"beyond", diag.Diagnostic{Primary: source.Span{File: id, Start: 4, End: 40}}, "ends beyond a.js"},
		{"reversed", diag.Diagnostic{Primary: source.Span{File: id, Start: 5, End: 4}}, "reversed"},
		{"unknown file", diag.Diagnostic{Primary: source.Span{File: id + 7, Start: 0, End: 1}}, "unknown file"},
		{"note", diag.Diagnostic{
			Primary: source.Span{File: id, Start: 4, End: 5},
			Notes:   []diag.Note{{Span: source.Span{File: id, Start: 0, End: 99}, Msg: "here"}},
		}, "ends beyond"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSpanInvariants(tt.diag, fs)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
