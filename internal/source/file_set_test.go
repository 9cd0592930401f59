package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.js", []byte("hello world"), 0)
	id2 := fs.Add("test.js", []byte("hello universe"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", id1, id2)
	}

	latest, ok := fs.GetLatest("test.js")
	if !ok || latest != id2 {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", id2, latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Fatalf("old version lost: %q", got)
	}
}

func TestGetUnknownFileReturnsNil(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.js", []byte("x"))
	if fs.Get(1) != nil {
		t.Fatal("expected nil for unknown id")
	}
	if fs.Get(NoFileID) != nil {
		t.Fatal("expected nil for NoFileID")
	}
	start, end := fs.Resolve(Span{File: 7, Start: 0, End: 1})
	if start != (LineCol{}) || end != (LineCol{}) {
		t.Fatalf("expected zero positions, got %v %v", start, end)
	}
}

func TestLibFlag(t *testing.T) {
	fs := NewFileSet()
	src := fs.AddVirtual("main.js", []byte("let x = 1;\n"))
	lib := fs.Add("lib/core.js", []byte("declare var x: number;\n"), FileLib)

	if fs.Get(src).IsLib() {
		t.Error("source file must not be a library file")
	}
	if !fs.Get(lib).IsLib() {
		t.Error("expected library flag")
	}
}

func TestResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.js", []byte("const a = 1;\nconst b: number = \"x\";\n"))

	start, end := fs.Resolve(Span{File: id, Start: 31, End: 34})
	if start.Line != 2 || start.Col != 19 {
		t.Fatalf("unexpected start %+v", start)
	}
	if end.Line != 2 || end.Col != 22 {
		t.Fatalf("unexpected end %+v", end)
	}

	file := fs.Get(id)
	if got := file.GetLine(2); got != "const b: number = \"x\";" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := file.GetLine(5); got != "" {
		t.Fatalf("expected empty line past EOF, got %q", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.js")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path, FileLib)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Fatalf("unexpected content %q", file.Content)
	}
	want := FileHadBOM | FileNormalizedCRLF | FileLib
	if file.Flags != want {
		t.Fatalf("flags = %b, want %b", file.Flags, want)
	}
}
