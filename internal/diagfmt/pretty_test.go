package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"diagsynth/internal/blame"
	"diagsynth/internal/diag"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
	"diagsynth/internal/report"
	"diagsynth/internal/source"
)

func errorAt(span source.Span, msg string) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.TypIncompatible,
		Kind:     diag.KindTypeError,
		Message:  msg,
		Primary:  span,
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const x: number = \"str\";\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.js", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(errorAt(source.Span{File: fileID, Start: 18, End: 23}, "string is incompatible with number."))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.js"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.js"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.js:1:19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR TYP3001") {
				t.Errorf("Expected severity and code in output, got:\n%s", output)
			}
			if !strings.Contains(output, "string is incompatible with number.") {
				t.Error("Expected message in output")
			}
		})
	}
}

func TestPrettySnippetUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("let a = 1;\nlet héllo = f(a);\n"))

	bag := diag.NewBag(1)
	// "f(a)" on line 2; é is two bytes but one column wide
	bag.Add(errorAt(source.Span{File: fileID, Start: 24, End: 28}, "boom"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "a.js:2:14: ERROR TYP3001: boom\n" +
		"2 | let héllo = f(a);\n" +
		"  |             ^~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte("one\ntwo\nthree\n"))

	bag := diag.NewBag(1)
	bag.Add(errorAt(source.Span{File: fileID, Start: 8, End: 13}, "boom"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	if !strings.Contains(buf.String(), "2 | two\n3 | three\n") {
		t.Fatalf("expected one line of context, got:\n%s", buf.String())
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("arr.lenght;\n")
	fileID := fs.AddVirtual("test.js", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 4, End: 10}
	d := errorAt(primary, "property `lenght` is missing in array type.")
	d.Notes = []diag.Note{{Span: source.Span{File: fileID, Start: 0, End: 3}, Msg: "array type"}}
	d = d.WithFix("replace with `length`", diag.FixEdit{Span: primary, NewText: "length"})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	if !strings.Contains(output, "note: test.js:1:1: array type") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}
	if !strings.Contains(output, "fix #1: replace with `length`") {
		t.Fatalf("expected first fix entry, got:\n%s", output)
	}
	if !strings.Contains(output, "apply=\"length\"") {
		t.Fatalf("expected fix edit apply preview, got:\n%s", output)
	}
	if !strings.Contains(output, "- arr.lenght;") || !strings.Contains(output, "+ arr.length;") {
		t.Fatalf("expected before and after lines in preview, got:\n%s", output)
	}
}

func TestPrettyClassicTree(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.js", []byte("({foo: 1}: {bar: number});\n"))
	at := func(s, e uint32) source.Span { return source.Span{File: fileID, Start: s, End: e} }

	objLit := reason.Type(at(1, 9), reason.DescObjectLit)
	objType := reason.Type(at(11, 24), reason.DescObject)
	f := facts.PropNotFound{
		Prop:       "bar",
		PropReason: reason.New(at(12, 15), reason.Named(reason.DescProperty, "bar")),
		Object:     objLit,
		Chain: blame.Build(blame.Cast{From: objLit, To: objType},
			blame.PropertyCompat{Name: "bar", Lower: objType, Upper: objLit}),
	}
	bag := diag.NewBag(1)
	bag.Add(report.Build(f, report.Options{Mode: report.ModeClassic, SourceFile: fileID}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowTree: true})
	output := buf.String()
	for _, want := range []string{
		"  Property `bar` is incompatible: [t.js:1:12]\n",
		"    Property not found in object literal [t.js:1:2]\n",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in:\n%s", want, output)
		}
	}
}

func TestPrettyLintRuleAndKindLabel(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("l.js", []byte("if (x) {}\n"))

	bag := diag.NewBag(2)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LntFinding, Kind: diag.KindLint, LintRule: "sketchy-null",
		Message: "Sketchy null check.", Primary: source.Span{File: fileID, Start: 4, End: 5}})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.Contains(buf.String(), "l.js:1:5: WARNING LNT6001 [lint warning]: (sketchy-null) Sketchy null check.") {
		t.Fatalf("got:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("s.js", []byte("a\nb\n"))

	bag := diag.NewBag(2)
	bag.Add(errorAt(source.Span{File: fileID, Start: 2, End: 3}, "second"))
	bag.Add(errorAt(source.Span{File: fileID, Start: 0, End: 1}, "first"))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatal(err)
	}
	want := "error TYP3001 s.js:1:1 first\nerror TYP3001 s.js:2:1 second\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}
