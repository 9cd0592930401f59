package diagfmt

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"diagsynth/internal/blame"
	"diagsynth/internal/diag"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
	"diagsynth/internal/report"
	"diagsynth/internal/source"
)

func castBag(t *testing.T, mode report.Mode) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("const y = (x: number);\n"))
	at := func(s, e uint32) source.Span { return source.Span{File: fileID, Start: s, End: e} }

	x := reason.Code(at(11, 12), "x")
	num := reason.Type(at(14, 20), reason.DescNumber)
	bag := diag.NewBag(10)
	bag.Add(report.Build(facts.Incompatible{Lower: x, Upper: num, Chain: blame.Of(blame.Cast{From: x, To: num})},
		report.Options{Mode: mode, SourceFile: fileID}))
	return bag, fs
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	bag, fs := castBag(t, report.ModeFriendly)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", output.Count)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "TYP3001" || d.Kind != "type" {
		t.Errorf("unexpected classification %s %s %s", d.Severity, d.Code, d.Kind)
	}
	if d.Message != "Cannot cast `x` to number because `x` is incompatible with number." {
		t.Errorf("unexpected message %q", d.Message)
	}
	want := &LocationJSON{File: "test.js", StartByte: 11, EndByte: 12, StartLine: 1, StartCol: 12, EndLine: 1, EndCol: 13}
	if !reflect.DeepEqual(d.Location, want) {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "number" {
		t.Errorf("notes = %+v", d.Notes)
	}
	if d.Friendly != nil || d.Classic != nil {
		t.Error("trees are opt-in")
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	bag, fs := castBag(t, report.ModeFriendly)
	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	if err != nil {
		t.Fatal(err)
	}
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Fatalf("positions must be omitted: %+v", loc)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatal("notes must be omitted")
	}
}

func TestJSONTrees(t *testing.T) {
	bag, fs := castBag(t, report.ModeFriendly)
	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeTree: true})
	if err != nil {
		t.Fatal(err)
	}
	d := out.Diagnostics[0]
	if d.Friendly == nil || d.Classic == nil {
		t.Fatal("expected both trees")
	}
	root := d.Friendly.Root
	if len(root) != 4 || root[1].Text != "x" || !root[1].Code || root[1].Location == nil || root[1].Location.StartByte != 11 {
		t.Fatalf("root = %+v", root)
	}
	if root[0].Location != nil {
		t.Fatal("plain text carries no location")
	}
	if len(d.Classic.Primary) != 2 || d.Classic.Primary[1].Lines[0] != "This type is incompatible with" {
		t.Fatalf("classic = %+v", d.Classic.Primary)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.js", []byte("abcdef\n"))
	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.TypIncompatible, Message: "e",
			Primary: source.Span{File: fileID, Start: i, End: i + 1}})
	}
	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != 3 {
		t.Fatalf("Expected count=3, got %d", out.Count)
	}
}

func TestJSONUnknownLocation(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.IntInternalError, Kind: diag.KindInternal,
		Message: "Internal error: budget", Primary: source.NoSpan})
	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Diagnostics[0].Location != nil {
		t.Fatal("expected no location")
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fix.js", []byte("a.lenght\n"))
	span := source.Span{File: fileID, Start: 2, End: 8}
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.TypPropNotFound, Message: "m", Primary: span}.
		WithFix("replace with `length`", diag.FixEdit{Span: span, NewText: "length"}))

	out, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeFixes: true, IncludePreviews: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatal(err)
	}
	fixes := out.Diagnostics[0].Fixes
	if len(fixes) != 1 || len(fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", fixes)
	}
	edit := fixes[0].Edits[0]
	if !reflect.DeepEqual(edit.BeforeLines, []string{"a.lenght"}) || !reflect.DeepEqual(edit.AfterLines, []string{"a.length"}) {
		t.Fatalf("preview = %v -> %v", edit.BeforeLines, edit.AfterLines)
	}
}

func TestMsgpackMatchesJSON(t *testing.T) {
	bag, fs := castBag(t, report.ModeClassic)
	opts := JSONOpts{PathMode: PathModeBasename, IncludeNotes: true, IncludeTree: true, IncludePositions: true}

	var buf bytes.Buffer
	if err := Msgpack(&buf, bag, fs, opts); err != nil {
		t.Fatal(err)
	}
	got, err := ReadMsgpack(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := BuildDiagnosticsOutput(bag, fs, opts)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("msgpack round trip differs:\n got %+v\nwant %+v", got, want)
	}
}
