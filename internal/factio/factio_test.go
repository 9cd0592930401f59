package factio

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"diagsynth/internal/blame"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
	"diagsynth/internal/source"
)

const castDoc = `
files:
  - path: main.js
    content: "const y = (x: number);\n"
  - path: lib/core.js
    lib: true
    content: "declare var n: number;\n"
facts:
  - kind: incompatible
    lower: {loc: {file: main.js, start: 11, end: 12}, desc: {kind: code, value: x}}
    upper: {loc: {file: main.js, start: 14, end: 20}, desc: {kind: number}}
    chain:
      root:
        kind: cast
        from: {loc: {file: main.js, start: 11, end: 12}, desc: {kind: code, value: x}}
        to: {loc: {file: main.js, start: 14, end: 20}, desc: {kind: number}}
      frames:
        - {kind: property, name: a}
        - {kind: tuple_element, index: 1}
`

func TestDecodeYAMLAndResolve(t *testing.T) {
	doc, err := DecodeYAML(strings.NewReader(castDoc))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	fs := source.NewFileSet()
	in, err := doc.Resolve(fs, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected two files, got %d", fs.Len())
	}
	if !fs.Get(1).IsLib() || fs.Get(0).IsLib() {
		t.Fatal("lib flag not applied")
	}
	if in.SourceFile != 0 {
		t.Fatalf("source file = %d", in.SourceFile)
	}
	if len(in.Facts) != 1 {
		t.Fatalf("facts = %d", len(in.Facts))
	}

	inc, ok := in.Facts[0].(facts.Incompatible)
	if !ok {
		t.Fatalf("fact type %T", in.Facts[0])
	}
	x := reason.Code(source.Span{File: 0, Start: 11, End: 12}, "x")
	if !reflect.DeepEqual(inc.Lower, x) {
		t.Fatalf("lower = %+v", inc.Lower)
	}
	// frames are listed leaf first
	if got := inc.Chain.String(); got != "cast > tuple_element > property" {
		t.Fatalf("chain = %q", got)
	}
	if _, ok := inc.Chain.Leaf(); !ok {
		t.Fatal("expected frames")
	}
	if leaf, _ := inc.Chain.Leaf(); !reflect.DeepEqual(leaf, blame.PropertyCompat{
		Name:  "a",
		Lower: reason.New(source.NoSpan, reason.Desc(reason.DescUnknown)),
		Upper: reason.New(source.NoSpan, reason.Desc(reason.DescUnknown)),
	}) {
		t.Fatalf("leaf = %+v", leaf)
	}
}

func TestDecodeJSON(t *testing.T) {
	const doc = `{
  "source_file": "b.js",
  "files": [{"path": "a.js", "content": "a"}, {"path": "b.js", "content": "bb"}],
  "facts": [{"kind": "lint", "rule": "sketchy-null", "detail": "Sketchy null check.",
             "reason": {"loc": {"file": "b.js", "start": 0, "end": 2}, "desc": {"kind": "identifier", "name": "bb"}}}]
}`
	d, err := DecodeYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	in, err := d.Resolve(source.NewFileSet(), "")
	if err != nil {
		t.Fatal(err)
	}
	if in.SourceFile != 1 {
		t.Fatalf("source file = %d", in.SourceFile)
	}
	lint := in.Facts[0].(facts.LintFinding)
	if lint.Rule != "sketchy-null" || lint.Reason.Loc != (source.Span{File: 1, Start: 0, End: 2}) {
		t.Fatalf("lint = %+v", lint)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	doc, err := DecodeYAML(strings.NewReader(castDoc))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeMsgpack(&buf, doc); err != nil {
		t.Fatal(err)
	}
	back, err := Decode(buf.Bytes(), EncodingMsgpack)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, doc) {
		t.Fatalf("round trip differs:\n got %+v\nwant %+v", back, doc)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown kind", "facts: [{kind: nope}]", `fact 0: unknown fact kind "nope"`},
		{"unknown file", "facts: [{kind: value_as_type, reason: {loc: {file: x.js, start: 0, end: 1}, desc: {kind: identifier, name: v}}}]",
			`fact 0: unknown file "x.js"`},
		{"negative offset", "files: [{path: a.js, content: abc}]\nfacts: [{kind: parse_error, loc: {file: a.js, start: -1, end: 1}}]",
			"fact 0: offset -1"},
		{"past the end", "files: [{path: a.js, content: abc}]\nfacts: [{kind: parse_error, loc: {file: a.js, start: 0, end: 9}}]",
			"outside a.js"},
		{"neutral polarity", "facts: [{kind: prop_polarity_mismatch, prop: p}]", "both sides neutral"},
		{"unknown frame", "facts: [{kind: incompatible, chain: {root: {kind: cast}, frames: [{kind: bogus}]}}]", `unknown frame kind "bogus"`},
		{"unknown root", "facts: [{kind: incompatible, chain: {root: {kind: bogus}}}]", `unknown root kind "bogus"`},
		{"bad branch", "facts: [{kind: incompatible, branches: [{member: {desc: {kind: object}}, fact: {kind: nope}}]}]", "branch 0"},
		{"zero param", "facts: [{kind: incompatible, chain: {root: {kind: call}, frames: [{kind: function_param}]}}]", "count from 1"},
		{"missing source", "source_file: z.js\nfiles: [{path: a.js, content: a}]", `source_file "z.js"`},
		{"lint rule", "facts: [{kind: lint}]", "without a rule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeYAML(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			_, err = doc.Resolve(source.NewFileSet(), "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := DecodeYAML(strings.NewReader("facts: [{kind: lint, colour: red}]")); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestReadFileLoadsSourcesFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.js"), []byte("\ufefflet a = 1;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	docPath := filepath.Join(dir, "main.facts.yaml")
	doc := "files: [{path: main.js}]\nfacts: [{kind: module_not_found, module: ./x, reason: {loc: {file: main.js, start: 4, end: 5}, desc: {kind: identifier, name: a}}}]\n"
	if err := os.WriteFile(docPath, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	d, raw, err := ReadFile(docPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != doc {
		t.Fatal("raw bytes must be returned unchanged")
	}
	fs := source.NewFileSet()
	in, err := d.Resolve(fs, dir)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(in.SourceFile)
	if f.Flags&source.FileHadBOM == 0 || f.Flags&source.FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if string(f.Content) != "let a = 1;\n" {
		t.Fatalf("content = %q", f.Content)
	}
}

func TestIsFactFile(t *testing.T) {
	tests := map[string]bool{
		"a.facts.yaml":    true,
		"a.facts.json":    true,
		"a.facts.mp":      true,
		"dir/b.facts.yml": true,
		"a.yaml":          false,
		"a.facts.txt":     false,
	}
	for path, want := range tests {
		if got := IsFactFile(path); got != want {
			t.Errorf("IsFactFile(%q) = %v", path, got)
		}
	}
	if EncodingFor("x.facts.msgpack") != EncodingMsgpack || EncodingFor("x.facts.json") != EncodingYAML {
		t.Error("wrong encoding")
	}
}

func TestLibraryReasonsDefaultToLibOrigin(t *testing.T) {
	const doc = `
files:
  - {path: lib.js, lib: true, content: "declare var n: number;"}
  - {path: app.js, content: "n = 'x';"}
facts:
  - kind: incompatible
    lower: {loc: {file: app.js, start: 4, end: 7}, desc: {kind: string-literal, value: x}}
    upper: {loc: {file: lib.js, start: 15, end: 21}, desc: {kind: number}}
  - kind: value_as_type
    reason: {loc: {file: lib.js, start: 12, end: 13}, desc: {kind: identifier, name: n}, origin: builtin}
`
	d, err := DecodeYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	in, err := d.Resolve(source.NewFileSet(), "")
	if err != nil {
		t.Fatal(err)
	}
	if in.SourceFile != 1 {
		t.Fatalf("the first non-library file is the source file, got %d", in.SourceFile)
	}
	inc := in.Facts[0].(facts.Incompatible)
	if inc.Lower.Origin != reason.OriginSource || inc.Upper.Origin != reason.OriginLib {
		t.Fatalf("origins = %s, %s", inc.Lower.Origin, inc.Upper.Origin)
	}
	if got := in.Facts[1].(facts.ValueAsType).Reason.Origin; got != reason.OriginBuiltin {
		t.Fatalf("explicit origin must win, got %s", got)
	}
}
