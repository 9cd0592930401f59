package diag

import (
	"diagsynth/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

// Text is a piece of styled message text. Code pieces render as `code`;
// Ref points at the location the piece talks about (degenerate = none).
type Text struct {
	Value string
	Code  bool
	Ref   source.Span
}

func Plain(s string) Text {
	return Text{Value: s, Ref: source.NoSpan}
}

func CodeText(s string) Text {
	return Text{Value: s, Code: true, Ref: source.NoSpan}
}

// RefText is text describing the entity at loc.
func RefText(s string, code bool, loc source.Span) Text {
	return Text{Value: s, Code: code, Ref: loc}
}

func (t Text) HasRef() bool {
	return !t.Ref.Degenerate()
}

func (t Text) String() string {
	if t.Code {
		return "`" + t.Value + "`"
	}
	return t.Value
}

// Info is one located note of a classic report.
type Info struct {
	Loc   source.Span
	Lines []string
}

// InfoTree nests infos; a tree without children is a leaf.
type InfoTree struct {
	Infos    []Info
	Children []InfoTree
}

func Leaf(infos ...Info) InfoTree {
	return InfoTree{Infos: infos}
}

func Node(infos []Info, children ...InfoTree) InfoTree {
	return InfoTree{Infos: infos, Children: children}
}

// Classic is the (location, lines) rendering of a fact.
type Classic struct {
	PrimaryInfos []Info
	Extra        []InfoTree
}

// Friendly is the sentence rendering of a fact: RootClause "because" Frames, Final.
// RootLoc is NoSpan when the fact has no root phrase.
type Friendly struct {
	RootLoc    source.Span
	RootClause []Text
	Primary    source.Span
	Frames     [][]Text
	Final      []Text
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Kind     Kind
	LintRule string
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
	Classic  *Classic
	Friendly *Friendly
}

// WithFix returns a copy of d with one more fix.
func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(append([]Fix(nil), d.Fixes...), Fix{Title: title, Edits: edits})
	return d
}

// RenderText joins styled text into a plain one-line string.
func RenderText(parts []Text) string {
	n := 0
	for _, p := range parts {
		n += len(p.Value) + 2
	}
	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p.String()...)
	}
	return string(buf)
}
