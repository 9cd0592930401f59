package diag

import (
	"slices"

	"diagsynth/internal/source"
)

// MapSpans returns a deep copy of d with every location passed through f.
// NoSpan is never handed to f.
func (d Diagnostic) MapSpans(f func(source.Span) source.Span) Diagnostic {
	m := func(s source.Span) source.Span {
		if s.IsNone() {
			return s
		}
		return f(s)
	}
	texts := func(parts []Text) []Text {
		if parts == nil {
			return nil
		}
		out := make([]Text, len(parts))
		for i, p := range parts {
			p.Ref = m(p.Ref)
			out[i] = p
		}
		return out
	}
	infos := func(in []Info) []Info {
		if in == nil {
			return nil
		}
		out := make([]Info, len(in))
		for i, info := range in {
			out[i] = Info{Loc: m(info.Loc), Lines: slices.Clone(info.Lines)}
		}
		return out
	}
	var tree func(t InfoTree) InfoTree
	tree = func(t InfoTree) InfoTree {
		out := InfoTree{Infos: infos(t.Infos), Children: slices.Clone(t.Children)}
		for i, c := range t.Children {
			out.Children[i] = tree(c)
		}
		return out
	}

	out := d
	out.Primary = m(d.Primary)
	if d.Notes != nil {
		out.Notes = make([]Note, len(d.Notes))
		for i, n := range d.Notes {
			out.Notes[i] = Note{Span: m(n.Span), Msg: n.Msg}
		}
	}
	if d.Fixes != nil {
		out.Fixes = make([]Fix, len(d.Fixes))
		for i, fix := range d.Fixes {
			edits := slices.Clone(fix.Edits)
			for j, e := range fix.Edits {
				edits[j] = FixEdit{Span: m(e.Span), NewText: e.NewText}
			}
			out.Fixes[i] = Fix{Title: fix.Title, Edits: edits}
		}
	}
	if d.Classic != nil {
		c := Classic{PrimaryInfos: infos(d.Classic.PrimaryInfos), Extra: slices.Clone(d.Classic.Extra)}
		for i, t := range d.Classic.Extra {
			c.Extra[i] = tree(t)
		}
		out.Classic = &c
	}
	if d.Friendly != nil {
		fr := Friendly{
			RootLoc:    m(d.Friendly.RootLoc),
			RootClause: texts(d.Friendly.RootClause),
			Primary:    m(d.Friendly.Primary),
			Final:      texts(d.Friendly.Final),
			Frames:     slices.Clone(d.Friendly.Frames),
		}
		for i, frame := range d.Friendly.Frames {
			fr.Frames[i] = texts(frame)
		}
		out.Friendly = &fr
	}
	return out
}

