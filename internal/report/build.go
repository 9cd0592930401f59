package report

import (
	"fmt"
	"strings"

	"diagsynth/internal/diag"
	"diagsynth/internal/facts"
	"diagsynth/internal/normalize"
	"diagsynth/internal/source"
)

// Build turns one fact into a diagnostic: speculative siblings are narrowed,
// the chain is normalised, then the classic tree is always built and the
// friendly sentence when the mode asks for it and the fact has one.
func Build(f facts.Fact, opts Options) diag.Diagnostic {
	f = normalize.Fact(Narrow(f))
	class := Classify(f)

	classic := BuildClassic(f, opts.SourceFile)
	d := diag.Diagnostic{
		Severity: class.Severity,
		Code:     class.Code,
		Kind:     class.Kind,
		LintRule: class.LintRule,
		Classic:  &classic,
	}

	if friendly, ok := BuildFriendly(f, opts.Mode); ok {
		d.Friendly = &friendly
		d.Message = FlatMessage(friendly)
		d.Primary = friendly.Primary
		d.Notes = friendlyNotes(friendly)
	} else {
		d.Message = classicMessage(classic.PrimaryInfos)
		d.Primary = classicPrimary(classic.PrimaryInfos)
		d.Notes = classicNotes(classic.PrimaryInfos, d.Primary)
	}

	if pnf, ok := f.(facts.PropNotFound); ok {
		if s, ok := Suggest(pnf.Prop, pnf.Candidates); ok && !pnf.PropReason.Loc.Degenerate() {
			d = d.WithFix(fmt.Sprintf("replace with `%s`", s), diag.FixEdit{Span: pnf.PropReason.Loc, NewText: s})
		}
	}
	return d
}

// classicPrimary is the first info that has text and a usable location.
func classicPrimary(infos []diag.Info) source.Span {
	for _, info := range infos {
		if len(info.Lines) > 0 && !info.Loc.Degenerate() && !isLibraryNote(info) {
			return info.Loc
		}
	}
	for _, info := range infos {
		if !info.Loc.IsNone() {
			return info.Loc
		}
	}
	return source.NoSpan
}

func isLibraryNote(info diag.Info) bool {
	return len(info.Lines) == 1 && info.Lines[0] == msgLibraryNote
}

func classicNotes(infos []diag.Info, primary source.Span) []diag.Note {
	var notes []diag.Note
	for _, info := range infos {
		if len(info.Lines) == 0 || info.Loc.IsNone() || info.Loc == primary {
			continue
		}
		notes = append(notes, diag.Note{Span: info.Loc, Msg: strings.Join(info.Lines, " ")})
	}
	return notes
}

// friendlyNotes lists every referenced location other than the primary one, once.
func friendlyNotes(fr diag.Friendly) []diag.Note {
	var notes []diag.Note
	seen := map[source.Span]bool{fr.Primary: true}
	add := func(parts []diag.Text) {
		for _, p := range parts {
			if !p.HasRef() || seen[p.Ref] {
				continue
			}
			seen[p.Ref] = true
			notes = append(notes, diag.Note{Span: p.Ref, Msg: p.String()})
		}
	}
	add(fr.RootClause)
	for _, f := range fr.Frames {
		add(f)
	}
	add(fr.Final)
	return notes
}
