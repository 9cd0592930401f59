package report

import (
	"fmt"

	"diagsynth/internal/diag"
	"diagsynth/internal/facts"
	"diagsynth/internal/normalize"
	"diagsynth/internal/score"
	"diagsynth/internal/source"
)

// Narrow resolves speculative siblings of f: when exactly one branch scores
// best against f's own root, that branch's fact replaces f (and is narrowed in
// turn); otherwise f keeps only the tied branches.
func Narrow(f facts.Fact) facts.Fact {
	b, ok := f.(facts.Blamed)
	if !ok || len(b.Siblings()) == 0 {
		return f
	}
	survivors := score.Select(b.Siblings(), score.Reference(b))
	if len(survivors) == 1 {
		return Narrow(survivors[0].Fact)
	}
	return b.WithSiblings(survivors)
}

// speculationExtra renders every sibling classically, even in friendly mode:
//
//	Member i:
//	  <member>
//	  Error:
//	    <sibling's own infos>
func speculationExtra(b facts.Blamed, sourceFile source.FileID) []diag.InfoTree {
	var out []diag.InfoTree
	for i, br := range b.Siblings() {
		if br.Fact == nil {
			continue
		}
		sub := BuildClassic(normalize.Fact(br.Fact), sourceFile)
		errorNode := diag.Node(
			[]diag.Info{{Loc: source.NoSpan, Lines: []string{"Error:"}}},
			append([]diag.InfoTree{diag.Leaf(sub.PrimaryInfos...)}, sub.Extra...)...,
		)
		out = append(out, diag.Node(
			[]diag.Info{{Loc: br.Member.Loc, Lines: []string{fmt.Sprintf("Member %d:", i+1)}}},
			diag.Leaf(diag.Info{Loc: br.Member.Loc, Lines: []string{desc(br.Member)}}),
			errorNode,
		))
	}
	return out
}

func ambiguityState(f facts.SpeculationAmbiguous) classicState {
	st := oneSided(f.Reason, "Could not decide which case to select")
	st.core = append(st.core,
		diag.Info{Loc: f.Case1.Reason.Loc, Lines: []string{fmt.Sprintf("Case %d may work:", f.Case1.Index+1)}},
		diag.Info{Loc: f.Case2.Reason.Loc, Lines: []string{fmt.Sprintf("But if it doesn't, case %d looks promising too:", f.Case2.Index+1)}},
	)
	if len(f.Annotations) > 0 {
		lines := fmt.Sprintf("Please provide additional annotation(s) to determine whether case %d works (or consider merging it with case %d):",
			f.Case1.Index+1, f.Case2.Index+1)
		infos := make([]diag.Info, 0, len(f.Annotations))
		for _, a := range f.Annotations {
			infos = append(infos, diag.Info{Loc: a.Loc, Lines: []string{desc(a)}})
		}
		st.extra = append(st.extra, diag.Node([]diag.Info{{Loc: f.Reason.Loc, Lines: []string{lines}}}, diag.Leaf(infos...)))
	}
	st.reasons = append(st.reasons, f.Case1.Reason, f.Case2.Reason)
	return st
}

func ambiguityFriendly(f facts.SpeculationAmbiguous) diag.Friendly {
	final := []diag.Text{
		text("could not decide which case to select, since case "),
		refAt(fmt.Sprintf("%d", f.Case1.Index+1), f.Case1.Reason),
		text(" may work but if it doesn't case "),
		refAt(fmt.Sprintf("%d", f.Case2.Index+1), f.Case2.Reason),
		text(" looks promising too."),
	}
	for i, a := range f.Annotations {
		if i == 0 {
			final = append(final, text(" To fix add a type annotation to "))
		} else {
			final = append(final, text(" or to "))
		}
		final = append(final, ref(a))
	}
	if len(f.Annotations) > 0 {
		final = append(final, text("."))
	}
	return diag.Friendly{
		RootLoc:    source.NoSpan,
		Primary:    f.Reason.Loc,
		Final:      capitalize(final),
	}
}
