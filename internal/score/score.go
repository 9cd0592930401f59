// Package score ranks speculative sibling facts by how close each one came to
// passing the check the user most likely intended.
package score

import (
	"fmt"

	"diagsynth/internal/blame"
	"diagsynth/internal/facts"
)

const (
	// Unit is the base weight of one frame.
	Unit = 100
	// Mismatch replaces the chain contribution when the chain root differs from
	// the reference root; kind and shape adjustments still apply.
	Mismatch = -1
)

// Score computes the closeness of f relative to the reference root.
func Score(f facts.Fact, reference blame.Root) int {
	b, ok := f.(facts.Blamed)
	if !ok {
		return 0
	}
	chain, _ := chainScore(b.Blame(), reference)
	return chain + kindScore(b) + shapeScore(b)
}

// chainScore sums the frame weights of c; matched is false when the root of c
// differs from reference and the contribution is Mismatch.
func chainScore(c *blame.Chain, reference blame.Root) (score int, matched bool) {
	if c == nil {
		return 0, true
	}
	if !blame.RootsEqual(c.Root(), reference) {
		return Mismatch, false
	}
	total := 0
	for _, f := range c.Frames() {
		total += frameScore(f)
	}
	return total, true
}

func frameScore(f blame.Frame) int {
	switch f := f.(type) {
	case blame.FunctionParam:
		return 2*Unit + min(max(f.Index, 0), Unit-1)
	case blame.FunctionRestParam:
		return 3 * Unit
	case blame.FunctionSignatureCompat, blame.MissingArgument:
		return 0
	case blame.TypeArgCompat:
		return 4 * Unit
	case blame.TupleElementCompat:
		return 8 * Unit
	case blame.PropertyCompat:
		if f.IsSentinel {
			return -16 * Unit
		}
		return 2 * Unit
	case blame.FunctionReturn, blame.IndexerKeyCompat, blame.TypeParamBound,
		blame.ImplicitTypeParam, blame.ReactConfigCheck, blame.UnificationMarker:
		return 2 * Unit
	default:
		panic(fmt.Sprintf("score: unknown frame %T", f))
	}
}

func kindScore(b facts.Blamed) int {
	if _, ok := b.(facts.PropNotFound); !ok {
		return 0
	}
	if leaf, ok := b.Blame().Leaf(); ok {
		if _, ok := leaf.(blame.PropertyCompat); ok {
			return -2 * Unit
		}
	}
	return 0
}

func shapeScore(b facts.Blamed) int {
	lower, upper, ok := b.Pair()
	if !ok {
		return 0
	}
	ls, us := lower.IsScalar(), upper.IsScalar()
	la, ua := lower.IsArray(), upper.IsArray()
	switch {
	case ls && us, la && ua:
		return Unit
	case ls != us, la != ua:
		return 0
	default:
		return Unit
	}
}

// Select keeps every branch tied at the maximum score, in input order.
func Select(branches []facts.Branch, reference blame.Root) []facts.Branch {
	idx := Best(branches, reference)
	if len(idx) == 0 {
		return nil
	}
	out := make([]facts.Branch, 0, len(idx))
	for _, i := range idx {
		out = append(out, branches[i])
	}
	return out
}

// Best returns the indices of the branches tied at the maximum score.
func Best(branches []facts.Branch, reference blame.Root) []int {
	if len(branches) == 0 {
		return nil
	}
	best := 0
	scores := make([]int, len(branches))
	for i, br := range branches {
		scores[i] = Score(br.Fact, reference)
		if i == 0 || scores[i] > best {
			best = scores[i]
		}
	}
	var out []int
	for i := range branches {
		if scores[i] == best {
			out = append(out, i)
		}
	}
	return out
}

// Reference is the root siblings of f are measured against.
func Reference(f facts.Blamed) blame.Root {
	return f.Blame().Root()
}
