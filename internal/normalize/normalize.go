// Package normalize canonicalizes the direction of blame chains before a fact
// is rendered, so that the two halves of a unification and checks in
// contravariant positions read "value is incompatible with expectation".
package normalize

import (
	"diagsynth/internal/blame"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
)

// Unification removes unification markers. A frame is flipped when an odd
// number of markers lie rootward of it; the pair flips when the total is odd.
func Unification(lower, upper reason.Reason, chain *blame.Chain) (reason.Reason, reason.Reason, *blame.Chain) {
	out, flip := unify(chain)
	if flip {
		lower, upper = upper, lower
	}
	return lower, upper, out
}

// Contravariance flips parameters of function-to-function checks and
// everything below a negative type argument.
func Contravariance(lower, upper reason.Reason, chain *blame.Chain) (reason.Reason, reason.Reason, *blame.Chain) {
	out, flip := contra(chain)
	if flip {
		lower, upper = upper, lower
	}
	return lower, upper, out
}

// Fact applies Unification and then Contravariance to a blamed fact.
// Other facts are returned unchanged.
func Fact(f facts.Fact) facts.Fact {
	b, ok := f.(facts.Blamed)
	if !ok || b.Blame() == nil {
		return f
	}
	c1, flip1 := unify(b.Blame())
	c2, flip2 := contra(c1)
	return b.WithChain(c2, flip1 != flip2)
}

func unify(c *blame.Chain) (*blame.Chain, bool) {
	if c == nil {
		return nil, false
	}
	out := blame.Of(c.Root())
	flip := false
	for _, f := range c.RootToLeaf() {
		if _, ok := f.(blame.UnificationMarker); ok {
			flip = !flip
			continue
		}
		if flip {
			f = blame.Flip(f)
		}
		out = out.Push(f)
	}
	return out, flip
}

func contra(c *blame.Chain) (*blame.Chain, bool) {
	if c == nil {
		return nil, false
	}
	_, flip := c.Root().(blame.ImplicitReturn)
	out := blame.Of(c.Root())
	var parent blame.Frame
	for _, f := range c.RootToLeaf() {
		switch fr := f.(type) {
		case blame.FunctionParam:
			if _, underSig := parent.(blame.FunctionSignatureCompat); underSig {
				flip = !flip
			}
			if flip {
				f = blame.Flip(fr)
			}
		case blame.TypeArgCompat:
			if fr.Variance == blame.Negative {
				flip = !flip
			} else if flip {
				f = blame.Flip(fr)
			}
		default:
			if flip {
				f = blame.Flip(fr)
			}
		}
		out = out.Push(f)
		parent = f
	}
	return out, flip
}
