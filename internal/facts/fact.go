package facts

import (
	"diagsynth/internal/blame"
	"diagsynth/internal/reason"
)

// Fact is one detected problem. The catalog is closed.
type Fact interface {
	Kind() Kind
	isFact()
}

// Branch is a sibling fact from one speculative member of a union or intersection.
type Branch struct {
	Member reason.Reason
	Fact   Fact
}

// Blamed is implemented by the incompatibility-class facts: they carry a blame
// chain and may carry speculative siblings.
type Blamed interface {
	Fact
	// Pair returns the two compared reasons; ok is false for one-sided facts.
	Pair() (lower, upper reason.Reason, ok bool)
	Blame() *blame.Chain
	Siblings() []Branch
	// WithChain returns a copy using chain; flip asks to swap the compared sides
	// where the fact's shape allows it.
	WithChain(chain *blame.Chain, flip bool) Blamed
	// WithSiblings replaces the speculative branches; facts without branches ignore it.
	WithSiblings(branches []Branch) Blamed
}

// UseKind classifies what an IncompatibleUse tried to do with a value.
type UseKind uint8

const (
	UseUnclassified UseKind = iota
	UseCall
	UseConstruct
	UseGetProp
	UseSetProp
	UseGetElem
)

func (u UseKind) String() string {
	switch u {
	case UseCall:
		return "call"
	case UseConstruct:
		return "construct"
	case UseGetProp:
		return "get_prop"
	case UseSetProp:
		return "set_prop"
	case UseGetElem:
		return "get_elem"
	default:
		return "unclassified"
	}
}

// ParseUseKind maps a document tag; unknown tags are unclassified.
func ParseUseKind(s string) UseKind {
	for u := UseCall; u <= UseGetElem; u++ {
		if u.String() == s {
			return u
		}
	}
	return UseUnclassified
}

// Access is the permission a PropAccess fact found missing.
type Access uint8

const (
	AccessRead Access = iota
	AccessWrite
)

func (a Access) String() string {
	if a == AccessWrite {
		return "write"
	}
	return "read"
}
