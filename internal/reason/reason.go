package reason

import (
	"fmt"

	"diagsynth/internal/source"
)

// Origin says where the described entity was declared.
type Origin uint8

const (
	OriginSource Origin = iota
	OriginLib
	OriginBuiltin
	OriginSynthetic
)

func (o Origin) String() string {
	switch o {
	case OriginSource:
		return "source"
	case OriginLib:
		return "lib"
	case OriginBuiltin:
		return "builtin"
	case OriginSynthetic:
		return "synthetic"
	default:
		return fmt.Sprintf("Origin(%d)", o)
	}
}

// ParseOrigin accepts the names produced by Origin.String; "" means source.
func ParseOrigin(s string) (Origin, bool) {
	switch s {
	case "", "source":
		return OriginSource, true
	case "lib":
		return OriginLib, true
	case "builtin":
		return OriginBuiltin, true
	case "synthetic":
		return OriginSynthetic, true
	default:
		return OriginSource, false
	}
}

// Reason is an immutable "what is at this location" descriptor.
type Reason struct {
	Loc    source.Span
	Desc   Description
	Origin Origin
}

func New(loc source.Span, desc Description) Reason {
	return Reason{Loc: loc, Desc: desc}
}

// Code describes an expression by its source text.
func Code(loc source.Span, text string) Reason {
	return New(loc, Literal(DescCode, text))
}

// Ident describes a named binding.
func Ident(loc source.Span, name string) Reason {
	return New(loc, Named(DescIdentifier, name))
}

// Type describes an anonymous type of the given kind.
func Type(loc source.Span, kind DescKind) Reason {
	return New(loc, Desc(kind))
}

// Builtin returns a reason without a usable location.
func Builtin(desc Description) Reason {
	return Reason{Loc: source.NoSpan, Desc: desc, Origin: OriginBuiltin}
}

// WithOrigin returns a copy of r with origin o.
func (r Reason) WithOrigin(o Origin) Reason {
	r.Origin = o
	return r
}

// WithLoc returns a copy of r pointing at loc.
func (r Reason) WithLoc(loc source.Span) Reason {
	r.Loc = loc
	return r
}

func (r Reason) String() string {
	return fmt.Sprintf("%s @ %s", r.Desc, r.Loc)
}

func (r Reason) IsScalar() bool { return r.Desc.IsScalar() }

func (r Reason) IsArray() bool { return r.Desc.IsArray() }

// IsLibraryDefined reports reasons declared in library definition files.
func (r Reason) IsLibraryDefined() bool {
	return r.Origin == OriginLib
}

// IsBuiltinGlobal reports reasons for builtins that have no declaration site.
func (r Reason) IsBuiltinGlobal() bool {
	return r.Origin == OriginBuiltin
}

// IsBlamable reports whether r is a sensible place to point an error at.
func (r Reason) IsBlamable() bool {
	switch r.Origin {
	case OriginSource, OriginLib:
		return !r.Loc.Degenerate()
	default:
		return false
	}
}
