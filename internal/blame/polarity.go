package blame

import "fmt"

// Polarity is the variance of a position: how a type parameter or property
// may be used.
type Polarity uint8

const (
	Neutral Polarity = iota
	Positive
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Neutral:
		return "neutral"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return fmt.Sprintf("Polarity(%d)", p)
	}
}

// ParsePolarity accepts the names from String plus the usual aliases; "" is neutral.
func ParsePolarity(s string) (Polarity, bool) {
	switch s {
	case "", "neutral", "invariant":
		return Neutral, true
	case "positive", "covariant", "+":
		return Positive, true
	case "negative", "contravariant", "-":
		return Negative, true
	default:
		return Neutral, false
	}
}

// Inverse swaps positive and negative.
func (p Polarity) Inverse() Polarity {
	switch p {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return Neutral
	}
}

// Describe returns the phrase used in messages.
func (p Polarity) Describe() string {
	switch p {
	case Positive:
		return "read-only"
	case Negative:
		return "write-only"
	default:
		return "readable and writable"
	}
}
