package facts

import "fmt"

// Kind enumerates the fact catalog.
type Kind uint8

const (
	KindIncompatible Kind = iota
	KindPropNotFound
	KindPropPolarityMismatch
	KindPropAccess
	KindCoercion
	KindMissingArgument
	KindExtraArgument
	KindTupleArity
	KindExpectedLiteral
	KindIncompatibleUse
	KindComparison
	KindTypeArity
	KindValueAsType
	KindSpeculationAmbiguous
	KindDuplicateDefinition
	KindRecursionLimit
	KindInternalError
	KindParseError
	KindUnsupportedSyntax
	KindLintFinding
	KindModuleNotFound

	kindCount
)

var kindNames = [...]string{
	KindIncompatible:         "incompatible",
	KindPropNotFound:         "prop_not_found",
	KindPropPolarityMismatch: "prop_polarity_mismatch",
	KindPropAccess:           "prop_access",
	KindCoercion:             "coercion",
	KindMissingArgument:      "missing_argument",
	KindExtraArgument:        "extra_argument",
	KindTupleArity:           "tuple_arity",
	KindExpectedLiteral:      "expected_literal",
	KindIncompatibleUse:      "incompatible_use",
	KindComparison:           "comparison",
	KindTypeArity:            "type_arity",
	KindValueAsType:          "value_as_type",
	KindSpeculationAmbiguous: "speculation_ambiguous",
	KindDuplicateDefinition:  "duplicate_definition",
	KindRecursionLimit:       "recursion_limit",
	KindInternalError:        "internal_error",
	KindParseError:           "parse_error",
	KindUnsupportedSyntax:    "unsupported_syntax",
	KindLintFinding:          "lint",
	KindModuleNotFound:       "module_not_found",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a fact document tag to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k := KindIncompatible; k < kindCount; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return 0, false
}

// Kinds lists the whole catalog in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := KindIncompatible; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
