package report

import (
	"fmt"

	"diagsynth/internal/diag"
	"diagsynth/internal/facts"
)

// Classification is what renderers need to format a diagnostic and pick an exit code.
type Classification struct {
	Severity diag.Severity
	Code     diag.Code
	Kind     diag.Kind
	LintRule string
}

// Classify maps a fact to its severity, code and kind.
func Classify(f facts.Fact) Classification {
	typ := func(code diag.Code) Classification {
		return Classification{Severity: diag.SevError, Code: code, Kind: diag.KindTypeError}
	}
	switch f := f.(type) {
	case facts.Incompatible:
		return typ(diag.TypIncompatible)
	case facts.PropNotFound:
		return typ(diag.TypPropNotFound)
	case facts.PropPolarityMismatch:
		return typ(diag.TypPropPolarityMismatch)
	case facts.PropAccess:
		if f.Access == facts.AccessWrite {
			return typ(diag.TypPropNotWritable)
		}
		return typ(diag.TypPropNotReadable)
	case facts.Coercion:
		return typ(diag.TypCoercion)
	case facts.MissingArgument:
		return typ(diag.TypMissingArgument)
	case facts.ExtraArgument:
		return typ(diag.TypExtraArgument)
	case facts.TupleArity:
		return typ(diag.TypTupleArity)
	case facts.ExpectedLiteral:
		return typ(diag.TypExpectedLiteral)
	case facts.IncompatibleUse:
		return typ(diag.TypIncompatibleUse)
	case facts.Comparison:
		return typ(diag.TypComparison)
	case facts.TypeArity:
		return typ(diag.TypTypeArity)
	case facts.ValueAsType:
		return typ(diag.TypValueAsType)
	case facts.SpeculationAmbiguous:
		return typ(diag.TypSpeculationAmbiguous)
	case facts.ModuleNotFound:
		return typ(diag.TypModuleNotFound)
	case facts.DuplicateDefinition:
		return Classification{Severity: diag.SevError, Code: diag.TypDuplicateDefinition, Kind: diag.KindDuplicateDefinition}
	case facts.RecursionLimit:
		return Classification{Severity: diag.SevError, Code: diag.TypRecursionLimit, Kind: diag.KindRecursionLimit}
	case facts.InternalError:
		return Classification{Severity: diag.SevError, Code: diag.IntInternalError, Kind: diag.KindInternal}
	case facts.ParseError:
		return Classification{Severity: diag.SevError, Code: diag.SynParseError, Kind: diag.KindParse}
	case facts.UnsupportedSyntax:
		return Classification{Severity: diag.SevError, Code: diag.SynUnsupportedSyntax, Kind: diag.KindParse}
	case facts.LintFinding:
		sev := diag.SevWarning
		if f.Error {
			sev = diag.SevError
		}
		return Classification{Severity: sev, Code: diag.LntFinding, Kind: diag.KindLint, LintRule: f.Rule}
	default:
		panic(fmt.Sprintf("report: unknown fact %T", f))
	}
}
