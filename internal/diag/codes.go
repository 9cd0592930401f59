package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Синтаксис
	SynInfo              Code = 2000
	SynParseError        Code = 2001
	SynUnsupportedSyntax Code = 2002

	// Типы
	TypInfo                 Code = 3000
	TypIncompatible         Code = 3001
	TypPropNotFound         Code = 3002
	TypPropPolarityMismatch Code = 3003
	TypPropNotReadable      Code = 3004
	TypPropNotWritable      Code = 3005
	TypCoercion             Code = 3006
	TypMissingArgument      Code = 3007
	TypExtraArgument        Code = 3008
	TypTupleArity           Code = 3009
	TypExpectedLiteral      Code = 3010
	TypIncompatibleUse      Code = 3011
	TypComparison           Code = 3012
	TypTypeArity            Code = 3013
	TypValueAsType          Code = 3014
	TypSpeculationAmbiguous Code = 3015
	TypDuplicateDefinition  Code = 3016
	TypModuleNotFound       Code = 3017
	TypRecursionLimit       Code = 3018

	// Ввод/вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002

	// Линтер
	LntInfo    Code = 6000
	LntFinding Code = 6001

	// Наблюдаемость
	ObsInfo    Code = 7000
	ObsTimings Code = 7001

	// Внутренние
	IntInfo          Code = 9000
	IntInternalError Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	SynInfo:                 "Syntax information",
	SynParseError:           "Parse error",
	SynUnsupportedSyntax:    "Unsupported syntax",
	TypInfo:                 "Type information",
	TypIncompatible:         "Incompatible types",
	TypPropNotFound:         "Property not found",
	TypPropPolarityMismatch: "Property variance mismatch",
	TypPropNotReadable:      "Property not readable",
	TypPropNotWritable:      "Property not writable",
	TypCoercion:             "Implicit coercion",
	TypMissingArgument:      "Missing argument",
	TypExtraArgument:        "Extra argument",
	TypTupleArity:           "Tuple arity mismatch",
	TypExpectedLiteral:      "Literal type expected",
	TypIncompatibleUse:      "Incompatible use",
	TypComparison:           "Invalid comparison",
	TypTypeArity:            "Wrong number of type arguments",
	TypValueAsType:          "Value used as a type",
	TypSpeculationAmbiguous: "Ambiguous speculation",
	TypDuplicateDefinition:  "Duplicate definition",
	TypModuleNotFound:       "Module not found",
	TypRecursionLimit:       "Recursion limit exceeded",
	IOInfo:                  "I/O information",
	IOLoadFileError:         "I/O load file error",
	IODecodeError:           "Fact document decode error",
	LntInfo:                 "Lint information",
	LntFinding:              "Lint finding",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
	IntInfo:                 "Internal information",
	IntInternalError:        "Internal error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
