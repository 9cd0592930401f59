package facts

import (
	"diagsynth/internal/reason"
	"diagsynth/internal/source"
)

type (
	// Comparison: Left and Right cannot be compared with Op.
	Comparison struct {
		Left, Right reason.Reason
		Op          string
	}

	// TypeArity: the generic Type was applied to Got type arguments, expecting Expected.
	TypeArity struct {
		Type          reason.Reason
		Expected, Got int
	}

	// ValueAsType: the value binding Reason was used in a type position.
	ValueAsType struct {
		Reason reason.Reason
	}

	// SpeculationAmbiguous: two members of Reason's union both look promising.
	SpeculationAmbiguous struct {
		Reason       reason.Reason
		Case1, Case2 Case
		Annotations  []reason.Reason
	}

	Case struct {
		Index  int
		Reason reason.Reason
	}

	DuplicateDefinition struct {
		Name   string
		Reason reason.Reason
		First  reason.Reason
	}

	RecursionLimit struct {
		Reason reason.Reason
	}

	// InternalError is handed over by inference when it gives up (e.g. on a budget).
	InternalError struct {
		Loc source.Span
		Msg string
	}

	ParseError struct {
		Loc source.Span
		Msg string
	}

	UnsupportedSyntax struct {
		Loc  source.Span
		What string
	}

	// LintFinding is reported as a warning unless Error is set by the rule's configuration.
	LintFinding struct {
		Rule   string
		Reason reason.Reason
		Detail string
		Error  bool
	}

	ModuleNotFound struct {
		Reason reason.Reason
		Module string
	}
)

func (Comparison) Kind() Kind           { return KindComparison }
func (TypeArity) Kind() Kind            { return KindTypeArity }
func (ValueAsType) Kind() Kind          { return KindValueAsType }
func (SpeculationAmbiguous) Kind() Kind { return KindSpeculationAmbiguous }
func (DuplicateDefinition) Kind() Kind  { return KindDuplicateDefinition }
func (RecursionLimit) Kind() Kind       { return KindRecursionLimit }
func (InternalError) Kind() Kind        { return KindInternalError }
func (ParseError) Kind() Kind           { return KindParseError }
func (UnsupportedSyntax) Kind() Kind    { return KindUnsupportedSyntax }
func (LintFinding) Kind() Kind          { return KindLintFinding }
func (ModuleNotFound) Kind() Kind       { return KindModuleNotFound }

func (Comparison) isFact()           {}
func (TypeArity) isFact()            {}
func (ValueAsType) isFact()          {}
func (SpeculationAmbiguous) isFact() {}
func (DuplicateDefinition) isFact()  {}
func (RecursionLimit) isFact()       {}
func (InternalError) isFact()        {}
func (ParseError) isFact()           {}
func (UnsupportedSyntax) isFact()    {}
func (LintFinding) isFact()          {}
func (ModuleNotFound) isFact()       {}
