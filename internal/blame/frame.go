package blame

import (
	"fmt"

	"diagsynth/internal/reason"
)

// Frame is one nested comparison step of a chain.
// The set of frames is closed; consumers switch over it exhaustively.
type Frame interface {
	isFrame()
}

type (
	// FunctionParam compares the Index-th (1-based) parameters of two functions.
	FunctionParam struct {
		Index        int
		Name         string
		Lower, Upper reason.Reason
	}

	FunctionRestParam struct {
		Lower, Upper reason.Reason
	}

	FunctionReturn struct {
		Lower, Upper reason.Reason
	}

	// FunctionSignatureCompat wraps the param/return frames of a function-to-function check.
	FunctionSignatureCompat struct {
		Lower, Upper reason.Reason
	}

	// PropertyCompat compares a property; Name == "" stands for the indexer.
	PropertyCompat struct {
		Name         string
		Lower, Upper reason.Reason
		IsSentinel   bool
	}

	IndexerKeyCompat struct {
		Lower, Upper reason.Reason
	}

	// TupleElementCompat compares tuple slots; Index is 0-based.
	TupleElementCompat struct {
		Index        int
		Lower, Upper reason.Reason
	}

	TypeArgCompat struct {
		Name         string
		Lower, Upper reason.Reason
		Variance     Polarity
	}

	TypeParamBound struct {
		Name string
	}

	MissingArgument struct {
		DefinitionSite reason.Reason
		CallSite       reason.Reason
	}

	ImplicitTypeParam struct{}

	ReactConfigCheck struct{}

	// UnificationMarker records that the check below it ran in the opposite
	// direction as half of a unification.
	UnificationMarker struct{}
)

func (FunctionParam) isFrame()           {}
func (FunctionRestParam) isFrame()       {}
func (FunctionReturn) isFrame()          {}
func (FunctionSignatureCompat) isFrame() {}
func (PropertyCompat) isFrame()          {}
func (IndexerKeyCompat) isFrame()        {}
func (TupleElementCompat) isFrame()      {}
func (TypeArgCompat) isFrame()           {}
func (TypeParamBound) isFrame()          {}
func (MissingArgument) isFrame()         {}
func (ImplicitTypeParam) isFrame()       {}
func (ReactConfigCheck) isFrame()        {}
func (UnificationMarker) isFrame()       {}

// FramePair returns the compared pair of f, if the frame carries one.
func FramePair(f Frame) (lower, upper reason.Reason, ok bool) {
	switch f := f.(type) {
	case FunctionParam:
		return f.Lower, f.Upper, true
	case FunctionRestParam:
		return f.Lower, f.Upper, true
	case FunctionReturn:
		return f.Lower, f.Upper, true
	case FunctionSignatureCompat:
		return f.Lower, f.Upper, true
	case PropertyCompat:
		return f.Lower, f.Upper, true
	case IndexerKeyCompat:
		return f.Lower, f.Upper, true
	case TupleElementCompat:
		return f.Lower, f.Upper, true
	case TypeArgCompat:
		return f.Lower, f.Upper, true
	case TypeParamBound, MissingArgument, ImplicitTypeParam, ReactConfigCheck, UnificationMarker:
		return reason.Reason{}, reason.Reason{}, false
	default:
		panic(fmt.Sprintf("blame: unknown frame %T", f))
	}
}

// Flip swaps lower and upper inside f. Frames without a pair are returned unchanged.
func Flip(f Frame) Frame {
	switch f := f.(type) {
	case FunctionParam:
		f.Lower, f.Upper = f.Upper, f.Lower
		return f
	case FunctionRestParam:
		f.Lower, f.Upper = f.Upper, f.Lower
		return f
	case FunctionReturn:
		f.Lower, f.Upper = f.Upper, f.Lower
		return f
	case FunctionSignatureCompat:
		f.Lower, f.Upper = f.Upper, f.Lower
		return f
	case PropertyCompat:
		f.Lower, f.Upper = f.Upper, f.Lower
		return f
	case IndexerKeyCompat:
		f.Lower, f.Upper = f.Upper, f.Lower
		return f
	case TupleElementCompat:
		f.Lower, f.Upper = f.Upper, f.Lower
		return f
	case TypeArgCompat:
		f.Lower, f.Upper = f.Upper, f.Lower
		return f
	case TypeParamBound, MissingArgument, ImplicitTypeParam, ReactConfigCheck, UnificationMarker:
		return f
	default:
		panic(fmt.Sprintf("blame: unknown frame %T", f))
	}
}

// FrameName is the stable tag of a frame kind, used by fact documents.
func FrameName(f Frame) string {
	switch f.(type) {
	case FunctionParam:
		return "function_param"
	case FunctionRestParam:
		return "function_rest_param"
	case FunctionReturn:
		return "function_return"
	case FunctionSignatureCompat:
		return "function_signature"
	case PropertyCompat:
		return "property"
	case IndexerKeyCompat:
		return "indexer_key"
	case TupleElementCompat:
		return "tuple_element"
	case TypeArgCompat:
		return "type_arg"
	case TypeParamBound:
		return "type_param_bound"
	case MissingArgument:
		return "missing_argument"
	case ImplicitTypeParam:
		return "implicit_type_param"
	case ReactConfigCheck:
		return "react_config"
	case UnificationMarker:
		return "unification"
	default:
		panic(fmt.Sprintf("blame: unknown frame %T", f))
	}
}
