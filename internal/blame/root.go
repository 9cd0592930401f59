package blame

import (
	"fmt"
	"reflect"
	"slices"

	"diagsynth/internal/reason"
)

// Root is the operation that started a chain of comparisons.
type Root interface {
	isRoot()
}

type (
	UnknownOperation struct{}

	Addition struct {
		Left, Right reason.Reason
	}

	// VariableAssignment has a nil Target for assignments to anonymous places.
	VariableAssignment struct {
		Target *reason.Reason
		Source reason.Reason
	}

	Cast struct {
		From, To reason.Reason
	}

	ClassExtends struct {
		Base, Derived reason.Reason
	}

	ClassImplements struct {
		Iface, Derived reason.Reason
	}

	Coercion struct {
		From, To reason.Reason
	}

	Call struct {
		CallSite, Callee reason.Reason
	}

	MethodCall struct {
		CallSite, Callee reason.Reason
		Arguments        []reason.Reason
	}

	ReturnStatement struct {
		Value reason.Reason
	}

	ImplicitReturn struct {
		DeclaredType, Function reason.Reason
	}

	GeneratorYield struct {
		Value reason.Reason
	}

	PropertyRead struct {
		Property reason.Reason
	}

	PropertyWrite struct {
		Property, Value reason.Reason
		Target          reason.Reason
	}

	// ElementCreation is a JSX-like element construction.
	ElementCreation struct {
		Op, Component reason.Reason
	}

	GenericInstantiation struct {
		Type reason.Reason
	}

	// InternalOperation is a check the checker performed on its own behalf.
	InternalOperation struct {
		What string
	}
)

func (UnknownOperation) isRoot()     {}
func (Addition) isRoot()             {}
func (VariableAssignment) isRoot()   {}
func (Cast) isRoot()                 {}
func (ClassExtends) isRoot()         {}
func (ClassImplements) isRoot()      {}
func (Coercion) isRoot()             {}
func (Call) isRoot()                 {}
func (MethodCall) isRoot()           {}
func (ReturnStatement) isRoot()      {}
func (ImplicitReturn) isRoot()       {}
func (GeneratorYield) isRoot()       {}
func (PropertyRead) isRoot()         {}
func (PropertyWrite) isRoot()        {}
func (ElementCreation) isRoot()      {}
func (GenericInstantiation) isRoot() {}
func (InternalOperation) isRoot()    {}

// RootsEqual is structural equality of roots, reasons included. A nil and an
// empty argument list are the same list.
func RootsEqual(a, b Root) bool {
	ma, ok := a.(MethodCall)
	if !ok {
		return reflect.DeepEqual(a, b)
	}
	mb, ok := b.(MethodCall)
	if !ok {
		return false
	}
	return reflect.DeepEqual(ma.CallSite, mb.CallSite) &&
		reflect.DeepEqual(ma.Callee, mb.Callee) &&
		slices.EqualFunc(ma.Arguments, mb.Arguments, func(x, y reason.Reason) bool {
			return reflect.DeepEqual(x, y)
		})
}

// RootName is the stable tag of a root kind, used by fact documents.
func RootName(r Root) string {
	switch r.(type) {
	case UnknownOperation:
		return "unknown"
	case Addition:
		return "addition"
	case VariableAssignment:
		return "assignment"
	case Cast:
		return "cast"
	case ClassExtends:
		return "class_extends"
	case ClassImplements:
		return "class_implements"
	case Coercion:
		return "coercion"
	case Call:
		return "call"
	case MethodCall:
		return "method_call"
	case ReturnStatement:
		return "return"
	case ImplicitReturn:
		return "implicit_return"
	case GeneratorYield:
		return "yield"
	case PropertyRead:
		return "property_read"
	case PropertyWrite:
		return "property_write"
	case ElementCreation:
		return "element_creation"
	case GenericInstantiation:
		return "instantiation"
	case InternalOperation:
		return "internal"
	default:
		panic(fmt.Sprintf("blame: unknown root %T", r))
	}
}
