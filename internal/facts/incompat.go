package facts

import (
	"fmt"

	"diagsynth/internal/blame"
	"diagsynth/internal/reason"
)

type (
	// Incompatible: Lower flowed into Upper and does not fit.
	Incompatible struct {
		Lower, Upper reason.Reason
		Chain        *blame.Chain
		Branches     []Branch
	}

	// PropNotFound: property Prop (described by PropReason) is missing in Object.
	// Candidates lists the properties Object does have.
	PropNotFound struct {
		Prop       string
		PropReason reason.Reason
		Object     reason.Reason
		Chain      *blame.Chain
		Branches   []Branch
		Candidates []string
	}

	// PropPolarityMismatch: Prop has incompatible variance in Lower and Upper.
	PropPolarityMismatch struct {
		Prop                         string
		Lower, Upper                 reason.Reason
		LowerPolarity, UpperPolarity blame.Polarity
		Chain                        *blame.Chain
	}

	// PropAccess: Prop cannot be read or written at Reason.
	PropAccess struct {
		Prop   string
		Reason reason.Reason
		Access Access
		Chain  *blame.Chain
	}

	// Coercion: From should not be implicitly converted to To.
	Coercion struct {
		From, To reason.Reason
		Chain    *blame.Chain
	}

	// MissingArgument: the call at CallSite passes too few arguments to Callee.
	MissingArgument struct {
		Callee, CallSite reason.Reason
		Chain            *blame.Chain
		Branches         []Branch
	}

	// ExtraArgument: the call at CallSite passes more than Expected arguments to Callee.
	ExtraArgument struct {
		Callee, CallSite reason.Reason
		Expected         int
		Chain            *blame.Chain
		Branches         []Branch
	}

	TupleArity struct {
		Lower, Upper           reason.Reason
		LowerArity, UpperArity int
		Chain                  *blame.Chain
		Branches               []Branch
	}

	// ExpectedLiteral: Lower was checked against the literal type Expected.
	ExpectedLiteral struct {
		Lower, Upper reason.Reason
		Expected     string
		Chain        *blame.Chain
		Branches     []Branch
	}

	// IncompatibleUse: Lower cannot be used the way Upper (the use site) does.
	// Detail names the use when Use is UseUnclassified.
	IncompatibleUse struct {
		Lower, Upper reason.Reason
		Use          UseKind
		Detail       string
		Chain        *blame.Chain
		Branches     []Branch
	}
)

func (Incompatible) Kind() Kind         { return KindIncompatible }
func (PropNotFound) Kind() Kind         { return KindPropNotFound }
func (PropPolarityMismatch) Kind() Kind { return KindPropPolarityMismatch }
func (PropAccess) Kind() Kind           { return KindPropAccess }
func (Coercion) Kind() Kind             { return KindCoercion }
func (MissingArgument) Kind() Kind      { return KindMissingArgument }
func (ExtraArgument) Kind() Kind        { return KindExtraArgument }
func (TupleArity) Kind() Kind           { return KindTupleArity }
func (ExpectedLiteral) Kind() Kind      { return KindExpectedLiteral }
func (IncompatibleUse) Kind() Kind      { return KindIncompatibleUse }

func (Incompatible) isFact()         {}
func (PropNotFound) isFact()         {}
func (PropPolarityMismatch) isFact() {}
func (PropAccess) isFact()           {}
func (Coercion) isFact()             {}
func (MissingArgument) isFact()      {}
func (ExtraArgument) isFact()        {}
func (TupleArity) isFact()           {}
func (ExpectedLiteral) isFact()      {}
func (IncompatibleUse) isFact()      {}

func (f Incompatible) Pair() (lower, upper reason.Reason, ok bool) { return f.Lower, f.Upper, true }
func (f Incompatible) Blame() *blame.Chain                         { return f.Chain }
func (f Incompatible) Siblings() []Branch                          { return f.Branches }
func (f Incompatible) WithChain(chain *blame.Chain, flip bool) Blamed {
	f.Chain = chain
	if flip {
		f.Lower, f.Upper = f.Upper, f.Lower
	}
	return f
}
func (f Incompatible) WithSiblings(b []Branch) Blamed { f.Branches = b; return f }

func (f PropNotFound) Pair() (lower, upper reason.Reason, ok bool) {
	return f.PropReason, f.Object, true
}
func (f PropNotFound) Blame() *blame.Chain { return f.Chain }
func (f PropNotFound) Siblings() []Branch  { return f.Branches }

// WithChain never swaps: the property and its object are not symmetric.
func (f PropNotFound) WithChain(chain *blame.Chain, _ bool) Blamed {
	f.Chain = chain
	return f
}
func (f PropNotFound) WithSiblings(b []Branch) Blamed { f.Branches = b; return f }

// NewPropPolarityMismatch validates that the two polarities actually disagree.
func NewPropPolarityMismatch(prop string, lower, upper reason.Reason, lp, up blame.Polarity, chain *blame.Chain) PropPolarityMismatch {
	if lp == blame.Neutral && up == blame.Neutral {
		panic(fmt.Sprintf("facts: polarity mismatch on %q with both sides neutral", prop))
	}
	return PropPolarityMismatch{Prop: prop, Lower: lower, Upper: upper, LowerPolarity: lp, UpperPolarity: up, Chain: chain}
}

func (f PropPolarityMismatch) Pair() (lower, upper reason.Reason, ok bool) {
	return f.Lower, f.Upper, true
}
func (f PropPolarityMismatch) Blame() *blame.Chain { return f.Chain }
func (PropPolarityMismatch) Siblings() []Branch    { return nil }
func (f PropPolarityMismatch) WithChain(chain *blame.Chain, flip bool) Blamed {
	f.Chain = chain
	if flip {
		f.Lower, f.Upper = f.Upper, f.Lower
		f.LowerPolarity, f.UpperPolarity = f.UpperPolarity, f.LowerPolarity
	}
	return f
}
func (f PropPolarityMismatch) WithSiblings([]Branch) Blamed { return f }

func (PropAccess) Pair() (lower, upper reason.Reason, ok bool) {
	return reason.Reason{}, reason.Reason{}, false
}
func (f PropAccess) Blame() *blame.Chain { return f.Chain }
func (PropAccess) Siblings() []Branch    { return nil }
func (f PropAccess) WithChain(chain *blame.Chain, _ bool) Blamed {
	f.Chain = chain
	return f
}
func (f PropAccess) WithSiblings([]Branch) Blamed { return f }

func (f Coercion) Pair() (lower, upper reason.Reason, ok bool) { return f.From, f.To, true }
func (f Coercion) Blame() *blame.Chain                         { return f.Chain }
func (Coercion) Siblings() []Branch                            { return nil }
func (f Coercion) WithChain(chain *blame.Chain, _ bool) Blamed {
	f.Chain = chain
	return f
}
func (f Coercion) WithSiblings([]Branch) Blamed { return f }

func (f MissingArgument) Pair() (lower, upper reason.Reason, ok bool) {
	return f.CallSite, f.Callee, true
}
func (f MissingArgument) Blame() *blame.Chain { return f.Chain }
func (f MissingArgument) Siblings() []Branch  { return f.Branches }
func (f MissingArgument) WithChain(chain *blame.Chain, _ bool) Blamed {
	f.Chain = chain
	return f
}
func (f MissingArgument) WithSiblings(b []Branch) Blamed { f.Branches = b; return f }

func (f ExtraArgument) Pair() (lower, upper reason.Reason, ok bool) {
	return f.CallSite, f.Callee, true
}
func (f ExtraArgument) Blame() *blame.Chain { return f.Chain }
func (f ExtraArgument) Siblings() []Branch  { return f.Branches }
func (f ExtraArgument) WithChain(chain *blame.Chain, _ bool) Blamed {
	f.Chain = chain
	return f
}
func (f ExtraArgument) WithSiblings(b []Branch) Blamed { f.Branches = b; return f }

func (f TupleArity) Pair() (lower, upper reason.Reason, ok bool) { return f.Lower, f.Upper, true }
func (f TupleArity) Blame() *blame.Chain                         { return f.Chain }
func (f TupleArity) Siblings() []Branch                          { return f.Branches }
func (f TupleArity) WithChain(chain *blame.Chain, flip bool) Blamed {
	f.Chain = chain
	if flip {
		f.Lower, f.Upper = f.Upper, f.Lower
		f.LowerArity, f.UpperArity = f.UpperArity, f.LowerArity
	}
	return f
}
func (f TupleArity) WithSiblings(b []Branch) Blamed { f.Branches = b; return f }

func (f ExpectedLiteral) Pair() (lower, upper reason.Reason, ok bool) {
	return f.Lower, f.Upper, true
}
func (f ExpectedLiteral) Blame() *blame.Chain { return f.Chain }
func (f ExpectedLiteral) Siblings() []Branch  { return f.Branches }
func (f ExpectedLiteral) WithChain(chain *blame.Chain, _ bool) Blamed {
	f.Chain = chain
	return f
}
func (f ExpectedLiteral) WithSiblings(b []Branch) Blamed { f.Branches = b; return f }

func (f IncompatibleUse) Pair() (lower, upper reason.Reason, ok bool) {
	return f.Lower, f.Upper, true
}
func (f IncompatibleUse) Blame() *blame.Chain { return f.Chain }
func (f IncompatibleUse) Siblings() []Branch  { return f.Branches }
func (f IncompatibleUse) WithChain(chain *blame.Chain, _ bool) Blamed {
	f.Chain = chain
	return f
}
func (f IncompatibleUse) WithSiblings(b []Branch) Blamed { f.Branches = b; return f }
