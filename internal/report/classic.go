package report

import (
	"fmt"

	"diagsynth/internal/blame"
	"diagsynth/internal/diag"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
	"diagsynth/internal/source"
)

const (
	msgIncompatible   = "This type is incompatible with"
	msgReturn         = "This type is incompatible with the expected return type of"
	msgImplicitReturn = "This type is incompatible with an implicitly-returned"
	msgLibraryNote    = "inconsistent use of library definitions"
)

// classicState is the running (pair, message, extra) of the leaf-to-root unwrap.
type classicState struct {
	lower, upper reason.Reason
	paired       bool
	msg          string
	core         []diag.Info
	reasons      []reason.Reason
	extra        []diag.InfoTree
}

func pairState(lower, upper reason.Reason, msg string) classicState {
	return classicState{
		lower:  lower,
		upper:  upper,
		paired: true,
		msg:    msg,
		core: []diag.Info{
			{Loc: lower.Loc, Lines: []string{desc(lower)}},
			{Loc: upper.Loc, Lines: []string{msg, desc(upper)}},
		},
		reasons: []reason.Reason{lower, upper},
	}
}

func oneSided(r reason.Reason, lines ...string) classicState {
	return classicState{
		lower:   r,
		upper:   r,
		core:    []diag.Info{{Loc: r.Loc, Lines: lines}},
		reasons: []reason.Reason{r},
	}
}

func located(loc source.Span, lines ...string) classicState {
	return classicState{
		lower: reason.New(loc, reason.Desc(reason.DescUnknown)),
		core:  []diag.Info{{Loc: loc, Lines: lines}},
	}
}

// push nests the current core under a labelled node and continues with the frame's pair.
func (st classicState) push(lower, upper reason.Reason, label []diag.Info) classicState {
	children := make([]diag.InfoTree, 0, len(st.extra)+1)
	children = append(children, diag.Leaf(st.core...))
	children = append(children, st.extra...)
	next := pairState(lower, upper, msgIncompatible)
	next.extra = []diag.InfoTree{diag.Node(label, children...)}
	return next
}

// BuildClassic renders f as a primary info list plus a nested extra tree.
// sourceFile is the checked file, used for the library-definitions note.
func BuildClassic(f facts.Fact, sourceFile source.FileID) diag.Classic {
	st, chain, force := classicSeed(f)
	if b, ok := f.(facts.Blamed); ok {
		if chain != nil {
			st = unwrapClassic(st, chain, force)
		}
		st.extra = append(st.extra, speculationExtra(b, sourceFile)...)
	}

	primary := st.core
	if len(st.reasons) > 0 && allLibrary(st.reasons) {
		note := diag.Info{Loc: source.Span{File: sourceFile}, Lines: []string{msgLibraryNote}}
		primary = append([]diag.Info{note}, primary...)
	}
	return diag.Classic{PrimaryInfos: primary, Extra: st.extra}
}

func allLibrary(rs []reason.Reason) bool {
	for _, r := range rs {
		if !r.IsLibraryDefined() {
			return false
		}
	}
	return true
}

// unwrapClassic walks from the leaf of c to its root. force keeps the fact's
// own message when the root would replace it; it is decided by each call site
// and structural frames always pass false.
func unwrapClassic(st classicState, c *blame.Chain, force bool) classicState {
	frame, ok := c.Leaf()
	if !ok {
		return classicRoot(st, c.Root(), force)
	}
	parent := c.Parent()
	underSig := false
	if pf, ok := parent.Leaf(); ok {
		_, underSig = pf.(blame.FunctionSignatureCompat)
	}

	switch fr := frame.(type) {
	case blame.PropertyCompat:
		label := "Indexable signature is incompatible:"
		if fr.Name != "" {
			label = fmt.Sprintf("Property `%s` is incompatible:", fr.Name)
		}
		return unwrapClassic(st.push(fr.Lower, fr.Upper, labelAt(fr.Lower, label)), parent, false)
	case blame.IndexerKeyCompat:
		return unwrapClassic(st.push(fr.Lower, fr.Upper, labelAt(fr.Lower, "The indexer property's key is incompatible:")), parent, false)
	case blame.TupleElementCompat:
		label := fmt.Sprintf("Index %d of the tuple is incompatible:", fr.Index)
		return unwrapClassic(st.push(fr.Lower, fr.Upper, labelAt(fr.Lower, label)), parent, false)
	case blame.TypeArgCompat:
		label := fmt.Sprintf("Type argument `%s` is incompatible:", fr.Name)
		return unwrapClassic(st.push(fr.Lower, fr.Upper, labelAt(fr.Lower, label)), parent, false)
	case blame.TypeParamBound:
		label := fmt.Sprintf("The bound of type parameter `%s` is not satisfied:", fr.Name)
		return unwrapClassic(st.push(st.lower, st.upper, labelAt(st.lower, label)), parent, false)
	case blame.MissingArgument:
		label := []diag.Info{
			{Loc: fr.CallSite.Loc, Lines: []string{"Too few arguments passed to"}},
			{Loc: fr.DefinitionSite.Loc, Lines: []string{desc(fr.DefinitionSite)}},
		}
		return unwrapClassic(st.push(fr.CallSite, fr.DefinitionSite, label), parent, false)
	case blame.FunctionParam:
		if !underSig {
			return unwrapClassic(st, parent, force)
		}
		label := fmt.Sprintf("The %s parameter is incompatible:", ordinal(fr.Index))
		return unwrapClassic(st.push(fr.Lower, fr.Upper, labelAt(fr.Lower, label)), parent, false)
	case blame.FunctionReturn:
		if !underSig {
			return unwrapClassic(st, parent, force)
		}
		return unwrapClassic(st.push(fr.Lower, fr.Upper, labelAt(fr.Lower, "The return type is incompatible:")), parent, false)
	case blame.FunctionSignatureCompat, blame.FunctionRestParam, blame.ImplicitTypeParam,
		blame.ReactConfigCheck, blame.UnificationMarker:
		return unwrapClassic(st, parent, force)
	default:
		panic(fmt.Sprintf("report: unknown frame %T", fr))
	}
}

func labelAt(r reason.Reason, label string) []diag.Info {
	return []diag.Info{{Loc: r.Loc, Lines: []string{label}}}
}

func classicRoot(st classicState, root blame.Root, force bool) classicState {
	switch root.(type) {
	case blame.ReturnStatement:
		if !force && st.paired {
			return withMessage(st, msgReturn)
		}
		return st
	case blame.ImplicitReturn:
		if !force && st.paired {
			return withMessage(st, msgImplicitReturn)
		}
		return st
	}
	if op, ok := opReason(root); ok && len(st.core) > 0 {
		primary := st.core[0].Loc
		if !op.Loc.Degenerate() && !op.Loc.Contains(primary) {
			st.core = append([]diag.Info{{Loc: op.Loc}}, st.core...)
		}
	}
	return st
}

func withMessage(st classicState, msg string) classicState {
	extra := st.extra
	next := pairState(st.lower, st.upper, msg)
	next.extra = extra
	return next
}

// opReason is the reason of the operation itself for call-like roots.
func opReason(root blame.Root) (reason.Reason, bool) {
	switch r := root.(type) {
	case blame.Call:
		return r.CallSite, true
	case blame.MethodCall:
		return r.CallSite, true
	case blame.ElementCreation:
		return r.Op, true
	case blame.VariableAssignment:
		return r.Source, true
	case blame.Cast:
		return r.From, true
	case blame.UnknownOperation, blame.Addition, blame.ClassExtends, blame.ClassImplements,
		blame.Coercion, blame.ReturnStatement, blame.ImplicitReturn, blame.GeneratorYield,
		blame.PropertyRead, blame.PropertyWrite, blame.GenericInstantiation, blame.InternalOperation:
		return reason.Reason{}, false
	default:
		panic(fmt.Sprintf("report: unknown root %T", r))
	}
}

// classicSeed returns the fact's own core, its chain and whether its message
// is specific enough to survive a message-replacing root.
func classicSeed(f facts.Fact) (classicState, *blame.Chain, bool) {
	switch f := f.(type) {
	case facts.Incompatible:
		return pairState(f.Lower, f.Upper, msgIncompatible), f.Chain, false
	case facts.PropNotFound:
		return pairState(f.PropReason, f.Object, "Property not found in"), f.Chain, true
	case facts.PropPolarityMismatch:
		msg := fmt.Sprintf("Property `%s` is %s in the first type but %s in",
			f.Prop, f.LowerPolarity.Describe(), f.UpperPolarity.Describe())
		return pairState(f.Lower, f.Upper, msg), f.Chain, true
	case facts.PropAccess:
		verb := "readable"
		if f.Access == facts.AccessWrite {
			verb = "writable"
		}
		return oneSided(f.Reason, desc(f.Reason), fmt.Sprintf("Property `%s` is not %s", f.Prop, verb)), f.Chain, true
	case facts.Coercion:
		return pairState(f.From, f.To, "This type should not be coerced to"), f.Chain, true
	case facts.MissingArgument:
		return pairState(f.CallSite, f.Callee, "Too few arguments passed to"), f.Chain, true
	case facts.ExtraArgument:
		msg := fmt.Sprintf("No more than %d arguments are expected by", f.Expected)
		if f.Expected == 1 {
			msg = "No more than 1 argument is expected by"
		}
		return pairState(f.CallSite, f.Callee, msg), f.Chain, true
	case facts.TupleArity:
		msg := fmt.Sprintf("Tuple of %s is incompatible with the %s of",
			plural(f.LowerArity, "element"), plural(f.UpperArity, "element"))
		return pairState(f.Lower, f.Upper, msg), f.Chain, true
	case facts.ExpectedLiteral:
		msg := fmt.Sprintf("This type is incompatible with the literal `%s` expected by", f.Expected)
		return pairState(f.Lower, f.Upper, msg), f.Chain, true
	case facts.IncompatibleUse:
		return pairState(f.Lower, f.Upper, useMessage(f)), f.Chain, true
	case facts.Comparison:
		msg := "This type cannot be compared to"
		if f.Op != "" {
			msg = fmt.Sprintf("This type cannot be compared with `%s` to", f.Op)
		}
		return pairState(f.Left, f.Right, msg), nil, true
	case facts.TypeArity:
		return oneSided(f.Type, fmt.Sprintf("Cannot use %s with %s; it expects %d",
			desc(f.Type), plural(f.Got, "type argument"), f.Expected)), nil, true
	case facts.ValueAsType:
		return oneSided(f.Reason, fmt.Sprintf("Cannot use %s as a type because it is a value", desc(f.Reason))), nil, true
	case facts.SpeculationAmbiguous:
		return ambiguityState(f), nil, true
	case facts.DuplicateDefinition:
		st := oneSided(f.Reason, fmt.Sprintf("Cannot redeclare `%s`", f.Name))
		st.core = append(st.core, diag.Info{Loc: f.First.Loc, Lines: []string{fmt.Sprintf("`%s` is already declared here", f.Name)}})
		st.reasons = append(st.reasons, f.First)
		return st, nil, true
	case facts.RecursionLimit:
		return oneSided(f.Reason, "*** Recursion limit exceeded ***"), nil, true
	case facts.InternalError:
		return located(f.Loc, "Internal error: "+f.Msg), nil, true
	case facts.ParseError:
		return located(f.Loc, f.Msg), nil, true
	case facts.UnsupportedSyntax:
		return located(f.Loc, "Unsupported syntax: "+f.What), nil, true
	case facts.LintFinding:
		return oneSided(f.Reason, f.Detail), nil, true
	case facts.ModuleNotFound:
		return oneSided(f.Reason, fmt.Sprintf("Cannot resolve module `%s`", f.Module)), nil, true
	default:
		panic(fmt.Sprintf("report: unknown fact %T", f))
	}
}

func useMessage(f facts.IncompatibleUse) string {
	switch f.Use {
	case facts.UseCall:
		return "This type cannot be called by"
	case facts.UseConstruct:
		return "This type cannot be constructed by"
	case facts.UseGetProp:
		return "This type has no readable properties for"
	case facts.UseSetProp:
		return "This type has no writable properties for"
	case facts.UseGetElem:
		return "This type cannot be indexed by"
	default:
		return fmt.Sprintf("Type is incompatible with (unclassified use type: %s)", f.Detail)
	}
}
