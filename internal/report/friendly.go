package report

import (
	"fmt"
	"strconv"
	"strings"

	"diagsynth/internal/blame"
	"diagsynth/internal/diag"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
	"diagsynth/internal/source"
)

// BuildFriendly renders f as a sentence. It returns false in classic mode or
// when f has no friendly rendering; callers fall back to BuildClassic.
func BuildFriendly(f facts.Fact, mode Mode) (diag.Friendly, bool) {
	if mode != ModeFriendly {
		return diag.Friendly{}, false
	}
	b, blamed := f.(facts.Blamed)
	if !blamed {
		return friendlyPlain(f)
	}
	loc, final, ok := friendlyFinal(b)
	if !ok {
		return diag.Friendly{}, false
	}
	w := &friendlyWalk{loc: loc, final: final}
	w.steps = append(w.steps, w.loc)
	rootLoc, rootClause := w.run(b.Blame())
	return diag.Friendly{
		RootLoc:    rootLoc,
		RootClause: rootClause,
		Primary:    w.loc,
		Frames:     w.frames,
		Final:      w.final,
	}, true
}

// FlatMessage is root + " because " + ("in " + frames + ", ")? + final.
func FlatMessage(fr diag.Friendly) string {
	var parts []diag.Text
	final := fr.Final
	switch {
	case len(fr.RootClause) > 0:
		parts = append(parts, fr.RootClause...)
		parts = append(parts, text(" because "))
		if len(fr.Frames) > 0 {
			parts = append(parts, text("in "))
			parts = append(parts, joinFrames(fr.Frames)...)
			parts = append(parts, text(", "))
		}
	case len(fr.Frames) > 0:
		parts = append(parts, text("In "))
		parts = append(parts, joinFrames(fr.Frames)...)
		parts = append(parts, text(", "))
	default:
		final = capitalize(final)
	}
	parts = append(parts, final...)
	return diag.RenderText(parts)
}

type friendlyWalk struct {
	loc    source.Span
	frames [][]diag.Text // root to leaf
	final  []diag.Text
	steps  []source.Span // loc after every step, for tests
}

// refine moves the running location to loc unless loc already contains it.
// Degenerate locations never replace a valid one.
func (w *friendlyWalk) refine(loc source.Span) {
	if !loc.Degenerate() && !loc.Contains(w.loc) {
		w.loc = loc
	}
	w.steps = append(w.steps, w.loc)
}

func (w *friendlyWalk) frame(loc source.Span, fragment ...diag.Text) {
	w.refine(loc)
	w.frames = append([][]diag.Text{fragment}, w.frames...)
}

func (w *friendlyWalk) run(c *blame.Chain) (source.Span, []diag.Text) {
	cur := c
	for {
		frame, ok := cur.Leaf()
		if !ok {
			return w.root(cur.Root())
		}
		parent := cur.Parent()
		switch fr := frame.(type) {
		case blame.FunctionParam:
			if parent.IsRoot() {
				if loc, clause, ok := boundArgument(fr, parent.Root()); ok {
					w.refineRoot(loc, nil)
					return loc, clause
				}
			}
			w.frame(fr.Lower.Loc, text("the "+ordinal(fr.Index)+" argument"))
		case blame.FunctionReturn:
			w.frame(fr.Lower.Loc, text("the return value"))
		case blame.FunctionSignatureCompat:
			w.refine(fr.Lower.Loc)
		case blame.PropertyCompat:
			if fr.Name == "" {
				w.frame(fr.Lower.Loc, text("the indexer property"))
				break
			}
			names := []string{fr.Name}
			w.refine(fr.Lower.Loc)
			for {
				pf, ok := parent.Leaf()
				if !ok {
					break
				}
				prop, isProp := pf.(blame.PropertyCompat)
				if !isProp || prop.Name == "" {
					break
				}
				names = append(names, prop.Name)
				w.refine(prop.Lower.Loc)
				parent = parent.Parent()
			}
			w.frames = append([][]diag.Text{{text("property "), code(strings.Join(names, "."))}}, w.frames...)
		case blame.IndexerKeyCompat:
			w.frame(fr.Lower.Loc, text("the indexer property's key"))
		case blame.TupleElementCompat:
			w.frame(fr.Lower.Loc, text("index "+strconv.Itoa(fr.Index)))
		case blame.TypeArgCompat:
			w.frame(fr.Lower.Loc, text("type argument "), code(fr.Name))
		case blame.MissingArgument:
			// the missing argument explains everything below it
			w.frames = nil
			w.final = []diag.Text{ref(fr.DefinitionSite), text(" requires another argument.")}
			w.refine(fr.CallSite.Loc)
		case blame.FunctionRestParam, blame.TypeParamBound, blame.ImplicitTypeParam,
			blame.ReactConfigCheck, blame.UnificationMarker:
		default:
			panic(fmt.Sprintf("report: unknown frame %T", fr))
		}
		cur = parent
	}
}

// boundArgument handles a parameter check directly under a method call with
// known arguments: "Cannot call `f` with `x` bound to `p`".
func boundArgument(fr blame.FunctionParam, root blame.Root) (source.Span, []diag.Text, bool) {
	mc, ok := root.(blame.MethodCall)
	if !ok || fr.Name == "" || fr.Index < 1 || fr.Index > len(mc.Arguments) {
		return source.Span{}, nil, false
	}
	arg := mc.Arguments[fr.Index-1]
	return arg.Loc, []diag.Text{
		text("Cannot call "), ref(mc.Callee), text(" with "), ref(arg), text(" bound to "), code(fr.Name),
	}, true
}

func (w *friendlyWalk) root(root blame.Root) (source.Span, []diag.Text) {
	r, specific, clause, ok := rootPhrase(root)
	if !ok {
		return source.NoSpan, nil
	}
	w.refineRoot(r, specific)
	return r, clause
}

// refineRoot keeps the running location when the root contains it, otherwise
// prefers the root's specific sub-location when that lies inside the root.
func (w *friendlyWalk) refineRoot(rootLoc source.Span, specific *reason.Reason) {
	switch {
	case rootLoc.Degenerate() || rootLoc.Contains(w.loc):
	case specific != nil && !specific.Loc.Degenerate() && rootLoc.Contains(specific.Loc):
		w.loc = specific.Loc
	default:
		w.loc = rootLoc
	}
	w.steps = append(w.steps, w.loc)
}

// rootPhrase returns the root location, an optional specific sub-location and the clause.
func rootPhrase(root blame.Root) (source.Span, *reason.Reason, []diag.Text, bool) {
	switch r := root.(type) {
	case blame.UnknownOperation, blame.InternalOperation:
		return source.NoSpan, nil, nil, false
	case blame.Addition:
		return r.Left.Loc.Cover(r.Right.Loc), nil,
			[]diag.Text{text("Cannot add "), ref(r.Left), text(" and "), ref(r.Right)}, true
	case blame.VariableAssignment:
		clause := []diag.Text{text("Cannot assign "), ref(r.Source)}
		if r.Target != nil {
			clause = append(clause, text(" to "), ref(*r.Target))
		}
		return r.Source.Loc, nil, clause, true
	case blame.Cast:
		return r.From.Loc, nil, []diag.Text{text("Cannot cast "), ref(r.From), text(" to "), ref(r.To)}, true
	case blame.ClassExtends:
		return r.Derived.Loc, nil, []diag.Text{text("Cannot extend "), ref(r.Base), text(" with "), ref(r.Derived)}, true
	case blame.ClassImplements:
		return r.Derived.Loc, nil, []diag.Text{text("Cannot implement "), ref(r.Iface), text(" with "), ref(r.Derived)}, true
	case blame.Coercion:
		return r.From.Loc, nil, []diag.Text{text("Cannot coerce "), ref(r.From), text(" to "), ref(r.To)}, true
	case blame.Call:
		callee := r.Callee
		return r.CallSite.Loc, &callee, []diag.Text{text("Cannot call "), ref(r.Callee)}, true
	case blame.MethodCall:
		callee := r.Callee
		return r.CallSite.Loc, &callee, []diag.Text{text("Cannot call "), ref(r.Callee)}, true
	case blame.ReturnStatement:
		return r.Value.Loc, nil, []diag.Text{text("Cannot return "), ref(r.Value)}, true
	case blame.ImplicitReturn:
		return r.DeclaredType.Loc, nil, []diag.Text{
			text("Cannot expect "), ref(r.DeclaredType), text(" as the return type of "), ref(r.Function),
		}, true
	case blame.GeneratorYield:
		return r.Value.Loc, nil, []diag.Text{text("Cannot yield "), ref(r.Value)}, true
	case blame.PropertyRead:
		return r.Property.Loc, nil, []diag.Text{text("Cannot get "), ref(r.Property)}, true
	case blame.PropertyWrite:
		return r.Target.Loc, nil, []diag.Text{text("Cannot assign "), ref(r.Value), text(" to "), ref(r.Property)}, true
	case blame.ElementCreation:
		component := r.Component
		return r.Op.Loc, &component, []diag.Text{text("Cannot create "), ref(r.Component), text(" element")}, true
	case blame.GenericInstantiation:
		return r.Type.Loc, nil, []diag.Text{text("Cannot instantiate "), ref(r.Type)}, true
	default:
		panic(fmt.Sprintf("report: unknown root %T", r))
	}
}

// friendlyFinal returns the starting location and final clause of a blamed fact.
func friendlyFinal(b facts.Blamed) (source.Span, []diag.Text, bool) {
	switch f := b.(type) {
	case facts.Incompatible:
		return f.Lower.Loc, []diag.Text{ref(f.Lower), text(" is incompatible with "), ref(f.Upper), text(".")}, true
	case facts.PropNotFound:
		final := []diag.Text{text("property "), code(f.Prop), text(" is missing in "), ref(f.Object)}
		if s, ok := Suggest(f.Prop, f.Candidates); ok {
			final = append(final, text(" (did you mean "), code(s), text("?)"))
		}
		return f.PropReason.Loc, append(final, text(".")), true
	case facts.PropPolarityMismatch:
		return f.Lower.Loc, []diag.Text{
			text("property "), code(f.Prop), text(" is " + f.LowerPolarity.Describe() + " in "), ref(f.Lower),
			text(" but " + f.UpperPolarity.Describe() + " in "), ref(f.Upper), text("."),
		}, true
	case facts.PropAccess:
		verb := "readable"
		if f.Access == facts.AccessWrite {
			verb = "writable"
		}
		return f.Reason.Loc, []diag.Text{text("property "), code(f.Prop), text(" is not " + verb + ".")}, true
	case facts.Coercion:
		return f.From.Loc, []diag.Text{ref(f.From), text(" should not be coerced.")}, true
	case facts.MissingArgument:
		return f.CallSite.Loc, []diag.Text{ref(f.Callee), text(" requires another argument.")}, true
	case facts.ExtraArgument:
		expects := "no arguments"
		if f.Expected > 0 {
			expects = "no more than " + plural(f.Expected, "argument")
		}
		return f.CallSite.Loc, []diag.Text{ref(f.Callee), text(" expects " + expects + ".")}, true
	case facts.TupleArity:
		return f.Lower.Loc, []diag.Text{
			ref(f.Lower), text(" has " + plural(f.LowerArity, "element") + " but "),
			ref(f.Upper), text(" has " + plural(f.UpperArity, "element") + "."),
		}, true
	case facts.ExpectedLiteral:
		return f.Lower.Loc, []diag.Text{ref(f.Lower), text(" is incompatible with literal "), code(f.Expected), text(".")}, true
	case facts.IncompatibleUse:
		var tail string
		switch f.Use {
		case facts.UseCall:
			tail = " is not a function."
		case facts.UseConstruct:
			tail = " is not a class."
		case facts.UseGetProp:
			tail = " does not have readable properties."
		case facts.UseSetProp:
			tail = " does not have writable properties."
		case facts.UseGetElem:
			tail = " cannot be indexed."
		default:
			return source.Span{}, nil, false
		}
		return f.Lower.Loc, []diag.Text{ref(f.Lower), text(tail)}, true
	default:
		panic(fmt.Sprintf("report: unknown blamed fact %T", b))
	}
}

// friendlyPlain renders facts that carry no chain.
func friendlyPlain(f facts.Fact) (diag.Friendly, bool) {
	single := func(loc source.Span, final ...diag.Text) (diag.Friendly, bool) {
		return diag.Friendly{RootLoc: source.NoSpan, Primary: loc, Final: capitalize(final)}, true
	}
	switch f := f.(type) {
	case facts.Comparison:
		op := []diag.Text{}
		if f.Op != "" {
			op = []diag.Text{text(" with "), code(f.Op)}
		}
		final := append([]diag.Text{text("cannot compare "), ref(f.Left), text(" to "), ref(f.Right)}, op...)
		return single(f.Left.Loc.Cover(f.Right.Loc), append(final, text("."))...)
	case facts.TypeArity:
		return single(f.Type.Loc, ref(f.Type), text(" expects "+plural(f.Expected, "type argument")+
			" but "+plural(f.Got, "type argument")+" were provided."))
	case facts.ValueAsType:
		return single(f.Reason.Loc, text("cannot use "), ref(f.Reason),
			text(" as a type because it is a value. To get the type of a value use "), code("typeof"), text("."))
	case facts.SpeculationAmbiguous:
		return ambiguityFriendly(f), true
	case facts.DuplicateDefinition:
		return diag.Friendly{
			RootLoc:    f.Reason.Loc,
			RootClause: []diag.Text{text("Cannot redeclare "), code(f.Name)},
			Primary:    f.Reason.Loc,
			Final:      []diag.Text{text("it is already declared "), refAt("here", f.First), text(".")},
		}, true
	case facts.RecursionLimit:
		return single(f.Reason.Loc, text("recursion limit exceeded."))
	case facts.UnsupportedSyntax:
		return single(f.Loc, code(f.What), text(" is not supported."))
	case facts.LintFinding:
		return single(f.Reason.Loc, text(f.Detail))
	case facts.ModuleNotFound:
		return single(f.Reason.Loc, text("cannot resolve module "), code(f.Module), text("."))
	case facts.InternalError, facts.ParseError:
		return diag.Friendly{}, false
	default:
		panic(fmt.Sprintf("report: unknown fact %T", f))
	}
}
