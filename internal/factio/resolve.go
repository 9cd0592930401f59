package factio

import (
	"fmt"
	"path/filepath"
	"slices"

	"fortio.org/safecast"

	"diagsynth/internal/blame"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
	"diagsynth/internal/source"
)

// Input is a resolved document: facts whose locations point into fs.
type Input struct {
	Path       string
	SourceFile source.FileID
	// Files holds the registered IDs in document order.
	Files []source.FileID
	Facts []facts.Fact
}

// Resolve registers the document's files in fs and converts every fact.
// Files without inline content are loaded relative to baseDir.
func (doc *Document) Resolve(fs *source.FileSet, baseDir string) (*Input, error) {
	r := &resolver{fs: fs, files: make(map[string]source.FileID, len(doc.Files))}
	in := &Input{SourceFile: source.NoFileID}

	for _, f := range doc.Files {
		if f.Path == "" {
			return nil, fmt.Errorf("file entry without a path")
		}
		var flags source.FileFlags
		if f.Lib {
			flags |= source.FileLib
		}
		var id source.FileID
		if f.Content != nil {
			id = fs.Add(f.Path, []byte(*f.Content), flags|source.FileVirtual)
		} else {
			path := f.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			loaded, err := fs.Load(path, flags)
			if err != nil {
				return nil, fmt.Errorf("file %s: %w", f.Path, err)
			}
			id = loaded
		}
		r.files[f.Path] = id
		in.Files = append(in.Files, id)
		if in.SourceFile == source.NoFileID && !f.Lib && doc.SourceFile == "" {
			in.SourceFile = id
		}
	}
	if doc.SourceFile != "" {
		id, ok := r.files[doc.SourceFile]
		if !ok {
			return nil, fmt.Errorf("source_file %q is not listed in files", doc.SourceFile)
		}
		in.SourceFile = id
	}

	in.Facts = make([]facts.Fact, 0, len(doc.Facts))
	for i, fd := range doc.Facts {
		f, err := r.fact(fd)
		if err != nil {
			return nil, fmt.Errorf("fact %d: %w", i, err)
		}
		in.Facts = append(in.Facts, f)
	}
	return in, nil
}

// resolver keeps the first error so conversions read as plain expressions.
type resolver struct {
	fs    *source.FileSet
	files map[string]source.FileID
	err   error
}

func (r *resolver) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf(format, args...)
	}
}

func (r *resolver) offset(v int64) uint32 {
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		r.fail("offset %d: %w", v, err)
	}
	return u
}

func (r *resolver) loc(l *LocDoc) source.Span {
	if l == nil {
		return source.NoSpan
	}
	id, ok := r.files[l.File]
	if !ok {
		r.fail("unknown file %q", l.File)
		return source.NoSpan
	}
	span := source.Span{File: id, Start: r.offset(l.Start), End: r.offset(l.End)}
	if f := r.fs.Get(id); f != nil && int(span.End) > len(f.Content) {
		r.fail("span %d-%d is outside %s", l.Start, l.End, l.File)
	}
	return span
}

func (r *resolver) desc(d DescDoc) reason.Description {
	kind, ok := reason.ParseDescKind(d.Kind)
	if !ok {
		r.fail("unknown description kind %q", d.Kind)
		return reason.Desc(reason.DescUnknown)
	}
	switch {
	case kind == reason.DescTypeAlias && d.Inner != nil:
		return reason.Alias(d.Name, r.desc(*d.Inner))
	case d.Value != "":
		out := reason.Literal(kind, d.Value)
		out.Name = d.Name
		return out
	case d.Name != "":
		return reason.Named(kind, d.Name)
	default:
		return reason.Desc(kind)
	}
}

// reason converts an optional reason; absent reasons are unknown values without a location.
func (r *resolver) reason(d *ReasonDoc) reason.Reason {
	if d == nil {
		return reason.New(source.NoSpan, reason.Desc(reason.DescUnknown))
	}
	origin, ok := reason.ParseOrigin(d.Origin)
	if !ok {
		r.fail("unknown origin %q", d.Origin)
	}
	loc := r.loc(d.Loc)
	// reasons inside library files default to library origin
	if d.Origin == "" && r.fs.Get(loc.File).IsLib() {
		origin = reason.OriginLib
	}
	return reason.New(loc, r.desc(d.Desc)).WithOrigin(origin)
}

func (r *resolver) reasons(ds []ReasonDoc) []reason.Reason {
	if len(ds) == 0 {
		return nil
	}
	out := make([]reason.Reason, len(ds))
	for i := range ds {
		out[i] = r.reason(&ds[i])
	}
	return out
}

func (r *resolver) root(d RootDoc) blame.Root {
	switch d.Kind {
	case "", "unknown":
		return blame.UnknownOperation{}
	case "addition":
		return blame.Addition{Left: r.reason(d.Left), Right: r.reason(d.Right)}
	case "assignment":
		va := blame.VariableAssignment{Source: r.reason(d.Source)}
		if d.Target != nil {
			target := r.reason(d.Target)
			va.Target = &target
		}
		return va
	case "cast":
		return blame.Cast{From: r.reason(d.From), To: r.reason(d.To)}
	case "class_extends":
		return blame.ClassExtends{Base: r.reason(d.Base), Derived: r.reason(d.Derived)}
	case "class_implements":
		return blame.ClassImplements{Iface: r.reason(d.Iface), Derived: r.reason(d.Derived)}
	case "coercion":
		return blame.Coercion{From: r.reason(d.From), To: r.reason(d.To)}
	case "call":
		return blame.Call{CallSite: r.reason(d.CallSite), Callee: r.reason(d.Callee)}
	case "method_call":
		return blame.MethodCall{CallSite: r.reason(d.CallSite), Callee: r.reason(d.Callee), Arguments: r.reasons(d.Arguments)}
	case "return":
		return blame.ReturnStatement{Value: r.reason(d.Value)}
	case "implicit_return":
		return blame.ImplicitReturn{DeclaredType: r.reason(d.DeclaredType), Function: r.reason(d.Function)}
	case "yield":
		return blame.GeneratorYield{Value: r.reason(d.Value)}
	case "property_read":
		return blame.PropertyRead{Property: r.reason(d.Property)}
	case "property_write":
		return blame.PropertyWrite{Property: r.reason(d.Property), Value: r.reason(d.Value), Target: r.reason(d.Target)}
	case "element_creation":
		return blame.ElementCreation{Op: r.reason(d.Op), Component: r.reason(d.Component)}
	case "instantiation":
		return blame.GenericInstantiation{Type: r.reason(d.Type)}
	case "internal":
		return blame.InternalOperation{What: d.What}
	default:
		r.fail("unknown root kind %q", d.Kind)
		return blame.UnknownOperation{}
	}
}

func (r *resolver) frame(d FrameDoc) blame.Frame {
	lower, upper := r.reason(d.Lower), r.reason(d.Upper)
	switch d.Kind {
	case "function_param":
		if d.Index < 1 {
			r.fail("function_param index %d (parameters count from 1)", d.Index)
		}
		return blame.FunctionParam{Index: d.Index, Name: d.Name, Lower: lower, Upper: upper}
	case "function_rest_param":
		return blame.FunctionRestParam{Lower: lower, Upper: upper}
	case "function_return":
		return blame.FunctionReturn{Lower: lower, Upper: upper}
	case "function_signature":
		return blame.FunctionSignatureCompat{Lower: lower, Upper: upper}
	case "property":
		return blame.PropertyCompat{Name: d.Name, Lower: lower, Upper: upper, IsSentinel: d.Sentinel}
	case "indexer_key":
		return blame.IndexerKeyCompat{Lower: lower, Upper: upper}
	case "tuple_element":
		if d.Index < 0 {
			r.fail("tuple_element index %d", d.Index)
		}
		return blame.TupleElementCompat{Index: d.Index, Lower: lower, Upper: upper}
	case "type_arg":
		variance, ok := blame.ParsePolarity(d.Variance)
		if !ok {
			r.fail("unknown variance %q", d.Variance)
		}
		return blame.TypeArgCompat{Name: d.Name, Lower: lower, Upper: upper, Variance: variance}
	case "type_param_bound":
		return blame.TypeParamBound{Name: d.Name}
	case "missing_argument":
		return blame.MissingArgument{DefinitionSite: r.reason(d.DefinitionSite), CallSite: r.reason(d.CallSite)}
	case "implicit_type_param":
		return blame.ImplicitTypeParam{}
	case "react_config":
		return blame.ReactConfigCheck{}
	case "unification":
		return blame.UnificationMarker{}
	default:
		r.fail("unknown frame kind %q", d.Kind)
		return blame.UnificationMarker{}
	}
}

// chain builds a chain from frames listed leaf first.
func (r *resolver) chain(d *ChainDoc) *blame.Chain {
	if d == nil {
		return nil
	}
	frames := make([]blame.Frame, len(d.Frames))
	for i, fd := range d.Frames {
		frames[i] = r.frame(fd)
	}
	slices.Reverse(frames)
	return blame.Build(r.root(d.Root), frames...)
}

func (r *resolver) branches(ds []BranchDoc) []facts.Branch {
	if len(ds) == 0 {
		return nil
	}
	out := make([]facts.Branch, 0, len(ds))
	for i, bd := range ds {
		member := r.reason(&bd.Member)
		f, err := r.nested(bd.Fact)
		if err != nil {
			r.fail("branch %d: %w", i, err)
			return nil
		}
		out = append(out, facts.Branch{Member: member, Fact: f})
	}
	return out
}

// nested converts a branch fact with its own error slot so the index can be reported.
func (r *resolver) nested(d FactDoc) (facts.Fact, error) {
	sub := &resolver{fs: r.fs, files: r.files}
	return sub.fact(d)
}

func (r *resolver) polarity(s string) blame.Polarity {
	p, ok := blame.ParsePolarity(s)
	if !ok {
		r.fail("unknown polarity %q", s)
	}
	return p
}

func (r *resolver) fact(d FactDoc) (facts.Fact, error) {
	kind, ok := facts.ParseKind(d.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown fact kind %q", d.Kind)
	}
	var f facts.Fact
	switch kind {
	case facts.KindIncompatible:
		f = facts.Incompatible{Lower: r.reason(d.Lower), Upper: r.reason(d.Upper), Chain: r.chain(d.Chain), Branches: r.branches(d.Branches)}
	case facts.KindPropNotFound:
		f = facts.PropNotFound{Prop: d.Prop, PropReason: r.reason(d.PropReason), Object: r.reason(d.Object),
			Chain: r.chain(d.Chain), Branches: r.branches(d.Branches), Candidates: d.Candidates}
	case facts.KindPropPolarityMismatch:
		lp, up := r.polarity(d.LowerPolarity), r.polarity(d.UpperPolarity)
		if lp == blame.Neutral && up == blame.Neutral {
			return nil, fmt.Errorf("prop_polarity_mismatch on %q with both sides neutral", d.Prop)
		}
		f = facts.NewPropPolarityMismatch(d.Prop, r.reason(d.Lower), r.reason(d.Upper), lp, up, r.chain(d.Chain))
	case facts.KindPropAccess:
		access := facts.AccessRead
		switch d.Access {
		case "", "read":
		case "write":
			access = facts.AccessWrite
		default:
			r.fail("unknown access %q", d.Access)
		}
		f = facts.PropAccess{Prop: d.Prop, Reason: r.reason(d.Reason), Access: access, Chain: r.chain(d.Chain)}
	case facts.KindCoercion:
		f = facts.Coercion{From: r.reason(d.From), To: r.reason(d.To), Chain: r.chain(d.Chain)}
	case facts.KindMissingArgument:
		f = facts.MissingArgument{Callee: r.reason(d.Callee), CallSite: r.reason(d.CallSite), Chain: r.chain(d.Chain), Branches: r.branches(d.Branches)}
	case facts.KindExtraArgument:
		f = facts.ExtraArgument{Callee: r.reason(d.Callee), CallSite: r.reason(d.CallSite), Expected: d.Expected,
			Chain: r.chain(d.Chain), Branches: r.branches(d.Branches)}
	case facts.KindTupleArity:
		f = facts.TupleArity{Lower: r.reason(d.Lower), Upper: r.reason(d.Upper), LowerArity: d.LowerArity, UpperArity: d.UpperArity,
			Chain: r.chain(d.Chain), Branches: r.branches(d.Branches)}
	case facts.KindExpectedLiteral:
		f = facts.ExpectedLiteral{Lower: r.reason(d.Lower), Upper: r.reason(d.Upper), Expected: d.Literal,
			Chain: r.chain(d.Chain), Branches: r.branches(d.Branches)}
	case facts.KindIncompatibleUse:
		f = facts.IncompatibleUse{Lower: r.reason(d.Lower), Upper: r.reason(d.Upper), Use: facts.ParseUseKind(d.Use), Detail: d.Detail,
			Chain: r.chain(d.Chain), Branches: r.branches(d.Branches)}
	case facts.KindComparison:
		f = facts.Comparison{Left: r.reason(d.Left), Right: r.reason(d.Right), Op: d.Op}
	case facts.KindTypeArity:
		f = facts.TypeArity{Type: r.reason(d.Type), Expected: d.Expected, Got: d.Got}
	case facts.KindValueAsType:
		f = facts.ValueAsType{Reason: r.reason(d.Reason)}
	case facts.KindSpeculationAmbiguous:
		if d.Case1 == nil || d.Case2 == nil {
			return nil, fmt.Errorf("speculation_ambiguous needs case1 and case2")
		}
		f = facts.SpeculationAmbiguous{
			Reason:      r.reason(d.Reason),
			Case1:       facts.Case{Index: d.Case1.Index, Reason: r.reason(&d.Case1.Reason)},
			Case2:       facts.Case{Index: d.Case2.Index, Reason: r.reason(&d.Case2.Reason)},
			Annotations: r.reasons(d.Annotations),
		}
	case facts.KindDuplicateDefinition:
		f = facts.DuplicateDefinition{Name: d.Name, Reason: r.reason(d.Reason), First: r.reason(d.First)}
	case facts.KindRecursionLimit:
		f = facts.RecursionLimit{Reason: r.reason(d.Reason)}
	case facts.KindInternalError:
		f = facts.InternalError{Loc: r.loc(d.Loc), Msg: d.Msg}
	case facts.KindParseError:
		f = facts.ParseError{Loc: r.loc(d.Loc), Msg: d.Msg}
	case facts.KindUnsupportedSyntax:
		f = facts.UnsupportedSyntax{Loc: r.loc(d.Loc), What: d.What}
	case facts.KindLintFinding:
		if d.Rule == "" {
			return nil, fmt.Errorf("lint finding without a rule")
		}
		f = facts.LintFinding{Rule: d.Rule, Reason: r.reason(d.Reason), Detail: d.Detail, Error: d.Error}
	case facts.KindModuleNotFound:
		f = facts.ModuleNotFound{Reason: r.reason(d.Reason), Module: d.Module}
	default:
		return nil, fmt.Errorf("fact kind %s is not readable from documents", kind)
	}
	if r.err != nil {
		return nil, r.err
	}
	return f, nil
}
