package report

import (
	"reflect"
	"testing"

	"diagsynth/internal/blame"
	"diagsynth/internal/diag"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
	"diagsynth/internal/source"
)

func catalog() []facts.Fact {
	x := reason.Ident(sp(0, 1), "x")
	obj := reason.Type(sp(10, 20), reason.DescObject)
	fn := reason.New(sp(30, 40), reason.Named(reason.DescFunction, "f"))
	call := reason.Code(sp(50, 55), "f(x)")
	chain := blame.Build(blame.Call{CallSite: call, Callee: fn},
		blame.FunctionSignatureCompat{Lower: fn, Upper: fn},
		blame.FunctionParam{Index: 1, Lower: x, Upper: obj})
	return []facts.Fact{
		facts.Incompatible{Lower: x, Upper: obj, Chain: chain},
		facts.PropNotFound{Prop: "foo", PropReason: x, Object: obj, Chain: chain, Candidates: []string{"fo"}},
		facts.NewPropPolarityMismatch("p", x, obj, blame.Positive, blame.Negative, chain),
		facts.PropAccess{Prop: "p", Reason: x, Chain: chain},
		facts.PropAccess{Prop: "p", Reason: x, Access: facts.AccessWrite},
		facts.Coercion{From: x, To: obj, Chain: blame.Of(blame.Coercion{From: x, To: obj})},
		facts.MissingArgument{Callee: fn, CallSite: call},
		facts.ExtraArgument{Callee: fn, CallSite: call, Expected: 1},
		facts.TupleArity{Lower: x, Upper: obj, LowerArity: 2, UpperArity: 3},
		facts.ExpectedLiteral{Lower: x, Upper: obj, Expected: "a"},
		facts.IncompatibleUse{Lower: x, Upper: obj, Use: facts.UseCall},
		facts.IncompatibleUse{Lower: x, Upper: obj, Detail: "spread"},
		facts.Comparison{Left: x, Right: obj, Op: "<"},
		facts.TypeArity{Type: obj, Expected: 1, Got: 2},
		facts.ValueAsType{Reason: x},
		facts.SpeculationAmbiguous{Reason: obj, Case1: facts.Case{Index: 0, Reason: x}, Case2: facts.Case{Index: 1, Reason: fn}},
		facts.DuplicateDefinition{Name: "x", Reason: x, First: reason.Ident(sp(60, 61), "x")},
		facts.RecursionLimit{Reason: x},
		facts.InternalError{Loc: sp(0, 1), Msg: "budget exhausted"},
		facts.ParseError{Loc: sp(0, 1), Msg: "Unexpected token"},
		facts.UnsupportedSyntax{Loc: sp(0, 1), What: "with"},
		facts.LintFinding{Rule: "sketchy-null", Reason: x, Detail: "sketchy null check"},
		facts.ModuleNotFound{Reason: x, Module: "./missing"},
		facts.Incompatible{Lower: reason.Type(source.NoSpan, reason.DescString), Upper: reason.Builtin(reason.Desc(reason.DescNumber))},
	}
}

func TestBuildCatalog(t *testing.T) {
	for _, mode := range []Mode{ModeClassic, ModeFriendly} {
		for _, f := range catalog() {
			d := Build(f, Options{Mode: mode})
			if d.Message == "" {
				t.Errorf("%s/%s: empty message", mode, f.Kind())
			}
			if d.Classic == nil {
				t.Errorf("%s/%s: classic tree missing", mode, f.Kind())
			}
			if d.Code != Classify(f).Code {
				t.Errorf("%s/%s: code %s", mode, f.Kind(), d.Code.ID())
			}
			if mode == ModeClassic && d.Friendly != nil {
				t.Errorf("%s/%s: friendly rendering in classic mode", mode, f.Kind())
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	for _, f := range append(catalog(), propertyPathFact()) {
		a := Build(f, Options{Mode: ModeFriendly})
		b := Build(f, Options{Mode: ModeFriendly})
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: two builds differ", f.Kind())
		}
	}
}

func TestBuildClassicMessage(t *testing.T) {
	f := propertyPathFact()
	d := Build(f, Options{Mode: ModeClassic})
	if d.Message != "object literal. This type is incompatible with `T`" {
		t.Fatalf("message = %q", d.Message)
	}
	if d.Primary != sp(0, 40) {
		t.Fatalf("primary = %v", d.Primary)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != sp(60, 70) {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestBuildSuggestionFix(t *testing.T) {
	f := facts.PropNotFound{Prop: "lenght", PropReason: reason.New(sp(4, 10), reason.Named(reason.DescProperty, "lenght")),
		Object: reason.Type(sp(0, 3), reason.DescArray), Candidates: []string{"length", "push"}}
	d := Build(f, Options{Mode: ModeFriendly})
	want := []diag.Fix{{Title: "replace with `length`", Edits: []diag.FixEdit{{Span: sp(4, 10), NewText: "length"}}}}
	if !reflect.DeepEqual(d.Fixes, want) {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
}

func speculativeCall() (facts.Incompatible, facts.Incompatible, facts.Incompatible) {
	callSite := reason.Code(sp(0, 10), "f(x)")
	callee := reason.Ident(sp(0, 1), "f")
	root := blame.Call{CallSite: callSite, Callee: callee}
	fnA := reason.Type(sp(20, 30), reason.DescFunction)
	fnB := reason.Type(sp(40, 50), reason.DescFunction)

	good := facts.Incompatible{Lower: strAt(sp(2, 3)), Upper: numAt(sp(42, 48)), Chain: blame.Build(root,
		blame.FunctionSignatureCompat{Lower: fnA, Upper: fnB},
		blame.FunctionParam{Index: 1, Lower: strAt(sp(2, 3)), Upper: numAt(sp(42, 48))},
	)}
	sentinel := facts.Incompatible{Lower: strAt(sp(2, 3)), Upper: numAt(sp(22, 28)), Chain: blame.Build(root,
		blame.PropertyCompat{Name: "type", IsSentinel: true},
	)}
	outer := facts.Incompatible{
		Lower:    strAt(sp(2, 3)),
		Upper:    reason.Type(sp(20, 50), reason.DescUnion),
		Chain:    blame.Of(root),
		Branches: []facts.Branch{{Member: fnA, Fact: sentinel}, {Member: fnB, Fact: good}},
	}
	return outer, good, sentinel
}

func TestNarrowPicksSingleBest(t *testing.T) {
	outer, good, _ := speculativeCall()
	if got := Narrow(outer); !reflect.DeepEqual(got, good) {
		t.Fatalf("narrowed to %+v", got)
	}
	if !reflect.DeepEqual(Build(outer, Options{}), Build(good, Options{})) {
		t.Fatal("a single surviving branch must render exactly like the branch itself")
	}
}

func TestSpeculationEmbedsTiedBranches(t *testing.T) {
	other := blame.Cast{From: strAt(sp(2, 3)), To: numAt(sp(60, 66))}
	b1 := facts.Incompatible{Lower: strAt(sp(2, 3)), Upper: numAt(sp(60, 66)), Chain: blame.Of(other)}
	b2 := facts.TupleArity{Lower: strAt(sp(2, 3)), Upper: numAt(sp(60, 66)), LowerArity: 1, UpperArity: 2, Chain: blame.Of(other)}
	outer, _, _ := speculativeCall()
	outer.Branches = []facts.Branch{
		{Member: reason.Type(sp(20, 30), reason.DescFunction), Fact: b1},
		{Member: reason.Type(sp(40, 50), reason.DescObject), Fact: b2},
	}

	d := Build(outer, Options{Mode: ModeFriendly})
	if d.Friendly == nil {
		t.Fatal("the outer fact still renders friendly")
	}
	extra := d.Classic.Extra
	if len(extra) != 2 {
		t.Fatalf("expected one node per member, got %d", len(extra))
	}
	for i, want := range []string{"Member 1:", "Member 2:"} {
		if extra[i].Infos[0].Lines[0] != want {
			t.Errorf("member %d label = %q", i, extra[i].Infos[0].Lines[0])
		}
		if extra[i].Children[1].Infos[0].Lines[0] != "Error:" {
			t.Errorf("member %d has no error node", i)
		}
	}
	if got := extra[1].Children[0].Infos[0].Lines; !reflect.DeepEqual(got, []string{"object type"}) {
		t.Fatalf("member description = %v", got)
	}
	inner := extra[1].Children[1].Children[0].Infos
	if inner[1].Lines[0] != "Tuple of 1 element is incompatible with the 2 elements of" {
		t.Fatalf("sibling core = %v", lines(inner))
	}
}

func TestAmbiguityMessages(t *testing.T) {
	f := facts.SpeculationAmbiguous{
		Reason:      reason.Type(sp(0, 20), reason.DescUnion),
		Case1:       facts.Case{Index: 0, Reason: reason.Type(sp(0, 8), reason.DescObject)},
		Case2:       facts.Case{Index: 2, Reason: reason.Type(sp(12, 20), reason.DescObject)},
		Annotations: []reason.Reason{reason.Ident(sp(30, 31), "x")},
	}
	friendly := Build(f, Options{Mode: ModeFriendly})
	want := "Could not decide which case to select, since case 1 may work but if it doesn't case 3 looks promising too. To fix add a type annotation to `x`."
	if friendly.Message != want {
		t.Fatalf("friendly = %q", friendly.Message)
	}

	classic := Build(f, Options{Mode: ModeClassic})
	wantLines := [][]string{
		{"Could not decide which case to select"},
		{"Case 1 may work:"},
		{"But if it doesn't, case 3 looks promising too:"},
	}
	if !reflect.DeepEqual(lines(classic.Classic.PrimaryInfos), wantLines) {
		t.Fatalf("classic = %v", lines(classic.Classic.PrimaryInfos))
	}
	if len(classic.Classic.Extra) != 1 {
		t.Fatal("annotation hint missing")
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
		ok         bool
	}{
		{"lenght", []string{"length", "push"}, "length", true},
		{"foo", []string{"bar", "baz"}, "", false},
		{"foo", []string{"foo"}, "", false},
		{"", []string{"a"}, "", false},
		{"ab", []string{"b", "a"}, "a", true},
	}
	for _, tt := range tests {
		got, ok := Suggest(tt.name, tt.candidates)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Suggest(%q, %v) = %q, %v", tt.name, tt.candidates, got, ok)
		}
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 102: "102nd", 111: "111th"}
	for n, want := range tests {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeFriendly, "friendly": ModeFriendly, "classic": ModeClassic} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("fancy"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}
