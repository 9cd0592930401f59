package score

import (
	"testing"

	"diagsynth/internal/blame"
	"diagsynth/internal/facts"
	"diagsynth/internal/reason"
	"diagsynth/internal/source"
)

var (
	callSite = reason.Code(source.Span{Start: 0, End: 6}, "f(x)")
	callee   = reason.Ident(source.Span{Start: 0, End: 1}, "f")
	str      = reason.Type(source.Span{Start: 10, End: 16}, reason.DescString)
	num      = reason.Type(source.Span{Start: 20, End: 26}, reason.DescNumber)
	obj      = reason.Type(source.Span{Start: 30, End: 40}, reason.DescObject)
	arr      = reason.Type(source.Span{Start: 50, End: 55}, reason.DescArray)
	callRoot = blame.Call{CallSite: callSite, Callee: callee}
)

func TestFrameWeights(t *testing.T) {
	tests := []struct {
		name  string
		frame blame.Frame
		want  int
	}{
		{"param 1", blame.FunctionParam{Index: 1}, 201},
		{"param clamped", blame.FunctionParam{Index: 500}, 299},
		{"param negative", blame.FunctionParam{Index: -3}, 200},
		{"rest", blame.FunctionRestParam{}, 300},
		{"signature", blame.FunctionSignatureCompat{}, 0},
		{"missing arg", blame.MissingArgument{}, 0},
		{"type arg", blame.TypeArgCompat{}, 400},
		{"tuple", blame.TupleElementCompat{}, 800},
		{"sentinel", blame.PropertyCompat{Name: "type", IsSentinel: true}, -1600},
		{"property", blame.PropertyCompat{Name: "p"}, 200},
		{"return", blame.FunctionReturn{}, 200},
		{"marker", blame.UnificationMarker{}, 200},
	}
	for _, tt := range tests {
		if got := frameScore(tt.frame); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestShapeAdjustment(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper reason.Reason
		want         int
	}{
		{"both scalar", str, num, Unit},
		{"both array", arr, arr, Unit},
		{"one scalar", str, obj, 0},
		{"one array", arr, obj, 0},
		{"neither", obj, obj, Unit},
	}
	for _, tt := range tests {
		f := facts.Incompatible{Lower: tt.lower, Upper: tt.upper}
		if got := Score(f, blame.UnknownOperation{}); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
	one := facts.PropAccess{Prop: "p", Reason: str}
	if got := Score(one, blame.UnknownOperation{}); got != 0 {
		t.Errorf("one-sided fact must score 0, got %d", got)
	}
}

func TestDeeperChainScoresHigherUnderSharedRoot(t *testing.T) {
	shallow := facts.Incompatible{Lower: str, Upper: num, Chain: blame.Build(callRoot,
		blame.FunctionSignatureCompat{}, blame.FunctionParam{Index: 1})}
	deeper := facts.Incompatible{Lower: str, Upper: num, Chain: blame.Build(callRoot,
		blame.FunctionSignatureCompat{}, blame.FunctionParam{Index: 1}, blame.PropertyCompat{Name: "a"})}
	later := facts.Incompatible{Lower: str, Upper: num, Chain: blame.Build(callRoot,
		blame.FunctionSignatureCompat{}, blame.FunctionParam{Index: 2})}

	s, d, l := Score(shallow, callRoot), Score(deeper, callRoot), Score(later, callRoot)
	if s != 2*Unit+1+Unit {
		t.Fatalf("shallow = %d", s)
	}
	if d <= s {
		t.Fatalf("deeper (%d) must beat shallow (%d)", d, s)
	}
	if l <= s {
		t.Fatalf("later parameter (%d) must beat earlier (%d)", l, s)
	}
}

func TestDifferentRootsTie(t *testing.T) {
	other := blame.Cast{From: str, To: num}
	a := facts.Incompatible{Lower: str, Upper: num, Chain: blame.Build(other, blame.TupleElementCompat{})}
	b := facts.Incompatible{Lower: str, Upper: num, Chain: blame.Build(blame.Coercion{From: str, To: num},
		blame.PropertyCompat{Name: "x"})}

	// the mismatch replaces only the chain part; both pairs are scalar
	want := Mismatch + Unit
	if Score(a, callRoot) != want || Score(b, callRoot) != want {
		t.Fatalf("expected both %d, got %d and %d", want, Score(a, callRoot), Score(b, callRoot))
	}
	got := Select([]facts.Branch{{Member: str, Fact: a}, {Member: obj, Fact: b}}, callRoot)
	if len(got) != 2 {
		t.Fatalf("tied branches must both survive, got %d", len(got))
	}
}

func TestMismatchKeepsAdjustments(t *testing.T) {
	tests := []struct {
		name string
		fact facts.Fact
		want int
	}{
		{"scalar pair", facts.Incompatible{Lower: str, Upper: num, Chain: blame.Of(blame.Cast{From: str, To: num})}, Mismatch + Unit},
		{"mixed shape", facts.Incompatible{Lower: str, Upper: obj, Chain: blame.Of(blame.Cast{From: str, To: obj})}, Mismatch},
		{"prop not found", facts.PropNotFound{Prop: "p", PropReason: obj, Object: obj,
			Chain: blame.Build(blame.Cast{From: obj, To: obj}, blame.PropertyCompat{Name: "p"})}, Mismatch - 2*Unit + Unit},
	}
	for _, tt := range tests {
		if got := Score(tt.fact, callRoot); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

// A same-root chain whose frames happen to sum to -1 is not a mismatch.
func TestChainSummingToMismatchValue(t *testing.T) {
	chain := blame.Build(callRoot,
		blame.FunctionParam{Index: 99}, blame.FunctionParam{Index: 99}, blame.FunctionParam{Index: 1},
		blame.FunctionParam{Index: 0}, blame.FunctionParam{Index: 0}, blame.FunctionParam{Index: 0},
		blame.FunctionParam{Index: 0}, blame.PropertyCompat{Name: "kind", IsSentinel: true})
	sum, matched := chainScore(chain, callRoot)
	if sum != -1 || !matched {
		t.Fatalf("chainScore = %d, %v", sum, matched)
	}
	f := facts.Incompatible{Lower: str, Upper: num, Chain: chain}
	if got := Score(f, callRoot); got != -1+Unit {
		t.Fatalf("got %d, want %d", got, -1+Unit)
	}
}

func TestPropNotFoundPenalty(t *testing.T) {
	withFrame := facts.PropNotFound{Prop: "p", PropReason: obj, Object: obj,
		Chain: blame.Build(callRoot, blame.PropertyCompat{Name: "p"})}
	if got := Score(withFrame, callRoot); got != 2*Unit-2*Unit+Unit {
		t.Fatalf("got %d", got)
	}
	noFrame := facts.PropNotFound{Prop: "p", PropReason: obj, Object: obj, Chain: blame.Of(callRoot)}
	if got := Score(noFrame, callRoot); got != Unit {
		t.Fatalf("got %d", got)
	}
}

func TestSelectPicksSentinelSurvivor(t *testing.T) {
	root := blame.Cast{From: obj, To: obj}
	sentinel := facts.Incompatible{Lower: str, Upper: str,
		Chain: blame.Build(root, blame.PropertyCompat{Name: "type", IsSentinel: true})}
	payload := facts.Incompatible{Lower: str, Upper: num,
		Chain: blame.Build(root, blame.PropertyCompat{Name: "value"})}

	got := Select([]facts.Branch{{Fact: sentinel}, {Fact: payload}}, root)
	if len(got) != 1 {
		t.Fatalf("expected one survivor, got %d", len(got))
	}
	if _, ok := got[0].Fact.(facts.Incompatible); !ok || got[0].Fact.(facts.Incompatible).Upper != num {
		t.Fatal("payload branch must win over the failed sentinel")
	}
	if Select(nil, root) != nil {
		t.Fatal("no branches, no survivors")
	}
}
