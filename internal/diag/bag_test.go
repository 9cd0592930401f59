package diag

import (
	"sync"
	"testing"

	"diagsynth/internal/source"
)

func TestBagSortIsDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Severity: SevWarning, Code: LntFinding, Primary: source.Span{File: 0, Start: 5, End: 6}, Message: "b"})
	bag.Add(Diagnostic{Severity: SevError, Code: TypIncompatible, Primary: source.Span{File: 0, Start: 5, End: 6}, Message: "a"})
	bag.Add(Diagnostic{Severity: SevError, Code: TypIncompatible, Primary: source.Span{File: 0, Start: 1, End: 2}, Message: "c"})
	bag.Sort()

	var got []string
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	if len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(Diagnostic{Message: "one"}) {
		t.Fatal("first add must succeed")
	}
	if bag.Add(Diagnostic{Message: "two"}) {
		t.Fatal("second add must hit the limit")
	}
	if NewBag(0).Cap() != ^uint16(0) {
		t.Fatal("zero limit means unbounded")
	}
}

func TestDedupReporterConcurrent(t *testing.T) {
	bag := NewBag(0)
	rep := NewDedupReporter(NewBagReporter(bag), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rep.Report(&Diagnostic{Severity: SevError, Code: TypIncompatible, Message: "same"})
		}()
	}
	wg.Wait()
	rep.Report(&Diagnostic{Severity: SevError, Code: TypIncompatible, Message: "other"})

	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		SynParseError:    "SYN2001",
		TypPropNotFound:  "TYP3002",
		LntFinding:       "LNT6001",
		IntInternalError: "INT9001",
		UnknownCode:      "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if TypCoercion.String() != "[TYP3006]: Implicit coercion" {
		t.Errorf("String() = %q", TypCoercion.String())
	}
}

func TestRenderText(t *testing.T) {
	got := RenderText([]Text{Plain("Cannot cast "), RefText("x", true, source.Span{Start: 0, End: 1}), Plain(" to number")})
	if got != "Cannot cast `x` to number" {
		t.Fatalf("RenderText = %q", got)
	}
}
