package source

import "testing"

func TestSpanContains(t *testing.T) {
	outer := Span{File: 1, Start: 10, End: 40}
	tests := []struct {
		name  string
		inner Span
		want  bool
	}{
		{"strictly inside", Span{File: 1, Start: 12, End: 20}, true},
		{"equal", outer, true},
		{"touching start", Span{File: 1, Start: 10, End: 11}, true},
		{"overhangs end", Span{File: 1, Start: 30, End: 41}, false},
		{"before", Span{File: 1, Start: 0, End: 5}, false},
		{"other file", Span{File: 2, Start: 12, End: 20}, false},
		{"none", NoSpan, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
	if NoSpan.Contains(NoSpan) {
		t.Error("NoSpan must not contain itself")
	}
}

func TestSpanDegenerate(t *testing.T) {
	tests := []struct {
		span Span
		want bool
	}{
		{Span{}, true},
		{NoSpan, true},
		{Span{File: 0, Start: 5, End: 5}, true},
		{Span{File: 0, Start: 6, End: 5}, true},
		{Span{File: 0, Start: 0, End: 1}, false},
	}
	for _, tt := range tests {
		if got := tt.span.Degenerate(); got != tt.want {
			t.Errorf("%v.Degenerate() = %v, want %v", tt.span, got, tt.want)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 3, Start: 10, End: 20}
	b := Span{File: 3, Start: 15, End: 30}
	if got := a.Cover(b); got != (Span{File: 3, Start: 10, End: 30}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 4, Start: 0, End: 100}); got != a {
		t.Fatalf("cover across files must keep receiver, got %v", got)
	}
	if got := NoSpan.Cover(b); got != b {
		t.Fatalf("NoSpan.Cover = %v", got)
	}
}

func TestSpanStringAndLess(t *testing.T) {
	if got := NoSpan.String(); got != "<none>" {
		t.Fatalf("NoSpan.String() = %q", got)
	}
	if got := (Span{File: 2, Start: 1, End: 4}).String(); got != "2:1-4" {
		t.Fatalf("String() = %q", got)
	}
	a := Span{File: 1, Start: 5, End: 9}
	b := Span{File: 1, Start: 5, End: 12}
	if !a.Less(b) || b.Less(a) {
		t.Fatal("expected a < b by end offset")
	}
}
