package store

import (
	"testing"

	"github.com/slate-lang/slate/internal/ref"
)

func eq(path string, n int64) Constraint {
	return &Cmp{Op: OpEq, Ref: ref.Parse(path), Val: &Int{Value: n}}
}

func TestConstraintStrings(t *testing.T) {
	tests := []struct {
		c    Constraint
		want string
	}{
		{&True{}, "true"},
		{eq("x", 1), "x = 1"},
		{&Cmp{Op: OpNe, Ref: ref.Parse("a.b"), Val: &Str{Value: "up"}}, `a.b != "up"`},
		{&In{Ref: ref.Parse("s"), Vals: &Vec{Elems: []Basic{&Int{Value: 1}, &Int{Value: 2}}}}, "s in [1, 2]"},
		{&Not{Body: eq("x", 1)}, "not (x = 1)"},
		{&Imply{Left: eq("x", 1), Right: eq("y", 2)}, "(x = 1) imply (y = 2)"},
		{&And{Terms: []Constraint{eq("x", 1), eq("y", 2)}}, "and (x = 1; y = 2)"},
		{&Or{Terms: []Constraint{eq("x", 1), eq("y", 2)}}, "or (x = 1; y = 2)"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String(): want %q, got %q", tt.want, got)
		}
	}
}

func TestConjoinNewerConjunctsFirst(t *testing.T) {
	got := Conjoin(eq("y", 2), eq("x", 1))
	if got.String() != "and (y = 2; x = 1)" {
		t.Errorf("want newer conjunct first, got %q", got.String())
	}
}

func TestConjoinFlattens(t *testing.T) {
	older := &And{Terms: []Constraint{eq("a", 1), eq("b", 2)}}
	newer := &And{Terms: []Constraint{eq("c", 3)}}
	got := Conjoin(newer, older)
	and, ok := got.(*And)
	if !ok {
		t.Fatalf("want *And, got %T", got)
	}
	if len(and.Terms) != 3 {
		t.Fatalf("want 3 flattened terms, got %d", len(and.Terms))
	}
	if got.String() != "and (c = 3; a = 1; b = 2)" {
		t.Errorf("flatten order wrong: %q", got.String())
	}
}

func TestConjoinDeduplicates(t *testing.T) {
	// conjoining an identical block twice is idempotent
	got := Conjoin(eq("x", 1), eq("x", 1))
	if got.String() != "x = 1" {
		t.Errorf("duplicate conjunct should collapse to the single term, got %q", got.String())
	}

	older := &And{Terms: []Constraint{eq("x", 1), eq("y", 2)}}
	got = Conjoin(eq("y", 2), older)
	if got.String() != "and (y = 2; x = 1)" {
		t.Errorf("structural duplicates should be dropped, got %q", got.String())
	}
}

func TestConjoinSingleTermUnwrapped(t *testing.T) {
	got := Conjoin(&And{Terms: []Constraint{eq("x", 1)}}, &And{})
	if _, ok := got.(*Cmp); !ok {
		t.Errorf("a single surviving term should not stay wrapped in And, got %T", got)
	}
}
