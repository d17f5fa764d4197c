package typesystem

import (
	"testing"

	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/store"
)

func TestMapOf(t *testing.T) {
	e := NewEnv().
		Bind(ref.Parse("x"), TInt).
		Bind(ref.Parse("x"), TStr). // rebind
		Bind(ref.Parse("y"), TBool)

	m := e.MapOf()
	if len(m) != 2 {
		t.Fatalf("want 2 entries, got %d", len(m))
	}
	if !m["x"].Equal(TStr) {
		t.Errorf("x: want the latest binding, got %s", m["x"])
	}
}

func TestWellFormed(t *testing.T) {
	declared := Map{
		"Machine": TSchema{Chain: UserChain{Name: "Machine", Parent: PlainChain{}}},
		"State":   TEnum{Name: "State", Symbols: []string{"up", "down"}},
	}

	ok := Map{
		"main.x":     TInt,
		"main.vm":    TObject{Chain: UserChain{Name: "Machine", Parent: PlainChain{}}},
		"main.state": TSymbol{Enum: "State"},
		"main.list":  TList{Elem: TEnum{Name: "State"}},
	}
	if err := WellFormed(ok, declared); err != nil {
		t.Fatalf("well-formed map rejected: %v", err)
	}

	bad := Map{"main.vm": TObject{Chain: UserChain{Name: "Ghost", Parent: PlainChain{}}}}
	if err := WellFormed(bad, declared); diagnostics.CodeOf(err) != diagnostics.CodeIllFormedMap {
		t.Errorf("undeclared chain: want E%d, got %v", diagnostics.CodeIllFormedMap, err)
	}

	fwd := Map{"main.y": TLinkForward{Target: ref.Parse("a.x")}}
	if err := WellFormed(fwd, declared); diagnostics.CodeOf(err) != diagnostics.CodeForwardType {
		t.Errorf("surviving forward: want E%d, got %v", diagnostics.CodeForwardType, err)
	}
}

func TestMakeTypeValuesEnum(t *testing.T) {
	enum := TEnum{Name: "State", Symbols: []string{"up", "down"}}
	env := NewEnv().BindVar(ref.Parse("State.up"), TSymbol{Enum: "State"}, TStr)
	st := store.New().Bind(ref.Parse("State.up"), &store.Str{Value: "up"})

	vals := MakeTypeValues(enum, env, st, nil, nil)
	// both symbols, with the bound occurrence of "up" deduplicated
	if len(vals) != 2 {
		t.Fatalf("want 2 values, got %d: %v", len(vals), vals)
	}
	if vals[0].Inspect() != `"up"` || vals[1].Inspect() != `"down"` {
		t.Errorf("want the full symbol set, got %s, %s", vals[0].Inspect(), vals[1].Inspect())
	}
}

func TestMakeTypeValuesAcrossSnapshots(t *testing.T) {
	env1 := NewEnv().Bind(ref.Parse("a"), TInt)
	st1 := store.New().Bind(ref.Parse("a"), &store.Int{Value: 1})
	env2 := NewEnv().Bind(ref.Parse("b"), TInt)
	st2 := store.New().Bind(ref.Parse("b"), &store.Int{Value: 2})

	vals := MakeTypeValues(TInt, env1, st1, env2, st2)
	if len(vals) != 2 {
		t.Fatalf("want values from both snapshots, got %d", len(vals))
	}
}
