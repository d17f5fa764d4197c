package typesystem

import (
	"testing"

	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/ref"
)

func TestEnvFindLatestBindingWins(t *testing.T) {
	e1 := NewEnv().Bind(ref.Parse("x"), TInt)
	e2 := e1.Bind(ref.Parse("x"), TStr)

	typ, err := e2.Find(ref.Parse("x"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !typ.Equal(TStr) {
		t.Errorf("want string, got %s", typ)
	}

	// the earlier snapshot is unchanged
	typ, err = e1.Find(ref.Parse("x"))
	if err != nil {
		t.Fatalf("Find on snapshot: %v", err)
	}
	if !typ.Equal(TInt) {
		t.Errorf("snapshot should still see int, got %s", typ)
	}
}

func TestEnvFindUnbound(t *testing.T) {
	_, err := NewEnv().Find(ref.Parse("nope"))
	if diagnostics.CodeOf(err) != diagnostics.CodeUnboundReference {
		t.Errorf("want E%d, got %v", diagnostics.CodeUnboundReference, err)
	}
}

func TestEnvResolveClimbs(t *testing.T) {
	e := NewEnv().
		Bind(ref.Parse("x"), TInt).
		Bind(ref.Parse("main.x"), TStr)

	q, typ, err := e.Resolve(ref.Parse("main.vm"), ref.Parse("x"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if q.String() != "main.x" || !typ.Equal(TStr) {
		t.Errorf("want main.x string, got %s %s", q, typ)
	}

	_, _, err = e.Resolve(ref.Parse("main"), ref.Parse("zzz"))
	if diagnostics.CodeOf(err) != diagnostics.CodeUnboundReference {
		t.Errorf("want E%d, got %v", diagnostics.CodeUnboundReference, err)
	}
}

func TestEnvCopy(t *testing.T) {
	e := NewEnv().
		Bind(ref.Parse("proto"), TObject{Chain: PlainChain{}}).
		Bind(ref.Parse("proto.x"), TInt).
		Bind(ref.Parse("proto.sub.y"), TBool)

	e2 := e.Copy(ref.Parse("proto"), ref.Parse("obj"))
	typ, err := e2.Find(ref.Parse("obj.x"))
	if err != nil || !typ.Equal(TInt) {
		t.Errorf("obj.x: want int, got %v (%v)", typ, err)
	}
	typ, err = e2.Find(ref.Parse("obj.sub.y"))
	if err != nil || !typ.Equal(TBool) {
		t.Errorf("obj.sub.y: want bool, got %v (%v)", typ, err)
	}
	// the source root itself is not copied
	if _, err := e2.Find(ref.Parse("obj")); err == nil {
		t.Error("Copy must not bind the target root itself")
	}
}

func TestVariablesWithPrefix(t *testing.T) {
	e := NewEnv().
		Bind(ref.Parse("main"), TObject{Chain: PlainChain{}}).
		Bind(ref.Parse("main.x"), TInt).
		Bind(ref.Parse("main.y"), TStr).
		Bind(ref.Parse("other.z"), TBool)

	got := e.VariablesWithPrefix(ref.Parse("main"), true)
	if len(got) != 2 {
		t.Fatalf("want 2 members, got %d", len(got))
	}
	if got[0].Ref.String() != "x" || got[1].Ref.String() != "y" {
		t.Errorf("stripped refs wrong: %s, %s", got[0].Ref, got[1].Ref)
	}

	full := e.VariablesWithPrefix(ref.Parse("main"), false)
	if full[0].Ref.String() != "main.x" {
		t.Errorf("unstripped ref wrong: %s", full[0].Ref)
	}
}

func TestResolveForwardsLink(t *testing.T) {
	e := NewEnv().
		Bind(ref.Parse("a.x"), TInt).
		Bind(ref.Parse("main.y"), TLinkForward{Target: ref.Parse("a.x")})

	e2 := e.ResolveForwards()
	typ, err := e2.Find(ref.Parse("main.y"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !typ.Equal(TInt) {
		t.Errorf("forward link should take the target's type, got %s", typ)
	}
}

func TestResolveForwardsRefToObject(t *testing.T) {
	chain := UserChain{Name: "VM", Parent: PlainChain{}}
	e := NewEnv().
		Bind(ref.Parse("vm"), TObject{Chain: chain}).
		Bind(ref.Parse("main.target"), TRefForward{Target: ref.Parse("vm")})

	e2 := e.ResolveForwards()
	typ, err := e2.Find(ref.Parse("main.target"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	r, ok := typ.(TRef)
	if !ok {
		t.Fatalf("ref-forward to an object should become ref(...), got %s", typ)
	}
	if !r.Chain.ChainEqual(chain) {
		t.Errorf("reference wrapper should carry the object's chain, got %s", r)
	}
}

func TestResolveForwardsLeavesUnresolvable(t *testing.T) {
	e := NewEnv().Bind(ref.Parse("main.y"), TLinkForward{Target: ref.Parse("nope")})
	e2 := e.ResolveForwards()
	typ, err := e2.Find(ref.Parse("main.y"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !IsForward(typ) {
		t.Errorf("unresolvable placeholder should survive for the map check, got %s", typ)
	}
}
