package store

import (
	"testing"

	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/ref"
)

func mustFind(t *testing.T, s *Store, path string) Value {
	t.Helper()
	v, ok := s.Find(ref.Parse(path))
	if !ok {
		t.Fatalf("reference %s is not bound", path)
	}
	return v
}

func TestBindOverrideAndImmutability(t *testing.T) {
	s1 := New().Bind(ref.Parse("x"), &Int{Value: 1})
	s2 := s1.Bind(ref.Parse("x"), &Int{Value: 2})

	if v := mustFind(t, s2, "x").(*Int); v.Value != 2 {
		t.Errorf("latest binding must win: want 2, got %d", v.Value)
	}
	if v := mustFind(t, s1, "x").(*Int); v.Value != 1 {
		t.Errorf("earlier snapshot must be unchanged: want 1, got %d", v.Value)
	}
}

func TestRefsFirstBindOrder(t *testing.T) {
	s := New().
		Bind(ref.Parse("b"), &Int{Value: 1}).
		Bind(ref.Parse("a"), &Int{Value: 2}).
		Bind(ref.Parse("b"), &Int{Value: 3}) // rebind keeps the original slot

	want := []string{"b", "a"}
	refs := s.Refs()
	if len(refs) != len(want) {
		t.Fatalf("want %d refs, got %d", len(want), len(refs))
	}
	for i, w := range want {
		if refs[i].String() != w {
			t.Errorf("refs[%d]: want %s, got %s", i, w, refs[i])
		}
	}
}

func TestDescendants(t *testing.T) {
	s := New().
		Bind(ref.Parse("main"), &Object{}).
		Bind(ref.Parse("main.x"), &Int{Value: 1}).
		Bind(ref.Parse("main.vm"), &Object{}).
		Bind(ref.Parse("main.vm.ip"), &Str{Value: "10.0.0.1"}).
		Bind(ref.Parse("other"), &Int{Value: 9})

	got := s.Descendants(ref.Parse("main"))
	want := []string{"main.x", "main.vm", "main.vm.ip"}
	if len(got) != len(want) {
		t.Fatalf("want %d descendants, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("descendants[%d]: want %s, got %s", i, w, got[i])
		}
	}
}

func TestResolveClimbsNamespace(t *testing.T) {
	s := New().
		Bind(ref.Parse("x"), &Int{Value: 1}).
		Bind(ref.Parse("main"), &Object{}).
		Bind(ref.Parse("main.vm"), &Object{}).
		Bind(ref.Parse("main.x"), &Int{Value: 2})

	// from main.vm, x is found one level up at main.x
	q, v, ok := s.Resolve(ref.Parse("main.vm"), ref.Parse("x"), false)
	if !ok {
		t.Fatal("x should resolve from main.vm")
	}
	if q.String() != "main.x" {
		t.Errorf("want main.x, got %s", q)
	}
	if v.(*Int).Value != 2 {
		t.Errorf("want the nearer binding 2, got %d", v.(*Int).Value)
	}

	// an unknown name misses at every level
	if _, _, ok := s.Resolve(ref.Parse("main.vm"), ref.Parse("zzz"), false); ok {
		t.Error("zzz should not resolve")
	}
}

func TestResolveFollowsReferenceChains(t *testing.T) {
	s := New().
		Bind(ref.Parse("a"), &Int{Value: 42}).
		Bind(ref.Parse("b"), &RefVal{Target: ref.Parse("a")}).
		Bind(ref.Parse("c"), &RefVal{Target: ref.Parse("b")})

	q, v, ok := s.Resolve(ref.Ref{}, ref.Parse("c"), true)
	if !ok {
		t.Fatal("c should resolve through the chain")
	}
	if q.String() != "a" || v.(*Int).Value != 42 {
		t.Errorf("want a=42, got %s=%s", q, v.Inspect())
	}
}

func TestResolveDetectsReferenceCycle(t *testing.T) {
	s := New().
		Bind(ref.Parse("a"), &RefVal{Target: ref.Parse("b")}).
		Bind(ref.Parse("b"), &RefVal{Target: ref.Parse("a")})

	if _, _, ok := s.Resolve(ref.Ref{}, ref.Parse("a"), true); ok {
		t.Error("cyclic reference chain must not resolve")
	}
}

func TestInheritProtoCopiesSubtree(t *testing.T) {
	s := New().
		Bind(ref.Parse("proto"), &Object{}).
		Bind(ref.Parse("proto.x"), &Int{Value: 1}).
		Bind(ref.Parse("proto.sub"), &Object{}).
		Bind(ref.Parse("proto.sub.y"), &Int{Value: 2})

	s2, err := s.InheritProto(ref.Ref{}, ref.Parse("proto"), ref.Parse("obj"))
	if err != nil {
		t.Fatalf("InheritProto: %v", err)
	}
	if v := mustFind(t, s2, "obj.x").(*Int); v.Value != 1 {
		t.Errorf("obj.x: want 1, got %d", v.Value)
	}
	if v := mustFind(t, s2, "obj.sub.y").(*Int); v.Value != 2 {
		t.Errorf("obj.sub.y: want 2, got %d", v.Value)
	}
	if mustFind(t, s2, "obj").Kind() != STORE_VAL {
		t.Error("obj should be bound as an object")
	}
}

func TestInheritProtoErrors(t *testing.T) {
	s := New().Bind(ref.Parse("x"), &Int{Value: 1})

	_, err := s.InheritProto(ref.Ref{}, ref.Parse("nope"), ref.Parse("obj"))
	if diagnostics.CodeOf(err) != diagnostics.CodeUnboundReference {
		t.Errorf("unbound source: want E%d, got %v", diagnostics.CodeUnboundReference, err)
	}
	_, err = s.InheritProto(ref.Ref{}, ref.Parse("x"), ref.Parse("obj"))
	if diagnostics.CodeOf(err) != diagnostics.CodeMalformedValue {
		t.Errorf("non-object source: want E%d, got %v", diagnostics.CodeMalformedValue, err)
	}
}

func TestAcceptRequiresRootObject(t *testing.T) {
	main := ref.Parse("main")

	_, err := New().Accept(main)
	if diagnostics.CodeOf(err) != diagnostics.CodeMainMissing {
		t.Errorf("missing root: want E%d, got %v", diagnostics.CodeMainMissing, err)
	}

	s := New().Bind(main, &Int{Value: 1})
	_, err = s.Accept(main)
	if diagnostics.CodeOf(err) != diagnostics.CodeMainNotObject {
		t.Errorf("non-object root: want E%d, got %v", diagnostics.CodeMainNotObject, err)
	}
}

func TestAcceptResolvesScalarLink(t *testing.T) {
	main := ref.Parse("main")
	s := New().
		Bind(ref.Parse("a"), &Object{}).
		Bind(ref.Parse("a.x"), &Int{Value: 7}).
		Bind(main, &Object{}).
		Bind(ref.Parse("main.y"), &Link{Target: ref.Parse("a.x")})

	s2, err := s.Accept(main)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if v := mustFind(t, s2, "main.y").(*Int); v.Value != 7 {
		t.Errorf("main.y: want 7, got %d", v.Value)
	}
	if left := s2.FindValue(LINK_VAL); len(left) != 0 {
		t.Errorf("no link may survive under an accepted root, got %v", left)
	}
}

func TestAcceptCopiesObjectTarget(t *testing.T) {
	main := ref.Parse("main")
	s := New().
		Bind(ref.Parse("template"), &Object{}).
		Bind(ref.Parse("template.cpu"), &Int{Value: 4}).
		Bind(main, &Object{}).
		Bind(ref.Parse("main.vm"), &Link{Target: ref.Parse("template")})

	s2, err := s.Accept(main)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if mustFind(t, s2, "main.vm").Kind() != STORE_VAL {
		t.Error("main.vm should become an object")
	}
	if v := mustFind(t, s2, "main.vm.cpu").(*Int); v.Value != 4 {
		t.Errorf("main.vm.cpu: want 4, got %d", v.Value)
	}
}

func TestAcceptResolvesNestedLinksInCopiedSubtree(t *testing.T) {
	main := ref.Parse("main")
	s := New().
		Bind(ref.Parse("port"), &Int{Value: 80}).
		Bind(ref.Parse("template"), &Object{}).
		Bind(ref.Parse("template.port"), &Link{Target: ref.Parse("port")}).
		Bind(main, &Object{}).
		Bind(ref.Parse("main.web"), &Link{Target: ref.Parse("template")})

	s2, err := s.Accept(main)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if v := mustFind(t, s2, "main.web.port").(*Int); v.Value != 80 {
		t.Errorf("main.web.port: want 80, got %d", v.Value)
	}
}

func TestAcceptReportsUnboundLinkTarget(t *testing.T) {
	main := ref.Parse("main")
	s := New().
		Bind(main, &Object{}).
		Bind(ref.Parse("main.y"), &Link{Target: ref.Parse("nope")})

	_, err := s.Accept(main)
	if diagnostics.CodeOf(err) != diagnostics.CodeUnboundReference {
		t.Errorf("want E%d, got %v", diagnostics.CodeUnboundReference, err)
	}
}

func TestAcceptReportsObjectLinkCycle(t *testing.T) {
	main := ref.Parse("main")
	s := New().
		Bind(ref.Parse("a"), &Object{}).
		Bind(ref.Parse("a.next"), &Link{Target: ref.Parse("b")}).
		Bind(ref.Parse("b"), &Object{}).
		Bind(ref.Parse("b.next"), &Link{Target: ref.Parse("a")}).
		Bind(main, &Object{}).
		Bind(ref.Parse("main.start"), &Link{Target: ref.Parse("a")})

	_, err := s.Accept(main)
	if diagnostics.CodeOf(err) != diagnostics.CodeLinkCycle {
		t.Errorf("want E%d, got %v", diagnostics.CodeLinkCycle, err)
	}
}

func TestAcceptReportsScalarLinkCycle(t *testing.T) {
	main := ref.Parse("main")
	s := New().
		Bind(main, &Object{}).
		Bind(ref.Parse("main.a"), &Link{Target: ref.Parse("main.b")}).
		Bind(ref.Parse("main.b"), &Link{Target: ref.Parse("main.a")})

	_, err := s.Accept(main)
	if diagnostics.CodeOf(err) != diagnostics.CodeLinkCycle {
		t.Errorf("mutual scalar links: want E%d, got %v", diagnostics.CodeLinkCycle, err)
	}
}

func TestRestrict(t *testing.T) {
	s := New().
		Bind(ref.Parse("schema"), &Object{}).
		Bind(ref.Parse("schema.x"), &TBD{}).
		Bind(ref.Parse("main"), &Object{}).
		Bind(ref.Parse("main.x"), &Int{Value: 1}).
		Bind(ref.Parse("mainframe"), &Int{Value: 9}).
		Bind(ref.Parse("global"), &Int{Value: 2})

	got := s.Restrict(ref.Parse("main"), ref.Parse("global"))
	if got.Len() != 3 {
		t.Fatalf("want 3 bindings, got %d: %v", got.Len(), got.Refs())
	}
	mustFind(t, got, "main")
	mustFind(t, got, "main.x")
	mustFind(t, got, "global")
	if _, ok := got.Find(ref.Parse("schema.x")); ok {
		t.Error("schema.x must not survive the restriction")
	}
	if _, ok := got.Find(ref.Parse("mainframe")); ok {
		t.Error("prefix matching must respect segment boundaries")
	}
}

func TestFindValue(t *testing.T) {
	s := New().
		Bind(ref.Parse("a"), &TBD{}).
		Bind(ref.Parse("b"), &Int{Value: 1}).
		Bind(ref.Parse("c"), &TBD{})

	got := s.FindValue(TBD_VAL)
	if len(got) != 2 || got[0].String() != "a" || got[1].String() != "c" {
		t.Errorf("FindValue(TBD): want [a c], got %v", got)
	}
}
