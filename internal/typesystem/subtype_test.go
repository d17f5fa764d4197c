package typesystem

import "testing"

func chainOf(names ...string) Chain {
	var c Chain = PlainChain{}
	for i := len(names) - 1; i >= 0; i-- {
		c = UserChain{Name: names[i], Parent: c}
	}
	return c
}

func TestSubtypeReflexive(t *testing.T) {
	types := []Type{
		TBool, TInt, TStr, TAny,
		TEnum{Name: "State"},
		TSymbol{Enum: "State"},
		TList{Elem: TInt},
		TObject{Chain: chainOf("VM", "Machine")},
		TRef{Chain: chainOf("VM")},
		TSchema{Chain: chainOf("Machine")},
	}
	for _, typ := range types {
		if !Subtype(typ, typ) {
			t.Errorf("Subtype(%s, %s) must hold", typ, typ)
		}
	}
}

func TestAnyIsTop(t *testing.T) {
	types := []Type{TBool, TInt, TEnum{Name: "E"}, TObject{Chain: PlainChain{}}, TList{Elem: TStr}}
	for _, typ := range types {
		if !Subtype(typ, TAny) {
			t.Errorf("Subtype(%s, any) must hold", typ)
		}
	}
	if Subtype(TAny, TInt) {
		t.Error("any must not be a subtype of int")
	}
}

func TestChainSubtyping(t *testing.T) {
	machine := chainOf("Machine")
	vm := chainOf("VM", "Machine")
	cloudVM := chainOf("CloudVM", "VM", "Machine")

	tests := []struct {
		a, b Type
		want bool
	}{
		{TObject{Chain: vm}, TObject{Chain: machine}, true},
		{TObject{Chain: cloudVM}, TObject{Chain: machine}, true}, // transitive
		{TObject{Chain: cloudVM}, TObject{Chain: vm}, true},
		{TObject{Chain: machine}, TObject{Chain: vm}, false},
		{TObject{Chain: vm}, TObject{Chain: PlainChain{}}, true}, // plain object is the family top
		{TObject{Chain: PlainChain{}}, TObject{Chain: vm}, false},
		{TRef{Chain: vm}, TRef{Chain: machine}, true},
		{TSchema{Chain: vm}, TSchema{Chain: machine}, true},
		{TRef{Chain: vm}, TObject{Chain: machine}, false}, // wrappers do not mix
	}
	for _, tt := range tests {
		if got := Subtype(tt.a, tt.b); got != tt.want {
			t.Errorf("Subtype(%s, %s): want %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestListCovariance(t *testing.T) {
	vm := chainOf("VM", "Machine")
	machine := chainOf("Machine")
	if !Subtype(TList{Elem: TObject{Chain: vm}}, TList{Elem: TObject{Chain: machine}}) {
		t.Error("lists must be covariant in their element type")
	}
	if Subtype(TList{Elem: TInt}, TList{Elem: TStr}) {
		t.Error("[int] must not be a subtype of [string]")
	}
	if !Subtype(TList{Elem: TInt}, TAny) {
		t.Error("[int] must be a subtype of any")
	}
}

func TestSymbolSubtypeOfItsEnum(t *testing.T) {
	if !Subtype(TSymbol{Enum: "State"}, TEnum{Name: "State"}) {
		t.Error("a symbol must be a subtype of its own enum")
	}
	if Subtype(TSymbol{Enum: "State"}, TEnum{Name: "Mode"}) {
		t.Error("a symbol must not be a subtype of a different enum")
	}
	if Subtype(TEnum{Name: "State"}, TEnum{Name: "Mode"}) {
		t.Error("distinct enums are unrelated")
	}
}

func TestEquiv(t *testing.T) {
	vm := chainOf("VM", "Machine")
	machine := chainOf("Machine")
	if !Equiv(TObject{Chain: vm}, TObject{Chain: vm}) {
		t.Error("Equiv must be reflexive")
	}
	if Equiv(TObject{Chain: vm}, TObject{Chain: machine}) {
		t.Error("strict subtypes are not equivalent")
	}
}
