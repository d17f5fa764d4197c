package typesystem

// Subtype implements the <: relation: reflexive, transitive, with `any` as
// top. Object-family subtyping follows the nominal chain; lists are
// covariant; enums are subtypes only of themselves or `any`; the reference
// and schema wrappers delegate to their wrapped object-family chains.
func Subtype(a, b Type) bool {
	if a.Equal(b) {
		return true
	}
	if p, ok := b.(Primitive); ok && p == TAny {
		return true
	}
	switch bt := b.(type) {
	case TObject:
		if at, ok := a.(TObject); ok {
			return chainSubtype(at.Chain, bt.Chain)
		}
	case TSchema:
		if at, ok := a.(TSchema); ok {
			return chainSubtype(at.Chain, bt.Chain)
		}
	case TRef:
		if at, ok := a.(TRef); ok {
			return chainSubtype(at.Chain, bt.Chain)
		}
	case TList:
		if at, ok := a.(TList); ok {
			return Subtype(at.Elem, bt.Elem)
		}
	case TEnum:
		if at, ok := a.(TSymbol); ok {
			return at.Enum == bt.Name
		}
	}
	return false
}

// chainSubtype walks the single-inheritance chain: T_User(id, parent) is a
// subtype of T_User(id', _) iff id = id' or the parent chain reaches id'.
// Every chain is a subtype of the plain chain.
func chainSubtype(a, b Chain) bool {
	if _, ok := b.(PlainChain); ok {
		return true
	}
	target := b.(UserChain)
	for {
		u, ok := a.(UserChain)
		if !ok {
			return false
		}
		if u.Name == target.Name {
			return true
		}
		a = u.Parent
	}
}

// Equiv is mutual subtyping: type equivalence up to nominal identity.
func Equiv(a, b Type) bool {
	return Subtype(a, b) && Subtype(b, a)
}
