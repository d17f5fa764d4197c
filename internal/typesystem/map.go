package typesystem

import (
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/store"
)

// Map projects an environment into a reference→type lookup table.
type Map map[string]Type

// MapOf returns the active bindings as a Map.
func (e *Env) MapOf() Map {
	m := make(Map)
	for _, b := range e.active() {
		m[b.Ref.String()] = b.Type
	}
	return m
}

// WellFormed checks a candidate map against a catalog of declared schema
// and enum types: every member type must itself resolve to a declared or
// primitive type, and no forward placeholder may remain.
func WellFormed(candidate, declared Map) error {
	for key, t := range candidate {
		if err := wellFormedType(key, t, declared); err != nil {
			return err
		}
	}
	return nil
}

func wellFormedType(key string, t Type, declared Map) error {
	switch tt := t.(type) {
	case Primitive, TAction, TGlobal:
		return nil
	case TList:
		return wellFormedType(key, tt.Elem, declared)
	case TEnum:
		return requireDeclared(key, tt.Name, declared)
	case TSymbol:
		return requireDeclared(key, tt.Enum, declared)
	case TObject:
		return wellFormedChain(key, tt.Chain, declared)
	case TSchema:
		return wellFormedChain(key, tt.Chain, declared)
	case TRef:
		return wellFormedChain(key, tt.Chain, declared)
	case TLinkForward, TRefForward:
		return diagnostics.Errorf(diagnostics.CodeForwardType,
			"%s: forward type %s survived elaboration", key, t)
	default:
		return diagnostics.Errorf(diagnostics.CodeIllFormedMap,
			"%s: unrecognized type %s", key, t)
	}
}

func wellFormedChain(key string, c Chain, declared Map) error {
	for {
		u, ok := c.(UserChain)
		if !ok {
			return nil
		}
		if err := requireDeclared(key, u.Name, declared); err != nil {
			return err
		}
		c = u.Parent
	}
}

func requireDeclared(key, name string, declared Map) error {
	if _, ok := declared[name]; !ok {
		return diagnostics.Errorf(diagnostics.CodeIllFormedMap,
			"%s: type %s is not declared", key, name)
	}
	return nil
}

// MakeTypeValues computes, for a given type, the set of concrete values of
// that type observed across two paired (environment, store) snapshots,
// typically an initial and a desired state. Enum types additionally
// contribute their full symbol set. Used for exhaustiveness reasoning over
// constraints.
func MakeTypeValues(t Type, env1 *Env, st1 *store.Store, env2 *Env, st2 *store.Store) []store.Value {
	var out []store.Value
	seen := make(map[string]bool)
	add := func(v store.Value) {
		key := v.Inspect()
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	if et, ok := t.(TEnum); ok {
		for _, sym := range et.Symbols {
			add(&store.Str{Value: sym})
		}
	}
	collect := func(env *Env, st *store.Store) {
		if env == nil || st == nil {
			return
		}
		for _, b := range env.active() {
			if !Subtype(b.Type, t) {
				continue
			}
			v, ok := st.Find(b.Ref)
			if !ok {
				continue
			}
			if v.Kind() == store.BASIC_VAL {
				add(v)
			}
		}
	}
	collect(env1, st1)
	collect(env2, st2)
	return out
}
