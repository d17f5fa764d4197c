package typesystem

import (
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/ref"
)

// Binding associates a reference with a type. VarType is an optional second
// tag used to disambiguate enum symbols bound over another type.
type Binding struct {
	Ref     ref.Ref
	Type    Type
	VarType Type // nil unless a variable-type tag was recorded
}

// Env is an ordered, append-only sequence of (reference, type) bindings.
// The most recent binding for a reference is the active one. Every update
// returns a new environment; earlier snapshots stay valid.
type Env struct {
	bindings []Binding
}

func NewEnv() *Env {
	return &Env{}
}

func (e *Env) appendBinding(b Binding) *Env {
	next := make([]Binding, 0, len(e.bindings)+1)
	next = append(next, e.bindings...)
	next = append(next, b)
	return &Env{bindings: next}
}

// Bind adds or overrides the binding for a reference.
func (e *Env) Bind(r ref.Ref, t Type) *Env {
	return e.appendBinding(Binding{Ref: r, Type: t})
}

// BindVar additionally records a variable-type tag.
func (e *Env) BindVar(r ref.Ref, t, varType Type) *Env {
	return e.appendBinding(Binding{Ref: r, Type: t, VarType: varType})
}

// Find returns the active type at a reference.
func (e *Env) Find(r ref.Ref) (Type, error) {
	for i := len(e.bindings) - 1; i >= 0; i-- {
		if e.bindings[i].Ref.Equal(r) {
			return e.bindings[i].Type, nil
		}
	}
	return nil, diagnostics.Errorf(diagnostics.CodeUnboundReference,
		"unbound reference %s", r)
}

// active returns the most recent binding per reference, preserving
// first-bind order.
func (e *Env) active() []Binding {
	latest := make(map[string]int, len(e.bindings))
	for i, b := range e.bindings {
		latest[b.Ref.String()] = i
	}
	var out []Binding
	emitted := make(map[string]bool, len(latest))
	for _, b := range e.bindings {
		key := b.Ref.String()
		if emitted[key] {
			continue
		}
		emitted[key] = true
		out = append(out, e.bindings[latest[key]])
	}
	return out
}

// Copy duplicates all active bindings whose reference has the given prefix
// to a new prefix. Used when a prototype subtree is copied.
func (e *Env) Copy(prefix, target ref.Ref) *Env {
	next := e
	for _, b := range e.active() {
		rest, ok := b.Ref.StripPrefix(prefix)
		if !ok || len(rest) == 0 {
			continue
		}
		next = next.appendBinding(Binding{Ref: rest.Qualify(target), Type: b.Type, VarType: b.VarType})
	}
	return next
}

// Inherit merges a parent schema's member bindings into a child's
// namespace, keyed by the child's own reference.
func (e *Env) Inherit(parent, child ref.Ref) *Env {
	return e.Copy(parent, child)
}

// Resolve finds a reference's fully qualified form and type, following
// nominal scoping rules: qualify against the namespace and retry with the
// namespace shortened one segment at a time.
func (e *Env) Resolve(namespace, r ref.Ref) (ref.Ref, Type, error) {
	for n := namespace; ; n = n.Parent() {
		q := r.Qualify(n)
		if t, err := e.Find(q); err == nil {
			return q, t, nil
		}
		if len(n) == 0 {
			return nil, nil, diagnostics.Errorf(diagnostics.CodeUnboundReference,
				"unbound reference %s in namespace %s", r, namespace)
		}
	}
}

// VariablesWithPrefix subselects all active bindings under a prefix,
// optionally stripping it, to support scoped reasoning about one object's
// members.
func (e *Env) VariablesWithPrefix(prefix ref.Ref, strip bool) []Binding {
	var out []Binding
	for _, b := range e.active() {
		rest, ok := b.Ref.StripPrefix(prefix)
		if !ok || len(rest) == 0 {
			continue
		}
		if strip {
			out = append(out, Binding{Ref: rest, Type: b.Type, VarType: b.VarType})
		} else {
			out = append(out, b)
		}
	}
	return out
}

// MainOf extracts the active bindings rooted at a namespace (the namespace
// itself included, if bound).
func (e *Env) MainOf(namespace ref.Ref) []Binding {
	var out []Binding
	for _, b := range e.active() {
		if namespace.IsPrefixOf(b.Ref) {
			out = append(out, b)
		}
	}
	return out
}

// ReplaceForwardType rewrites the forward placeholder at a reference with
// its now-known concrete type. Mirrors store-level link resolution.
func (e *Env) ReplaceForwardType(r ref.Ref, t Type) *Env {
	return e.Bind(r, t)
}

// ResolveForwards replaces every active forward placeholder whose target is
// itself bound to a concrete type. A link-forward takes the target's type
// directly; a ref-forward to an object becomes a reference wrapper around
// the object's chain. Unresolvable placeholders are left for the
// well-formedness check to report.
func (e *Env) ResolveForwards() *Env {
	next := e
	for _, b := range e.active() {
		var target ref.Ref
		isRefForward := false
		switch f := b.Type.(type) {
		case TLinkForward:
			target = f.Target
		case TRefForward:
			target = f.Target
			isRefForward = true
		default:
			continue
		}
		_, t, err := next.Resolve(b.Ref.Parent(), target)
		if err != nil || IsForward(t) {
			continue
		}
		if isRefForward {
			if obj, ok := t.(TObject); ok {
				t = TRef{Chain: obj.Chain}
			}
		}
		next = next.ReplaceForwardType(b.Ref, t)
	}
	return next
}
