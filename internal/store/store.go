package store

import (
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/ref"
)

// maxAcceptRounds bounds link resolution; mutually recursive object links
// would otherwise copy subtrees into each other forever.
const maxAcceptRounds = 64

// Store is an immutable mapping from reference to tagged value. Every Bind
// returns a store in which the new mapping is visible and all other
// mappings are unchanged; first-bind order is preserved for deterministic
// iteration.
type Store struct {
	entries map[string]Value
	order   []string
}

func New() *Store {
	return &Store{entries: make(map[string]Value)}
}

func (s *Store) Len() int { return len(s.order) }

// Bind associates a reference with a value, superseding any earlier binding
// at the same reference.
func (s *Store) Bind(r ref.Ref, v Value) *Store {
	key := r.String()
	next := &Store{entries: make(map[string]Value, len(s.entries)+1)}
	for k, val := range s.entries {
		next.entries[k] = val
	}
	_, existed := s.entries[key]
	next.entries[key] = v
	if existed {
		next.order = s.order
	} else {
		next.order = make([]string, 0, len(s.order)+1)
		next.order = append(next.order, s.order...)
		next.order = append(next.order, key)
	}
	return next
}

func (s *Store) Find(r ref.Ref) (Value, bool) {
	v, ok := s.entries[r.String()]
	return v, ok
}

// Refs returns every bound reference in first-bind order.
func (s *Store) Refs() []ref.Ref {
	out := make([]ref.Ref, len(s.order))
	for i, k := range s.order {
		out[i] = ref.Parse(k)
	}
	return out
}

// Descendants returns all strict descendants of prefix, in first-bind order.
func (s *Store) Descendants(prefix ref.Ref) []ref.Ref {
	var out []ref.Ref
	for _, k := range s.order {
		r := ref.Parse(k)
		if len(r) > len(prefix) && prefix.IsPrefixOf(r) {
			out = append(out, r)
		}
	}
	return out
}

// Resolve finds a reference's fully qualified form and value, following
// nominal scoping: the reference is qualified against the namespace, and on
// a miss the namespace is shortened one segment at a time until root scope.
// With follow enabled, link and reference values are chased to their
// resolved target, except that a target rooting an object namespace is
// returned as-is (objects are never silently flattened).
func (s *Store) Resolve(namespace, r ref.Ref, follow bool) (ref.Ref, Value, bool) {
	q, v, ok, _ := s.resolve(namespace, r, follow)
	return q, v, ok
}

// resolve additionally reports whether a failed chase revisited a reference,
// so callers can tell a cyclic chain apart from a merely unbound one.
func (s *Store) resolve(namespace, r ref.Ref, follow bool) (ref.Ref, Value, bool, bool) {
	for n := namespace; ; n = n.Parent() {
		q := r.Qualify(n)
		if v, ok := s.entries[q.String()]; ok {
			if follow {
				return s.chase(q, v, make(map[string]bool))
			}
			return q, v, true, false
		}
		if len(n) == 0 {
			return nil, nil, false, false
		}
	}
}

func (s *Store) chase(q ref.Ref, v Value, visited map[string]bool) (ref.Ref, Value, bool, bool) {
	for {
		var target ref.Ref
		switch t := v.(type) {
		case *Link:
			target = t.Target
		case *RefVal:
			target = t.Target
		default:
			return q, v, true, false
		}
		if visited[q.String()] {
			return q, v, false, true
		}
		visited[q.String()] = true
		q2, v2, ok := s.Resolve(q.Parent(), target, false)
		if !ok {
			return q, v, false, false
		}
		q, v = q2, v2
	}
}

// InheritProto deep-copies the subtree of source (resolved against the
// namespace) to target. Used to propagate a parent schema's or a prototype's
// members; later bindings at the same sub-reference override copied ones.
func (s *Store) InheritProto(namespace, source, target ref.Ref) (*Store, error) {
	srcQ, v, ok := s.Resolve(namespace, source, true)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.CodeUnboundReference,
			"cannot inherit from unbound reference %s", source)
	}
	if v.Kind() != STORE_VAL {
		return nil, diagnostics.Errorf(diagnostics.CodeMalformedValue,
			"cannot inherit from %s: not an object", srcQ)
	}
	return s.copySubtree(srcQ, target), nil
}

func (s *Store) copySubtree(source, target ref.Ref) *Store {
	next := s.Bind(target, &Object{})
	for _, d := range s.Descendants(source) {
		rest, _ := d.StripPrefix(source)
		next = next.Bind(rest.Qualify(target), s.entries[d.String()])
	}
	return next
}

// Accept resolves every forward Link reachable under root against the fully
// built store, replacing each with its concrete target. A link resolving to
// an object namespace has the target subtree deep-copied to the link site;
// copied subtrees are rescanned, so nested links resolve too.
func (s *Store) Accept(root ref.Ref) (*Store, error) {
	rootVal, ok := s.Find(root)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.CodeMainMissing,
			"object %s is not bound", root)
	}
	if rootVal.Kind() != STORE_VAL {
		return nil, diagnostics.Errorf(diagnostics.CodeMainNotObject,
			"%s is bound to %s, not an object", root, rootVal.Inspect())
	}
	cur := s
	for round := 0; ; round++ {
		if round >= maxAcceptRounds {
			return nil, diagnostics.Errorf(diagnostics.CodeLinkCycle,
				"link resolution under %s did not terminate (cyclic object links?)", root)
		}
		links := cur.linksUnder(root)
		if len(links) == 0 {
			return cur, nil
		}
		for _, site := range links {
			lnk := cur.entries[site.String()].(*Link)
			q, v, ok, cyclic := cur.resolve(site.Parent(), lnk.Target, true)
			if cyclic {
				return nil, diagnostics.Errorf(diagnostics.CodeLinkCycle,
					"link %s -> %s forms a reference cycle", site, lnk.Target)
			}
			if !ok {
				return nil, diagnostics.Errorf(diagnostics.CodeUnboundReference,
					"forward link %s -> %s cannot be resolved", site, lnk.Target)
			}
			if v.Kind() == STORE_VAL {
				cur = cur.copySubtree(q, site)
			} else {
				cur = cur.Bind(site, v)
			}
		}
	}
}

func (s *Store) linksUnder(root ref.Ref) []ref.Ref {
	var out []ref.Ref
	for _, k := range s.order {
		r := ref.Parse(k)
		if !root.IsPrefixOf(r) {
			continue
		}
		if s.entries[k].Kind() == LINK_VAL {
			out = append(out, r)
		}
	}
	return out
}

// Restrict returns a store holding only the subtrees rooted at the given
// references, in first-bind order. Unbound roots contribute nothing. Used to
// narrow the fully elaborated store to the hand-off scope.
func (s *Store) Restrict(roots ...ref.Ref) *Store {
	next := New()
	for _, k := range s.order {
		r := ref.Parse(k)
		for _, root := range roots {
			if root.IsPrefixOf(r) {
				next = next.Bind(r, s.entries[k])
				break
			}
		}
	}
	return next
}

// FindValue locates all references bound to a value of the given kind, in
// first-bind order. Used by the completeness pass to hunt surviving TBDs.
func (s *Store) FindValue(kind ValueKind) []ref.Ref {
	var out []ref.Ref
	for _, k := range s.order {
		if s.entries[k].Kind() == kind {
			out = append(out, ref.Parse(k))
		}
	}
	return out
}
