package translator

import (
	"github.com/slate-lang/slate/internal/config"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/store"
	"github.com/slate-lang/slate/internal/typesystem"
)

// ResolvePass is pass 2: accept the designated main object, resolving every
// forward link reachable from its subtree against the fully built store,
// then force the lazy values under it so downstream consumers see resolved
// basics. The store handed onward is narrowed to main's subtree plus the
// accumulated global constraint; schemas, enums and prototypes are
// elaboration scaffolding and stay behind, deferred members and all.
func (t *Translator) ResolvePass(st *store.Store, env *typesystem.Env) (*store.Store, *typesystem.Env, error) {
	st, err := st.Accept(t.Main)
	if err != nil {
		return nil, nil, err
	}
	st, err = t.forceUnder(st, t.Main)
	if err != nil {
		return nil, nil, err
	}
	st = st.Restrict(t.Main, ref.Parse(config.GlobalRef))
	return st, env.ResolveForwards(), nil
}

// forceUnder forces every lazy value in root's subtree. Schema prototypes
// outside the subtree keep their deferred members; only what main reaches
// is demanded.
func (t *Translator) forceUnder(st *store.Store, root ref.Ref) (*store.Store, error) {
	for _, r := range append(st.Descendants(root), root) {
		v, ok := st.Find(r)
		if !ok || v.Kind() != store.LAZY_VAL {
			continue
		}
		forced, err := t.Force(st, r.Parent(), v)
		if err != nil {
			return nil, err
		}
		st = st.Bind(r, forced)
	}
	return st, nil
}

// Validate is pass 3, the authoritative completeness gate: no TBD may
// survive in the hand-off store. It sees only main's subtree and the global
// formula, so a schema member declared TBD and overridden by every instance
// never trips it. Running it on an already-validated store is a no-op.
func (t *Translator) Validate(st *store.Store) error {
	if refs := st.FindValue(store.TBD_VAL); len(refs) > 0 {
		return diagnostics.Errorf(diagnostics.CodeUndetermined,
			"%s = TBD", refs[0])
	}
	return nil
}
