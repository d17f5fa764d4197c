package translator

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/config"
	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/store"
	"github.com/slate-lang/slate/internal/typesystem"
)

// compileAction builds the operator record: parameters are recorded
// verbatim (validation is deferred to a later planner-side pass), the cost
// defaults to 1, the precondition to the trivially-true constraint. Effects
// keep their declaration order; duplicates are allowed, last one wins when
// later applied. The action performs no evaluation itself.
func (t *Translator) compileAction(s state, q ref.Ref, av *ast.ActionValue) (state, error) {
	action := &store.Action{
		Ref:          q,
		Cost:         config.DefaultActionCost,
		Precondition: &store.True{},
	}
	for _, p := range av.Params {
		action.Params = append(action.Params, store.Param{Name: p.Name, Type: p.Type})
	}
	if av.Cost != nil {
		action.Cost = *av.Cost
	}
	if av.Condition != nil {
		action.Precondition = compileConstraint(av.Condition)
	}
	for _, eff := range av.Effects {
		action.Effects = append(action.Effects, store.Effect{
			Ref: eff.Ref,
			Val: compileBasicLit(eff.Val),
		})
	}

	s.st = s.st.Bind(q, action)
	s.env = s.env.Bind(q, typesystem.TAction{})
	return s, nil
}
