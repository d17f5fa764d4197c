package translator

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/store"
)

// compileConstraint is a direct one-to-one structural mapping from the AST
// constraint grammar to the compiled formula. Nothing is evaluated here.
func compileConstraint(c ast.Constraint) store.Constraint {
	switch cn := c.(type) {
	case *ast.CTrue:
		return &store.True{}
	case *ast.CCmp:
		return &store.Cmp{Op: store.CmpOp(cn.Op), Ref: cn.Ref, Val: compileBasicLit(cn.Val)}
	case *ast.CIn:
		return &store.In{Ref: cn.Ref, Vals: compileVec(cn.Vals)}
	case *ast.CNot:
		return &store.Not{Body: compileConstraint(cn.Body)}
	case *ast.CImply:
		return &store.Imply{
			Left:  compileConstraint(cn.Left),
			Right: compileConstraint(cn.Right),
		}
	case *ast.CAnd:
		return &store.And{Terms: compileConstraintList(cn.Terms)}
	case *ast.COr:
		return &store.Or{Terms: compileConstraintList(cn.Terms)}
	default:
		return &store.True{}
	}
}

func compileConstraintList(terms []ast.Constraint) []store.Constraint {
	out := make([]store.Constraint, len(terms))
	for i, t := range terms {
		out[i] = compileConstraint(t)
	}
	return out
}
