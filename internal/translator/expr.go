package translator

import (
	"regexp"
	"strings"

	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/store"
	"github.com/slate-lang/slate/internal/typesystem"
)

// maxForceDepth bounds Force against pathological lazy/reference chains.
const maxForceDepth = 1000

// compileExpr turns an expression into an immediate basic value or a lazy
// closure deferring evaluation to force time. The closure captures the
// namespace of the binding; the store is passed in at force time.
func (t *Translator) compileExpr(bound ref.Ref, e ast.Expression) (store.Value, typesystem.Type) {
	switch lit := e.(type) {
	case *ast.BoolLit:
		return &store.Bool{Value: lit.Value}, typesystem.TBool
	case *ast.IntLit:
		return &store.Int{Value: lit.Value}, typesystem.TInt
	case *ast.FloatLit:
		return &store.Float{Value: lit.Value}, typesystem.TFloat
	case *ast.StrLit:
		return &store.Str{Value: lit.Value}, typesystem.TStr
	case *ast.NullLit:
		return &store.Null{}, typesystem.TNull
	case *ast.VecLit:
		return compileVec(lit), typesystem.TList{Elem: vecElemType(lit)}
	case *ast.RefLit:
		return &store.RefVal{Target: lit.Ref}, typesystem.TRefForward{Target: lit.Ref}
	default:
		return &store.Lazy{Namespace: bound.Parent(), Expr: e}, typesystem.TUndefined
	}
}

func compileVec(lit *ast.VecLit) *store.Vec {
	vec := &store.Vec{}
	for _, e := range lit.Elems {
		vec.Elems = append(vec.Elems, compileBasicLit(e))
	}
	return vec
}

func compileBasicLit(lit ast.BasicLit) store.Basic {
	switch l := lit.(type) {
	case *ast.BoolLit:
		return &store.Bool{Value: l.Value}
	case *ast.IntLit:
		return &store.Int{Value: l.Value}
	case *ast.FloatLit:
		return &store.Float{Value: l.Value}
	case *ast.StrLit:
		return &store.Str{Value: l.Value}
	case *ast.NullLit:
		return &store.Null{}
	case *ast.VecLit:
		return compileVec(l)
	case *ast.RefLit:
		return &store.RefVal{Target: l.Ref}
	default:
		return &store.Null{}
	}
}

func vecElemType(lit *ast.VecLit) typesystem.Type {
	if len(lit.Elems) == 0 {
		return typesystem.TAny
	}
	switch lit.Elems[0].(type) {
	case *ast.BoolLit:
		return typesystem.TBool
	case *ast.IntLit:
		return typesystem.TInt
	case *ast.FloatLit:
		return typesystem.TFloat
	case *ast.StrLit:
		return typesystem.TStr
	default:
		return typesystem.TAny
	}
}

// Force repeatedly unwraps lazy layers and, when the result is a
// reference-valued basic, follows the reference through the store. A target
// rooting an object namespace is returned unresolved; objects are never
// silently flattened into a scalar.
func (t *Translator) Force(st *store.Store, ns ref.Ref, v store.Value) (store.Value, error) {
	for depth := 0; ; depth++ {
		if depth >= maxForceDepth {
			return nil, diagnostics.Errorf(diagnostics.CodeInternal,
				"evaluation did not terminate in namespace %s", ns)
		}
		switch val := v.(type) {
		case *store.Lazy:
			next, err := t.evalExpr(st, val.Namespace, val.Expr)
			if err != nil {
				return nil, err
			}
			v = next
		case *store.RefVal:
			q, resolved, ok := st.Resolve(ns, val.Target, true)
			if !ok {
				return nil, diagnostics.Errorf(diagnostics.CodeUnboundReference,
					"unbound reference %s in namespace %s", val.Target, ns)
			}
			if resolved.Kind() == store.STORE_VAL {
				return val, nil
			}
			v = resolved
			ns = q.Parent()
		default:
			return v, nil
		}
	}
}

func (t *Translator) evalForced(st *store.Store, ns ref.Ref, e ast.Expression) (store.Value, error) {
	v, err := t.evalExpr(st, ns, e)
	if err != nil {
		return nil, err
	}
	return t.Force(st, ns, v)
}

// evalExpr evaluates one expression layer. Operand types are checked here,
// at force time, not at compile time: a stale or ill-typed expression is
// only an error when actually demanded.
func (t *Translator) evalExpr(st *store.Store, ns ref.Ref, e ast.Expression) (store.Value, error) {
	switch ex := e.(type) {
	case *ast.BoolLit, *ast.IntLit, *ast.FloatLit, *ast.StrLit, *ast.NullLit, *ast.VecLit, *ast.RefLit:
		return compileBasicLit(ex.(ast.BasicLit)), nil

	case *ast.EqualExpr:
		left, err := t.evalForced(st, ns, ex.Left)
		if err != nil {
			return nil, err
		}
		right, err := t.evalForced(st, ns, ex.Right)
		if err != nil {
			return nil, err
		}
		return &store.Bool{Value: valuesEqual(left, right)}, nil

	case *ast.AndExpr:
		left, right, err := t.boolOperands(st, ns, ex.Left, ex.Right)
		if err != nil {
			return nil, err
		}
		return &store.Bool{Value: left && right}, nil

	case *ast.OrExpr:
		left, right, err := t.boolOperands(st, ns, ex.Left, ex.Right)
		if err != nil {
			return nil, err
		}
		return &store.Bool{Value: left || right}, nil

	case *ast.ImplyExpr:
		left, right, err := t.boolOperands(st, ns, ex.Left, ex.Right)
		if err != nil {
			return nil, err
		}
		return &store.Bool{Value: !left || right}, nil

	case *ast.NotExpr:
		v, err := t.evalForced(st, ns, ex.Operand)
		if err != nil {
			return nil, err
		}
		b, ok := v.(*store.Bool)
		if !ok {
			return nil, diagnostics.Errorf(diagnostics.CodeNonBooleanUnary,
				"operand of ! is not boolean: %s", v.Inspect())
		}
		return &store.Bool{Value: !b.Value}, nil

	case *ast.AddExpr:
		return t.evalAdd(st, ns, ex)

	case *ast.MatchExpr:
		return t.evalMatch(st, ns, ex)

	case *ast.IfExpr:
		return t.evalIf(st, ns, ex)

	case *ast.ShellExpr:
		return t.evalShell(st, ns, ex)

	default:
		return nil, diagnostics.Errorf(diagnostics.CodeMalformedValue,
			"unrecognized expression %T", e)
	}
}

func (t *Translator) boolOperands(st *store.Store, ns ref.Ref, le, re ast.Expression) (bool, bool, error) {
	lv, err := t.evalForced(st, ns, le)
	if err != nil {
		return false, false, err
	}
	rv, err := t.evalForced(st, ns, re)
	if err != nil {
		return false, false, err
	}
	lb, ok := lv.(*store.Bool)
	if !ok {
		return false, false, diagnostics.Errorf(diagnostics.CodeNonBooleanLeft,
			"left operand is not boolean: %s", lv.Inspect())
	}
	rb, ok := rv.(*store.Bool)
	if !ok {
		return false, false, diagnostics.Errorf(diagnostics.CodeNonBooleanRight,
			"right operand is not boolean: %s", rv.Inspect())
	}
	return lb.Value, rb.Value, nil
}

// valuesEqual is total: numeric operands cross-coerce, references were
// already resolved by forcing, everything else compares structurally, and a
// kind mismatch is simply false.
func valuesEqual(a, b store.Value) bool {
	if an, aok := numeric(a); aok {
		if bn, bok := numeric(b); bok {
			return an == bn
		}
		return false
	}
	switch av := a.(type) {
	case *store.Bool:
		bv, ok := b.(*store.Bool)
		return ok && av.Value == bv.Value
	case *store.Str:
		bv, ok := b.(*store.Str)
		return ok && av.Value == bv.Value
	case *store.Null:
		_, ok := b.(*store.Null)
		return ok
	case *store.RefVal:
		bv, ok := b.(*store.RefVal)
		return ok && av.Target.Equal(bv.Target)
	case *store.Vec:
		bv, ok := b.(*store.Vec)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !valuesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return a.Kind() == b.Kind()
	}
}

func numeric(v store.Value) (float64, bool) {
	switch n := v.(type) {
	case *store.Int:
		return float64(n.Value), true
	case *store.Float:
		return n.Value, true
	}
	return 0, false
}

// evalAdd widens int to float on a mixed pair and concatenates strings;
// anything else fails with a position-specific error.
func (t *Translator) evalAdd(st *store.Store, ns ref.Ref, ex *ast.AddExpr) (store.Value, error) {
	lv, err := t.evalForced(st, ns, ex.Left)
	if err != nil {
		return nil, err
	}
	rv, err := t.evalForced(st, ns, ex.Right)
	if err != nil {
		return nil, err
	}

	if li, ok := lv.(*store.Int); ok {
		if ri, ok := rv.(*store.Int); ok {
			return &store.Int{Value: li.Value + ri.Value}, nil
		}
	}
	ln, lnum := numeric(lv)
	rn, rnum := numeric(rv)
	if lnum && rnum {
		return &store.Float{Value: ln + rn}, nil
	}
	if ls, ok := lv.(*store.Str); ok {
		if rs, ok := rv.(*store.Str); ok {
			return &store.Str{Value: ls.Value + rs.Value}, nil
		}
	}

	lBad := !lnum && !isStr(lv)
	rBad := !rnum && !isStr(rv)
	switch {
	case lBad && rBad:
		return nil, diagnostics.Errorf(diagnostics.CodeNotBasicBoth,
			"neither operand of + is addable: %s, %s", lv.Inspect(), rv.Inspect())
	case lBad:
		return nil, diagnostics.Errorf(diagnostics.CodeNotBasicLeft,
			"left operand of + is not addable: %s", lv.Inspect())
	case rBad:
		return nil, diagnostics.Errorf(diagnostics.CodeNotBasicRight,
			"right operand of + is not addable: %s", rv.Inspect())
	default:
		// numeric on one side, string on the other
		return nil, diagnostics.Errorf(diagnostics.CodeNotBasicBoth,
			"mismatched operands of +: %s, %s", lv.Inspect(), rv.Inspect())
	}
}

func isStr(v store.Value) bool {
	_, ok := v.(*store.Str)
	return ok
}

// evalMatch tests a string operand against a regular expression; a
// non-matching pattern yields false rather than erroring.
func (t *Translator) evalMatch(st *store.Store, ns ref.Ref, ex *ast.MatchExpr) (store.Value, error) {
	v, err := t.evalForced(st, ns, ex.Operand)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*store.Str)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.CodeNonStringOperand,
			"operand of =~ is not a string: %s", v.Inspect())
	}
	re, err := regexp.Compile(ex.Pattern)
	if err != nil {
		return nil, diagnostics.Errorf(diagnostics.CodeMalformedValue,
			"invalid pattern %q: %v", ex.Pattern, err)
	}
	return &store.Bool{Value: re.MatchString(s.Value)}, nil
}

// evalIf forces the condition to a boolean and then evaluates BOTH branches
// eagerly, discarding the unchosen value. This mirrors the original
// semantics deliberately; see the design notes before changing it.
func (t *Translator) evalIf(st *store.Store, ns ref.Ref, ex *ast.IfExpr) (store.Value, error) {
	cond, err := t.evalForced(st, ns, ex.Cond)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*store.Bool)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.CodeNonBooleanUnary,
			"if condition is not boolean: %s", cond.Inspect())
	}
	thenV, err := t.evalForced(st, ns, ex.Then)
	if err != nil {
		return nil, err
	}
	elseV, err := t.evalForced(st, ns, ex.Else)
	if err != nil {
		return nil, err
	}
	if b.Value {
		return thenV, nil
	}
	return elseV, nil
}

// evalShell interpolates ${...} names against the current store and
// namespace, then hands the command to the runner and wraps its stdout.
func (t *Translator) evalShell(st *store.Store, ns ref.Ref, ex *ast.ShellExpr) (store.Value, error) {
	command, err := t.interpolate(st, ns, ex.Command)
	if err != nil {
		return nil, err
	}
	out, err := t.Runner.Run(command)
	if err != nil {
		return nil, diagnostics.Errorf(diagnostics.CodeShellFailed,
			"shell execution failed: %v", err)
	}
	return &store.Str{Value: out}, nil
}

// interpolate substitutes each ${name} with the named value, resolved in
// the current namespace and forced to a basic scalar.
func (t *Translator) interpolate(st *store.Store, ns ref.Ref, command string) (string, error) {
	var out strings.Builder
	rest := command
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:start])
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return "", diagnostics.Errorf(diagnostics.CodeSubstUnresolved,
				"unterminated ${ in command %q", command)
		}
		name := rest[start+2 : start+end]
		rest = rest[start+end+1:]

		target := ref.Parse(name)
		q, v, ok := st.Resolve(ns, target, true)
		if !ok {
			return "", diagnostics.Errorf(diagnostics.CodeSubstUnresolved,
				"undefined name %s in command substitution", name)
		}
		forced, err := t.Force(st, q.Parent(), v)
		if err != nil {
			return "", err
		}
		text, ok := scalarText(forced)
		if !ok {
			return "", diagnostics.Errorf(diagnostics.CodeSubstNotScalar,
				"%s does not resolve to a scalar (got %s)", name, forced.Inspect())
		}
		out.WriteString(text)
	}
}

func scalarText(v store.Value) (string, bool) {
	switch s := v.(type) {
	case *store.Str:
		return s.Value, true
	case *store.Int, *store.Float, *store.Bool:
		return s.(store.Basic).Inspect(), true
	default:
		return "", false
	}
}
