package translator

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/config"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/exec"
	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/store"
	"github.com/slate-lang/slate/internal/typesystem"
)

// Translator elaborates an AST into a flattened store through three
// sequential passes: build, resolve forward references, validate
// completeness. Each pass consumes one store value and produces the next.
type Translator struct {
	Runner exec.Runner
	Main   ref.Ref
}

func New() *Translator {
	return &Translator{
		Runner: &exec.OSRunner{},
		Main:   ref.Parse(config.MainRef),
	}
}

// Result is the final elaborated configuration handed to downstream
// consumers: the flattened store, its type environment, and the accumulated
// global constraint (nil if no global blocks were declared).
type Result struct {
	Store  *store.Store
	Env    *typesystem.Env
	Global store.Constraint
}

// Translate runs all three passes. Any error aborts the whole elaboration;
// no partial store is returned.
func (t *Translator) Translate(ctx *ast.Context) (*Result, error) {
	st, env, err := t.Build(ctx)
	if err != nil {
		return nil, err
	}
	st, env, err = t.ResolvePass(st, env)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(st); err != nil {
		return nil, err
	}
	res := &Result{Store: st, Env: env}
	if g, ok := st.Find(ref.Parse(config.GlobalRef)); ok {
		if gv, ok := g.(*store.Global); ok {
			res.Global = gv.Formula
		}
	}
	return res, nil
}

// state threads the evolving store and environment through the pass-1 fold.
type state struct {
	st  *store.Store
	env *typesystem.Env
}

// Build is pass 1: a single left-to-right fold over the top-level context.
// Each item is compiled against the current store and produces the next;
// cross-references are not resolved yet.
func (t *Translator) Build(ctx *ast.Context) (*store.Store, *typesystem.Env, error) {
	s := state{st: store.New(), env: typesystem.NewEnv()}
	for _, item := range ctx.Items {
		var err error
		s, err = t.compileItem(s, ref.Ref{}, item)
		if err != nil {
			return nil, nil, err
		}
	}
	return s.st, s.env, nil
}

func (t *Translator) compileItem(s state, ns ref.Ref, item ast.Item) (state, error) {
	switch it := item.(type) {
	case *ast.SchemaDecl:
		return t.compileSchema(s, it)
	case *ast.EnumDecl:
		return t.compileEnum(s, it)
	case *ast.GlobalDecl:
		return t.compileGlobal(s, it)
	case *ast.Assignment:
		return t.compileAssignment(s, ns, it)
	default:
		return s, diagnostics.Errorf(diagnostics.CodeMalformedValue,
			"unrecognized context item %T", item)
	}
}

func (t *Translator) compileBlock(s state, ns ref.Ref, block *ast.Block) (state, error) {
	for _, item := range block.Items {
		var err error
		s, err = t.compileItem(s, ns, item)
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

func (t *Translator) compileAssignment(s state, ns ref.Ref, a *ast.Assignment) (state, error) {
	q := a.Ref.Qualify(ns)

	switch v := a.Value.(type) {
	case *ast.ExprValue:
		val, typ := t.compileExpr(q, v.Expr)
		s.st = s.st.Bind(q, val)
		s.env = s.env.Bind(q, typ)
		return s, nil

	case *ast.LinkValue:
		if v.Target.IsPrefixOf(q) || v.Target.Qualify(ns).IsPrefixOf(q) {
			return s, diagnostics.Errorf(diagnostics.CodeSelfLink,
				"illegal self-referential link %s -> %s", q, v.Target)
		}
		s.st = s.st.Bind(q, &store.Link{Target: v.Target})
		s.env = s.env.Bind(q, typesystem.TLinkForward{Target: v.Target})
		return s, nil

	case *ast.ProtoValue:
		return t.compileProto(s, ns, q, v)

	case *ast.ActionValue:
		return t.compileAction(s, q, v)

	case *ast.TBDValue:
		s.st = s.st.Bind(q, &store.TBD{})
		s.env = s.env.Bind(q, typesystem.TUndefined)
		return s, nil

	case *ast.UnknownValue:
		s.st = s.st.Bind(q, &store.Unknown{})
		s.env = s.env.Bind(q, typesystem.TUndefined)
		return s, nil

	case *ast.NoneValue:
		s.st = s.st.Bind(q, &store.None{})
		s.env = s.env.Bind(q, typesystem.TUndefined)
		return s, nil

	default:
		return s, diagnostics.Errorf(diagnostics.CodeMalformedValue,
			"unrecognized value shape %T at %s", a.Value, q)
	}
}

// compileProto builds an object from an optional super-schema and an
// ordered chain of extension steps. Steps are applied strictly in order;
// later bindings at the same sub-reference override earlier ones.
func (t *Translator) compileProto(s state, ns, q ref.Ref, proto *ast.ProtoValue) (state, error) {
	s.st = s.st.Bind(q, &store.Object{})

	var chain typesystem.Chain = typesystem.PlainChain{}
	if proto.Schema != "" {
		schemaRef := ref.New(proto.Schema)
		st, err := s.env.Find(schemaRef)
		if err != nil {
			return s, diagnostics.Errorf(diagnostics.CodeUnboundReference,
				"%s: schema %s is not declared", q, proto.Schema)
		}
		schemaType, ok := st.(typesystem.TSchema)
		if !ok {
			return s, diagnostics.Errorf(diagnostics.CodeSubtypeViolation,
				"%s: %s is %s, not a schema", q, proto.Schema, st)
		}
		chain = schemaType.Chain
		s.st, err = s.st.InheritProto(ref.Ref{}, schemaRef, q)
		if err != nil {
			return s, err
		}
		s.env = s.env.Inherit(schemaRef, q)
	}
	s.env = s.env.Bind(q, typesystem.TObject{Chain: chain})

	for _, step := range proto.Steps {
		switch st := step.(type) {
		case *ast.RefStep:
			srcQ, _, ok := s.st.Resolve(ns, st.Ref, true)
			if !ok {
				return s, diagnostics.Errorf(diagnostics.CodeUnboundReference,
					"%s: cannot extend unbound reference %s", q, st.Ref)
			}
			var err error
			s.st, err = s.st.InheritProto(ns, st.Ref, q)
			if err != nil {
				return s, err
			}
			s.env = s.env.Copy(srcQ, q)
			// keep q bound as an object; Copy only brings members
		case *ast.BlockStep:
			var err error
			s, err = t.compileBlock(s, q, st.Block)
			if err != nil {
				return s, err
			}
		}
	}

	return t.bindImplicitName(s, q), nil
}

// bindImplicitName gives every object a name member equal to its own last
// path segment (or "root" at the empty reference) unless a name is already
// bound to a non-placeholder value.
func (t *Translator) bindImplicitName(s state, q ref.Ref) state {
	nameRef := q.Append(config.NameMember)
	if existing, ok := s.st.Find(nameRef); ok {
		switch existing.Kind() {
		case store.TBD_VAL, store.UNKNOWN_VAL, store.NONE_VAL:
			// placeholder: override below
		default:
			return s
		}
	}
	name := q.Last()
	if name == "" {
		name = config.RootName
	}
	s.st = s.st.Bind(nameRef, &store.Str{Value: name})
	s.env = s.env.Bind(nameRef, typesystem.TStr)
	return s
}

// compileSchema declares a schema under its own top-level name, copying the
// parent's subtree first so the schema's own members override inherited
// ones.
func (t *Translator) compileSchema(s state, decl *ast.SchemaDecl) (state, error) {
	sref := ref.New(decl.Name)
	s.st = s.st.Bind(sref, &store.Object{})

	chain := typesystem.UserChain{Name: decl.Name, Parent: typesystem.PlainChain{}}
	if decl.Parent != "" {
		parentRef := ref.New(decl.Parent)
		pt, err := s.env.Find(parentRef)
		if err != nil {
			return s, diagnostics.Errorf(diagnostics.CodeUnboundReference,
				"schema %s: parent %s is not declared", decl.Name, decl.Parent)
		}
		parentSchema, ok := pt.(typesystem.TSchema)
		if !ok {
			return s, diagnostics.Errorf(diagnostics.CodeSubtypeViolation,
				"schema %s: parent %s is %s, not a schema", decl.Name, decl.Parent, pt)
		}
		chain.Parent = parentSchema.Chain
		s.st, err = s.st.InheritProto(ref.Ref{}, parentRef, sref)
		if err != nil {
			return s, err
		}
		s.env = s.env.Inherit(parentRef, sref)
	}
	s.env = s.env.Bind(sref, typesystem.TSchema{Chain: chain})

	return t.compileBlock(s, sref, decl.Block)
}

// compileEnum binds the symbol set at the enum's name and each symbol as a
// string member, typed as a symbol of the enum.
func (t *Translator) compileEnum(s state, decl *ast.EnumDecl) (state, error) {
	eref := ref.New(decl.Name)
	s.st = s.st.Bind(eref, &store.Enum{Name: decl.Name, Symbols: decl.Symbols})
	s.env = s.env.Bind(eref, typesystem.TEnum{Name: decl.Name, Symbols: decl.Symbols})
	for _, sym := range decl.Symbols {
		symRef := eref.Append(sym)
		s.st = s.st.Bind(symRef, &store.Str{Value: sym})
		s.env = s.env.BindVar(symRef, typesystem.TSymbol{Enum: decl.Name}, typesystem.TStr)
	}
	return s, nil
}

// compileGlobal conjoins the block's formula with any previously
// accumulated global constraint at the reserved global reference.
func (t *Translator) compileGlobal(s state, decl *ast.GlobalDecl) (state, error) {
	formula := compileConstraint(decl.Body)
	gref := ref.Parse(config.GlobalRef)

	if existing, ok := s.st.Find(gref); ok {
		g, ok := existing.(*store.Global)
		if !ok {
			return s, diagnostics.Errorf(diagnostics.CodeInternal,
				"reserved reference %s is bound to %s", gref, existing.Inspect())
		}
		formula = store.Conjoin(formula, g.Formula)
	}
	s.st = s.st.Bind(gref, &store.Global{Formula: formula})
	s.env = s.env.Bind(gref, typesystem.TGlobal{})
	return s, nil
}
