package pipeline

import (
	"strings"

	"github.com/slate-lang/slate/internal/config"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/lexer"
	"github.com/slate-lang/slate/internal/parser"
	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/store"
	"github.com/slate-lang/slate/internal/translator"
)

// ParseProcessor lexes and parses the source into the AST.
type ParseProcessor struct{}

func (p *ParseProcessor) Name() string { return "parse" }

func (p *ParseProcessor) Process(ctx *Context) *Context {
	pr := parser.New(lexer.New(ctx.Source))
	tree := pr.ParseContext()
	if errs := pr.Errors(); len(errs) > 0 {
		ctx.Err = diagnostics.Errorf(diagnostics.CodeMalformedValue,
			"%s: %s", ctx.File, strings.Join(errs, "; "))
		return ctx
	}
	ctx.AST = tree
	return ctx
}

// BuildProcessor runs pass 1: the sequential fold building the initial
// store and the global-constraint accumulator.
type BuildProcessor struct {
	Translator *translator.Translator
}

func (p *BuildProcessor) Name() string { return "build" }

func (p *BuildProcessor) Process(ctx *Context) *Context {
	st, env, err := p.Translator.Build(ctx.AST)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Store = st
	ctx.Env = env
	return ctx
}

// ResolveProcessor runs pass 2: forward-reference acceptance rooted at the
// designated main object.
type ResolveProcessor struct {
	Translator *translator.Translator
}

func (p *ResolveProcessor) Name() string { return "resolve" }

func (p *ResolveProcessor) Process(ctx *Context) *Context {
	st, env, err := p.Translator.ResolvePass(ctx.Store, ctx.Env)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Store = st
	ctx.Env = env
	return ctx
}

// ValidateProcessor runs pass 3, the completeness gate, and extracts the
// accumulated global formula for downstream consumers.
type ValidateProcessor struct {
	Translator *translator.Translator
}

func (p *ValidateProcessor) Name() string { return "validate" }

func (p *ValidateProcessor) Process(ctx *Context) *Context {
	if err := p.Translator.Validate(ctx.Store); err != nil {
		ctx.Err = err
		return ctx
	}
	if g, ok := ctx.Store.Find(ref.Parse(config.GlobalRef)); ok {
		if gv, ok := g.(*store.Global); ok {
			ctx.Global = gv.Formula
		}
	}
	return ctx
}
