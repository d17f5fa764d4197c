package pipeline

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/store"
	"github.com/slate-lang/slate/internal/translator"
	"github.com/slate-lang/slate/internal/typesystem"
)

// Context threads the artifacts of elaboration through the stages.
type Context struct {
	File   string
	Source string

	AST    *ast.Context
	Store  *store.Store
	Env    *typesystem.Env
	Global store.Constraint

	Err error
}

// Processor is one stage of the elaboration pipeline.
type Processor interface {
	Name() string
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. This is a fail-fast batch compiler: stages
// after a failed stage are skipped and the first error is reported.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Err != nil {
			return ctx
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}

// Default assembles the standard stage sequence for a translator.
func Default(t *translator.Translator) *Pipeline {
	return New(
		&ParseProcessor{},
		&BuildProcessor{Translator: t},
		&ResolveProcessor{Translator: t},
		&ValidateProcessor{Translator: t},
	)
}
