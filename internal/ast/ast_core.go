package ast

import (
	"strings"

	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/token"
)

// The AST is produced once by parsing and is an immutable, read-only input
// to the translator. The translator assumes it is syntactically well-formed
// and performs all semantic validation itself.

type Node interface {
	String() string
}

// Context is the top-level sequence of items in a source file.
type Context struct {
	Items []Item
}

func (c *Context) String() string {
	parts := make([]string, len(c.Items))
	for i, it := range c.Items {
		parts[i] = it.String()
	}
	return strings.Join(parts, "\n")
}

// Item is a top-level or block-level declaration.
type Item interface {
	Node
	item()
}

// Assignment binds a reference to a value shape within the enclosing
// namespace.
type Assignment struct {
	Token token.Token
	Ref   ref.Ref
	Value Value
}

func (a *Assignment) item() {}
func (a *Assignment) String() string {
	return a.Ref.String() + " " + a.Value.String() + ";"
}

// SchemaDecl declares a named schema with optional single nominal parent.
type SchemaDecl struct {
	Token  token.Token
	Name   string
	Parent string // "" when the schema has no parent
	Block  *Block
}

func (s *SchemaDecl) item() {}
func (s *SchemaDecl) String() string {
	out := "schema " + s.Name
	if s.Parent != "" {
		out += " extends " + s.Parent
	}
	return out + " " + s.Block.String()
}

// EnumDecl declares a named fixed symbol set.
type EnumDecl struct {
	Token   token.Token
	Name    string
	Symbols []string
}

func (e *EnumDecl) item() {}
func (e *EnumDecl) String() string {
	return "enum " + e.Name + " { " + strings.Join(e.Symbols, ", ") + " }"
}

// GlobalDecl contributes a constraint formula to the accumulated global.
type GlobalDecl struct {
	Token token.Token
	Body  Constraint
}

func (g *GlobalDecl) item() {}
func (g *GlobalDecl) String() string {
	return "global " + g.Body.String()
}

// Block is a nested sequence of assignments compiled into an object's or
// schema's namespace.
type Block struct {
	Items []Item
}

func (b *Block) String() string {
	parts := make([]string, len(b.Items))
	for i, it := range b.Items {
		parts[i] = it.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}
