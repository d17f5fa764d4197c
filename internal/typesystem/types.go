package typesystem

import (
	"strings"

	"github.com/slate-lang/slate/internal/ref"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Equal(Type) bool
}

// Primitive covers the scalar types plus the lattice endpoints.
type Primitive string

const (
	TBool      Primitive = "bool"
	TInt       Primitive = "int"
	TFloat     Primitive = "float"
	TStr       Primitive = "string"
	TNull      Primitive = "null"
	TUndefined Primitive = "undefined"
	TAny       Primitive = "any"
)

func (p Primitive) String() string { return string(p) }
func (p Primitive) Equal(o Type) bool {
	q, ok := o.(Primitive)
	return ok && p == q
}

type TAction struct{}

func (t TAction) String() string    { return "action" }
func (t TAction) Equal(o Type) bool { _, ok := o.(TAction); return ok }

// TGlobal is the type of the accumulated global constraint formula.
type TGlobal struct{}

func (t TGlobal) String() string    { return "constraint(global)" }
func (t TGlobal) Equal(o Type) bool { _, ok := o.(TGlobal); return ok }

type TEnum struct {
	Name    string
	Symbols []string
}

func (t TEnum) String() string { return "enum " + t.Name }
func (t TEnum) Equal(o Type) bool {
	q, ok := o.(TEnum)
	return ok && t.Name == q.Name
}

// TSymbol is the type of one symbol of a named enum.
type TSymbol struct{ Enum string }

func (t TSymbol) String() string { return "symbol(" + t.Enum + ")" }
func (t TSymbol) Equal(o Type) bool {
	q, ok := o.(TSymbol)
	return ok && t.Enum == q.Enum
}

type TList struct{ Elem Type }

func (t TList) String() string { return "[" + t.Elem.String() + "]" }
func (t TList) Equal(o Type) bool {
	q, ok := o.(TList)
	return ok && t.Elem.Equal(q.Elem)
}

// Chain is the nominal single-inheritance hierarchy carried by the object
// family: either plain (no user schema) or a user schema with a parent
// chain.
type Chain interface {
	String() string
	ChainEqual(Chain) bool
}

type PlainChain struct{}

func (c PlainChain) String() string { return "object" }
func (c PlainChain) ChainEqual(o Chain) bool {
	_, ok := o.(PlainChain)
	return ok
}

type UserChain struct {
	Name   string
	Parent Chain
}

func (c UserChain) String() string {
	names := []string{c.Name}
	p := c.Parent
	for {
		u, ok := p.(UserChain)
		if !ok {
			break
		}
		names = append(names, u.Name)
		p = u.Parent
	}
	return strings.Join(names, "<:")
}

func (c UserChain) ChainEqual(o Chain) bool {
	q, ok := o.(UserChain)
	return ok && c.Name == q.Name
}

type TSchema struct{ Chain Chain }

func (t TSchema) String() string { return "schema(" + t.Chain.String() + ")" }
func (t TSchema) Equal(o Type) bool {
	q, ok := o.(TSchema)
	return ok && t.Chain.ChainEqual(q.Chain)
}

type TObject struct{ Chain Chain }

func (t TObject) String() string { return "object(" + t.Chain.String() + ")" }
func (t TObject) Equal(o Type) bool {
	q, ok := o.(TObject)
	return ok && t.Chain.ChainEqual(q.Chain)
}

// TRef is the reference wrapper around the object family.
type TRef struct{ Chain Chain }

func (t TRef) String() string { return "ref(" + t.Chain.String() + ")" }
func (t TRef) Equal(o Type) bool {
	q, ok := o.(TRef)
	return ok && t.Chain.ChainEqual(q.Chain)
}

// Forward placeholder types. They stand in for a target whose type is not
// yet known and must not survive elaboration.

type TLinkForward struct{ Target ref.Ref }

func (t TLinkForward) String() string { return "link-forward(" + t.Target.String() + ")" }
func (t TLinkForward) Equal(o Type) bool {
	q, ok := o.(TLinkForward)
	return ok && t.Target.Equal(q.Target)
}

type TRefForward struct{ Target ref.Ref }

func (t TRefForward) String() string { return "ref-forward(" + t.Target.String() + ")" }
func (t TRefForward) Equal(o Type) bool {
	q, ok := o.(TRefForward)
	return ok && t.Target.Equal(q.Target)
}

// IsForward reports whether t is a placeholder that must be replaced before
// the environment is final.
func IsForward(t Type) bool {
	switch t.(type) {
	case TLinkForward, TRefForward:
		return true
	}
	return false
}
