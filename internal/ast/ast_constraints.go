package ast

import (
	"strings"

	"github.com/slate-lang/slate/internal/ref"
)

// Constraint is the invariant sublanguage used by global blocks and action
// preconditions. It compiles structurally; no evaluation occurs at compile
// time.
type Constraint interface {
	Node
	constraintNode()
}

type CTrue struct{}

func (c *CTrue) constraintNode() {}
func (c *CTrue) String() string  { return "true" }

// CCmp pairs a reference with a basic value: =, !=, <, <=, >, >=.
type CCmp struct {
	Op  string
	Ref ref.Ref
	Val BasicLit
}

func (c *CCmp) constraintNode() {}
func (c *CCmp) String() string {
	return c.Ref.String() + " " + c.Op + " " + c.Val.String() + ";"
}

type CIn struct {
	Ref  ref.Ref
	Vals *VecLit
}

func (c *CIn) constraintNode() {}
func (c *CIn) String() string  { return c.Ref.String() + " in " + c.Vals.String() + ";" }

type CNot struct{ Body Constraint }

func (c *CNot) constraintNode() {}
func (c *CNot) String() string  { return "not { " + c.Body.String() + " }" }

type CImply struct {
	Left  Constraint
	Right Constraint
}

func (c *CImply) constraintNode() {}
func (c *CImply) String() string {
	return "imply { " + c.Left.String() + " } { " + c.Right.String() + " }"
}

type CAnd struct{ Terms []Constraint }

func (c *CAnd) constraintNode() {}
func (c *CAnd) String() string  { return "and { " + joinConstraints(c.Terms) + " }" }

type COr struct{ Terms []Constraint }

func (c *COr) constraintNode() {}
func (c *COr) String() string  { return "or { " + joinConstraints(c.Terms) + " }" }

func joinConstraints(terms []Constraint) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
