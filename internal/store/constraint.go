package store

import (
	"strings"

	"github.com/slate-lang/slate/internal/ref"
)

// Constraint is a compiled formula. Compilation is a one-to-one structural
// mapping from the AST; no evaluation happens here. Constraints are
// evaluated by an external consumer (the planner).
type Constraint interface {
	String() string
	constraint()
}

type CmpOp string

const (
	OpEq CmpOp = "="
	OpNe CmpOp = "!="
	OpLt CmpOp = "<"
	OpLe CmpOp = "<="
	OpGt CmpOp = ">"
	OpGe CmpOp = ">="
)

// True is the trivially satisfied constraint (default action precondition).
type True struct{}

func (t *True) constraint()    {}
func (t *True) String() string { return "true" }

// Cmp pairs a reference with a basic value under a comparison operator.
type Cmp struct {
	Op  CmpOp
	Ref ref.Ref
	Val Basic
}

func (c *Cmp) constraint() {}
func (c *Cmp) String() string {
	return c.Ref.String() + " " + string(c.Op) + " " + c.Val.Inspect()
}

// In tests membership of a reference's value in a vector.
type In struct {
	Ref  ref.Ref
	Vals *Vec
}

func (c *In) constraint() {}
func (c *In) String() string {
	return c.Ref.String() + " in " + c.Vals.Inspect()
}

type Not struct{ Body Constraint }

func (c *Not) constraint()    {}
func (c *Not) String() string { return "not (" + c.Body.String() + ")" }

type Imply struct {
	Left  Constraint
	Right Constraint
}

func (c *Imply) constraint() {}
func (c *Imply) String() string {
	return "(" + c.Left.String() + ") imply (" + c.Right.String() + ")"
}

type And struct{ Terms []Constraint }

func (c *And) constraint()    {}
func (c *And) String() string { return joinTerms("and", c.Terms) }

type Or struct{ Terms []Constraint }

func (c *Or) constraint()    {}
func (c *Or) String() string { return joinTerms("or", c.Terms) }

func joinTerms(op string, terms []Constraint) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return op + " (" + strings.Join(parts, "; ") + ")"
}

// Conjoin accumulates a new formula onto an existing global one. The newer
// conjuncts come first; And lists are flattened and structurally
// deduplicated (first occurrence kept), so repeated identical global blocks
// are idempotent and the result is deterministic.
func Conjoin(newer, older Constraint) Constraint {
	terms := append(flatten(newer), flatten(older)...)
	seen := make(map[string]bool, len(terms))
	out := make([]Constraint, 0, len(terms))
	for _, t := range terms {
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &And{Terms: out}
}

func flatten(c Constraint) []Constraint {
	if a, ok := c.(*And); ok {
		var out []Constraint
		for _, t := range a.Terms {
			out = append(out, flatten(t)...)
		}
		return out
	}
	return []Constraint{c}
}
