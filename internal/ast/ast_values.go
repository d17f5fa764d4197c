package ast

import (
	"strconv"
	"strings"

	"github.com/slate-lang/slate/internal/ref"
)

// Value is the right-hand shape of an assignment.
type Value interface {
	Node
	value()
}

// ExprValue carries an expression evaluated (or deferred) at build time.
type ExprValue struct{ Expr Expression }

func (v *ExprValue) value()         {}
func (v *ExprValue) String() string { return "= " + v.Expr.String() }

// LinkValue is a forward pointer to another reference.
type LinkValue struct{ Target ref.Ref }

func (v *LinkValue) value()         {}
func (v *LinkValue) String() string { return "-> " + v.Target.String() }

// ProtoValue builds an object from an optional named super-schema and an
// ordered chain of extension steps.
type ProtoValue struct {
	Schema string // "" when no super-schema
	Steps  []ProtoStep
}

func (v *ProtoValue) value() {}
func (v *ProtoValue) String() string {
	var out strings.Builder
	if v.Schema != "" {
		out.WriteString("isa " + v.Schema)
	}
	for i, s := range v.Steps {
		if i > 0 || v.Schema != "" {
			out.WriteString(" ")
		}
		out.WriteString(s.String())
	}
	return out.String()
}

// ProtoStep is one extension step: by reference or by inline block.
type ProtoStep interface {
	Node
	protoStep()
}

type RefStep struct{ Ref ref.Ref }

func (s *RefStep) protoStep()     {}
func (s *RefStep) String() string { return "extends " + s.Ref.String() }

type BlockStep struct{ Block *Block }

func (s *BlockStep) protoStep()     {}
func (s *BlockStep) String() string { return s.Block.String() }

// ActionValue declares a planner operator: parameters, cost, precondition
// and ordered effects.
type ActionValue struct {
	Params    []Param
	Cost      *int64 // nil means unspecified (defaults to 1 at compile time)
	Condition Constraint
	Effects   []EffectItem
}

func (v *ActionValue) value() {}
func (v *ActionValue) String() string {
	params := make([]string, len(v.Params))
	for i, p := range v.Params {
		params[i] = p.Name + ": " + p.Type
	}
	out := "action(" + strings.Join(params, ", ") + ")"
	if v.Cost != nil {
		out += " cost=" + strconv.FormatInt(*v.Cost, 10)
	}
	return out
}

type Param struct {
	Name string
	Type string
}

type EffectItem struct {
	Ref ref.Ref
	Val BasicLit
}

// Sentinel value shapes.

type TBDValue struct{}

func (v *TBDValue) value()         {}
func (v *TBDValue) String() string { return "= TBD" }

type UnknownValue struct{}

func (v *UnknownValue) value()         {}
func (v *UnknownValue) String() string { return "= unknown" }

type NoneValue struct{}

func (v *NoneValue) value()         {}
func (v *NoneValue) String() string { return "= none" }
