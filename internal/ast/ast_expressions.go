package ast

import (
	"strconv"
	"strings"

	"github.com/slate-lang/slate/internal/ref"
)

// Expression is the grammar of values that may be computed at build time or
// deferred as lazy closures.
type Expression interface {
	Node
	expression()
}

// BasicLit is the subset of expressions denoting basic values directly:
// scalars, vectors and reference values. Constraint comparisons pair a
// reference with a BasicLit.
type BasicLit interface {
	Expression
	basicLit()
}

type BoolLit struct{ Value bool }

func (l *BoolLit) expression()    {}
func (l *BoolLit) basicLit()      {}
func (l *BoolLit) String() string { return strconv.FormatBool(l.Value) }

type IntLit struct{ Value int64 }

func (l *IntLit) expression()    {}
func (l *IntLit) basicLit()      {}
func (l *IntLit) String() string { return strconv.FormatInt(l.Value, 10) }

type FloatLit struct{ Value float64 }

func (l *FloatLit) expression()    {}
func (l *FloatLit) basicLit()      {}
func (l *FloatLit) String() string { return strconv.FormatFloat(l.Value, 'g', -1, 64) }

type StrLit struct{ Value string }

func (l *StrLit) expression()    {}
func (l *StrLit) basicLit()      {}
func (l *StrLit) String() string { return strconv.Quote(l.Value) }

type NullLit struct{}

func (l *NullLit) expression()    {}
func (l *NullLit) basicLit()      {}
func (l *NullLit) String() string { return "null" }

type VecLit struct{ Elems []BasicLit }

func (l *VecLit) expression() {}
func (l *VecLit) basicLit()   {}
func (l *VecLit) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RefLit denotes a reference value: it points elsewhere in the store and is
// followed when forced.
type RefLit struct{ Ref ref.Ref }

func (l *RefLit) expression()    {}
func (l *RefLit) basicLit()      {}
func (l *RefLit) String() string { return l.Ref.String() }

type EqualExpr struct{ Left, Right Expression }

func (e *EqualExpr) expression()    {}
func (e *EqualExpr) String() string { return "(" + e.Left.String() + " == " + e.Right.String() + ")" }

type AddExpr struct{ Left, Right Expression }

func (e *AddExpr) expression()    {}
func (e *AddExpr) String() string { return "(" + e.Left.String() + " + " + e.Right.String() + ")" }

type AndExpr struct{ Left, Right Expression }

func (e *AndExpr) expression()    {}
func (e *AndExpr) String() string { return "(" + e.Left.String() + " && " + e.Right.String() + ")" }

type OrExpr struct{ Left, Right Expression }

func (e *OrExpr) expression()    {}
func (e *OrExpr) String() string { return "(" + e.Left.String() + " || " + e.Right.String() + ")" }

type ImplyExpr struct{ Left, Right Expression }

func (e *ImplyExpr) expression()    {}
func (e *ImplyExpr) String() string { return "(" + e.Left.String() + " => " + e.Right.String() + ")" }

type NotExpr struct{ Operand Expression }

func (e *NotExpr) expression()    {}
func (e *NotExpr) String() string { return "!(" + e.Operand.String() + ")" }

// MatchExpr tests a string operand against a regular expression pattern.
type MatchExpr struct {
	Operand Expression
	Pattern string
}

func (e *MatchExpr) expression() {}
func (e *MatchExpr) String() string {
	return "(" + e.Operand.String() + " =~ " + strconv.Quote(e.Pattern) + ")"
}

// IfExpr evaluates the condition and then both branches; the unchosen
// branch's value is discarded.
type IfExpr struct {
	Cond Expression
	Then Expression
	Else Expression
}

func (e *IfExpr) expression() {}
func (e *IfExpr) String() string {
	return "if " + e.Cond.String() + " then " + e.Then.String() + " else " + e.Else.String()
}

// ShellExpr runs a command after ${...} interpolation and yields its stdout
// as a string.
type ShellExpr struct{ Command string }

func (e *ShellExpr) expression()    {}
func (e *ShellExpr) String() string { return "$(" + strconv.Quote(e.Command) + ")" }
