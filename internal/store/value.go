package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/ref"
)

type ValueKind string

const (
	BASIC_VAL   ValueKind = "BASIC"
	STORE_VAL   ValueKind = "STORE"   // marks a reference that roots an object namespace
	LAZY_VAL    ValueKind = "LAZY"    // deferred expression
	LINK_VAL    ValueKind = "LINK"    // unresolved forward pointer; must not survive pass 2
	ENUM_VAL    ValueKind = "ENUM"    // symbol-set definition
	GLOBAL_VAL  ValueKind = "GLOBAL"  // accumulated constraint formula
	ACTION_VAL  ValueKind = "ACTION"  // compiled operator record
	TBD_VAL     ValueKind = "TBD"     // must be filled before finalization
	UNKNOWN_VAL ValueKind = "UNKNOWN"
	NONE_VAL    ValueKind = "NONE"
)

// Value is the tagged variant stored at a reference.
type Value interface {
	Kind() ValueKind
	Inspect() string
}

type BasicKind string

const (
	BOOL_BASIC   BasicKind = "BOOL"
	INT_BASIC    BasicKind = "INT"
	FLOAT_BASIC  BasicKind = "FLOAT"
	STRING_BASIC BasicKind = "STRING"
	NULL_BASIC   BasicKind = "NULL"
	VECTOR_BASIC BasicKind = "VECTOR"
	REF_BASIC    BasicKind = "REF" // a reference value pointing elsewhere in the store
)

// Basic is a scalar (or vector/reference) payload.
type Basic interface {
	Value
	BasicKind() BasicKind
}

type Bool struct{ Value bool }

func (b *Bool) Kind() ValueKind      { return BASIC_VAL }
func (b *Bool) BasicKind() BasicKind { return BOOL_BASIC }
func (b *Bool) Inspect() string      { return strconv.FormatBool(b.Value) }

type Int struct{ Value int64 }

func (i *Int) Kind() ValueKind      { return BASIC_VAL }
func (i *Int) BasicKind() BasicKind { return INT_BASIC }
func (i *Int) Inspect() string      { return strconv.FormatInt(i.Value, 10) }

type Float struct{ Value float64 }

func (f *Float) Kind() ValueKind      { return BASIC_VAL }
func (f *Float) BasicKind() BasicKind { return FLOAT_BASIC }
func (f *Float) Inspect() string      { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

type Str struct{ Value string }

func (s *Str) Kind() ValueKind      { return BASIC_VAL }
func (s *Str) BasicKind() BasicKind { return STRING_BASIC }
func (s *Str) Inspect() string      { return strconv.Quote(s.Value) }

type Null struct{}

func (n *Null) Kind() ValueKind      { return BASIC_VAL }
func (n *Null) BasicKind() BasicKind { return NULL_BASIC }
func (n *Null) Inspect() string      { return "null" }

type Vec struct{ Elems []Basic }

func (v *Vec) Kind() ValueKind      { return BASIC_VAL }
func (v *Vec) BasicKind() BasicKind { return VECTOR_BASIC }
func (v *Vec) Inspect() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RefVal points at another reference in the store. It may itself need
// following when forced.
type RefVal struct{ Target ref.Ref }

func (r *RefVal) Kind() ValueKind      { return BASIC_VAL }
func (r *RefVal) BasicKind() BasicKind { return REF_BASIC }
func (r *RefVal) Inspect() string      { return r.Target.String() }

// Object marks a reference that roots a nested object/namespace. Its
// children are separately bound references sharing its prefix; it carries no
// payload of its own.
type Object struct{}

func (o *Object) Kind() ValueKind { return STORE_VAL }
func (o *Object) Inspect() string { return "{object}" }

// Lazy is an unevaluated expression bound to the namespace needed to
// evaluate it later. The store is passed in explicitly at force time, since
// the store is rebuilt (not mutated) between passes.
type Lazy struct {
	Namespace ref.Ref
	Expr      ast.Expression
}

func (l *Lazy) Kind() ValueKind { return LAZY_VAL }
func (l *Lazy) Inspect() string { return fmt.Sprintf("<lazy %s>", l.Expr.String()) }

// Link is an unresolved forward pointer, replaced by its resolved target
// during the resolution pass.
type Link struct{ Target ref.Ref }

func (l *Link) Kind() ValueKind { return LINK_VAL }
func (l *Link) Inspect() string { return "-> " + l.Target.String() }

type Enum struct {
	Name    string
	Symbols []string
}

func (e *Enum) Kind() ValueKind { return ENUM_VAL }
func (e *Enum) Inspect() string {
	return fmt.Sprintf("enum %s {%s}", e.Name, strings.Join(e.Symbols, ", "))
}

// Global holds the accumulated global constraint formula.
type Global struct{ Formula Constraint }

func (g *Global) Kind() ValueKind { return GLOBAL_VAL }
func (g *Global) Inspect() string { return "global " + g.Formula.String() }

type Param struct {
	Name string
	Type string // declared type name; unchecked at this layer
}

type Effect struct {
	Ref ref.Ref
	Val Basic
}

// Action is a compiled operator record for a downstream planner. It is
// bound at its own reference and never executed by the engine.
type Action struct {
	Ref          ref.Ref
	Params       []Param
	Cost         int64
	Precondition Constraint
	Effects      []Effect // order-preserving; duplicates allowed, last wins when applied
}

func (a *Action) Kind() ValueKind { return ACTION_VAL }
func (a *Action) Inspect() string {
	params := make([]string, len(a.Params))
	for i, p := range a.Params {
		params[i] = p.Name + ": " + p.Type
	}
	return fmt.Sprintf("action %s(%s) cost=%d", a.Ref, strings.Join(params, ", "), a.Cost)
}

type TBD struct{}

func (t *TBD) Kind() ValueKind { return TBD_VAL }
func (t *TBD) Inspect() string { return "TBD" }

type Unknown struct{}

func (u *Unknown) Kind() ValueKind { return UNKNOWN_VAL }
func (u *Unknown) Inspect() string { return "unknown" }

type None struct{}

func (n *None) Kind() ValueKind { return NONE_VAL }
func (n *None) Inspect() string { return "none" }
