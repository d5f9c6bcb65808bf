package symcanon

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is an immutable node of a symbolic expression tree.
//
// Nodes built through the *Of constructors (AddOf, MulOf, PowOf, FuncOf)
// are canonical: they are simplified on construction. Nodes produced by
// the parser with evaluation disabled are raw and only become canonical
// once Simplify is called on them.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
	args() []Expr
	withArgs(args []Expr) Expr
}

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("symcanon: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NInt returns the exact integer i.
func NInt(i *big.Int) *Num { return &Num{val: new(big.Rat).SetInt(i)} }

// NRat returns the exact rational r. r is copied.
func NRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string      { return "num" }
func (n *Num) args() []Expr          { return nil }
func (n *Num) withArgs([]Expr) Expr  { return n }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.IsInt() && n.val.Num().IsInt64() && n.val.Num().Int64() == 1 }
func (n *Num) IsNegOne() bool        { return n.val.IsInt() && n.val.Num().IsInt64() && n.val.Num().Int64() == -1 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

// ============================================================
// Float: floating-point literal
// ============================================================

// Float is an inexact numeric literal. Arithmetic between a Float and any
// other number produces a Float.
type Float struct{ val float64 }

func NFloat(f float64) *Float { return &Float{val: f} }

func (f *Float) Simplify() Expr        { return f }
func (f *Float) Sub(string, Expr) Expr { return f }
func (f *Float) Equal(other Expr) bool { o, ok := other.(*Float); return ok && f.val == o.val }
func (f *Float) exprType() string      { return "float" }
func (f *Float) args() []Expr          { return nil }
func (f *Float) withArgs([]Expr) Expr  { return f }
func (f *Float) Value() float64        { return f.val }
func (f *Float) String() string        { return floatString(f.val) }

func (f *Float) LaTeX() string {
	switch {
	case math.IsInf(f.val, 1):
		return "\\infty"
	case math.IsInf(f.val, -1):
		return "-\\infty"
	case math.IsNaN(f.val):
		return "\\mathrm{NaN}"
	}
	return formatFloat(f.val)
}

// IsIntegral reports whether f is finite and has no fractional part.
func (f *Float) IsIntegral() bool {
	return !math.IsInf(f.val, 0) && !math.IsNaN(f.val) && f.val == math.Trunc(f.val)
}

// nonFinite names the infinite and undefined float values in rendered
// output. The parser reads the same names back.
var nonFinite = map[string]float64{
	"oo":  math.Inf(1),
	"nan": math.NaN(),
}

func floatString(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "oo"
	case math.IsInf(v, -1):
		return "-oo"
	case math.IsNaN(v):
		return "nan"
	}
	return formatFloat(v)
}

// formatFloat renders the shortest representation that round-trips and
// always carries a decimal point or exponent, so 2.0 never prints as 2.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym             { return &Sym{name: name} }
func (s *Sym) Simplify() Expr        { return s }
func (s *Sym) String() string        { return s.name }
func (s *Sym) LaTeX() string         { return s.name }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) exprType() string      { return "sym" }
func (s *Sym) args() []Expr          { return nil }
func (s *Sym) withArgs([]Expr) Expr  { return s }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

// ============================================================
// Const: named mathematical constants
// ============================================================

type Const struct{ name string }

var (
	Pi       = &Const{name: "pi"}
	EulerE   = &Const{name: "E"}
	ImagUnit = &Const{name: "I"}
)

var constants = map[string]*Const{
	Pi.name:       Pi,
	EulerE.name:   EulerE,
	ImagUnit.name: ImagUnit,
}

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Equal(other Expr) bool { o, ok := other.(*Const); return ok && c.name == o.name }
func (c *Const) exprType() string      { return "const" }
func (c *Const) args() []Expr          { return nil }
func (c *Const) withArgs([]Expr) Expr  { return c }
func (c *Const) Name() string          { return c.name }

func (c *Const) LaTeX() string {
	switch c.name {
	case "pi":
		return "\\pi"
	case "E":
		return "e"
	case "I":
		return "i"
	}
	return c.name
}

// ============================================================
// Dummy: unique opaque placeholder
// ============================================================

// Dummy is a leaf that is equal only to itself. It stands in for a
// subexpression during multi-phase substitutions.
type Dummy struct{ id string }

func NewDummy() *Dummy {
	return &Dummy{id: strings.ReplaceAll(uuid.NewString(), "-", "")}
}

func (d *Dummy) Simplify() Expr        { return d }
func (d *Dummy) String() string        { return "_Dummy_" + d.id }
func (d *Dummy) LaTeX() string         { return "\\_Dummy\\_" + d.id }
func (d *Dummy) Sub(string, Expr) Expr { return d }
func (d *Dummy) Equal(other Expr) bool { o, ok := other.(*Dummy); return ok && d.id == o.id }
func (d *Dummy) exprType() string      { return "dummy" }
func (d *Dummy) args() []Expr          { return nil }
func (d *Dummy) withArgs([]Expr) Expr  { return d }
func (d *Dummy) ID() string            { return d.id }
