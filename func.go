package symcanon

import (
	"math"
	"math/big"
	"slices"
	"strings"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	argv []Expr
}

// funcArity lists the functions known to the kernel with their argument
// bounds; max < 0 means variadic.
var funcArity = map[string][2]int{
	"sin": {1, 1}, "cos": {1, 1}, "tan": {1, 1},
	"asin": {1, 1}, "acos": {1, 1}, "atan": {1, 1},
	"sinh": {1, 1}, "cosh": {1, 1}, "tanh": {1, 1},
	"exp": {1, 1}, "log": {1, 2},
	"Abs": {1, 1}, "sign": {1, 1}, "floor": {1, 1}, "ceiling": {1, 1},
	"Max": {1, -1}, "Min": {1, -1},
}

// funcAliases maps accepted spellings onto canonical function names.
var funcAliases = map[string]string{
	"abs":  "Abs",
	"ceil": "ceiling",
	"max":  "Max",
	"min":  "Min",
	"ln":   "log",
}

var floatFuncs = map[string]func(float64) float64{
	"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
	"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
	"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
	"exp": math.Exp, "log": math.Log, "Abs": math.Abs,
}

// FuncOf applies the named function and canonicalizes the result.
func FuncOf(name string, args ...Expr) Expr {
	if canon, ok := funcAliases[name]; ok {
		name = canon
	}
	if name == "log" && len(args) == 2 {
		return DivOf(LogOf(args[0]), LogOf(args[1]))
	}
	return (&Func{name: name, argv: args}).Simplify()
}

func SinOf(arg Expr) Expr     { return FuncOf("sin", arg) }
func CosOf(arg Expr) Expr     { return FuncOf("cos", arg) }
func TanOf(arg Expr) Expr     { return FuncOf("tan", arg) }
func ExpOf(arg Expr) Expr     { return FuncOf("exp", arg) }
func LogOf(arg Expr) Expr     { return FuncOf("log", arg) }
func AbsOf(arg Expr) Expr     { return FuncOf("Abs", arg) }
func AsinOf(arg Expr) Expr    { return FuncOf("asin", arg) }
func AcosOf(arg Expr) Expr    { return FuncOf("acos", arg) }
func AtanOf(arg Expr) Expr    { return FuncOf("atan", arg) }
func SinhOf(arg Expr) Expr    { return FuncOf("sinh", arg) }
func CoshOf(arg Expr) Expr    { return FuncOf("cosh", arg) }
func TanhOf(arg Expr) Expr    { return FuncOf("tanh", arg) }
func FloorOf(arg Expr) Expr   { return FuncOf("floor", arg) }
func CeilingOf(arg Expr) Expr { return FuncOf("ceiling", arg) }
func SignOf(arg Expr) Expr    { return FuncOf("sign", arg) }
func MaxOf(args ...Expr) Expr { return FuncOf("Max", args...) }
func MinOf(args ...Expr) Expr { return FuncOf("Min", args...) }

func (f *Func) Simplify() Expr {
	args := make([]Expr, len(f.argv))
	for i, a := range f.argv {
		args[i] = a.Simplify()
	}
	if f.name == "Max" || f.name == "Min" {
		return simplifyExtremum(f.name, args)
	}
	if len(args) != 1 {
		return &Func{name: f.name, argv: args}
	}
	arg := args[0]
	if fl, ok := arg.(*Float); ok {
		if v, ok := evalFloat(f.name, fl.val); ok {
			return v
		}
	}
	if v, ok := exactValue(f.name, arg); ok {
		return v
	}
	return &Func{name: f.name, argv: args}
}

func evalFloat(name string, v float64) (Expr, bool) {
	switch name {
	case "floor", "ceiling":
		if !isFinite(v) {
			return nil, false
		}
		r := math.Floor(v)
		if name == "ceiling" {
			r = math.Ceil(v)
		}
		i, _ := big.NewFloat(r).Int(nil)
		return NInt(i), true
	case "sign":
		if math.IsNaN(v) {
			return nil, false
		}
		return N(int64(signNumber(NFloat(v)))), true
	}
	fn, ok := floatFuncs[name]
	if !ok {
		return nil, false
	}
	r := fn(v)
	if !isFinite(r) {
		return nil, false
	}
	return NFloat(r), true
}

func isConst(e Expr, c *Const) bool {
	k, ok := e.(*Const)
	return ok && k.name == c.name
}

func innerCall(e Expr, name string) (Expr, bool) {
	if fn, ok := e.(*Func); ok && fn.name == name && len(fn.argv) == 1 {
		return fn.argv[0], true
	}
	return nil, false
}

// exactValue applies the special values and inverse pairs that hold
// without approximation.
func exactValue(name string, arg Expr) (Expr, bool) {
	switch name {
	case "sin", "tan":
		if isNumEqual(arg, 0) || isConst(arg, Pi) {
			return N(0), true
		}
	case "asin", "atan", "sinh", "tanh":
		if isNumEqual(arg, 0) {
			return N(0), true
		}
	case "cos":
		if isNumEqual(arg, 0) {
			return N(1), true
		}
		if isConst(arg, Pi) {
			return N(-1), true
		}
	case "cosh":
		if isNumEqual(arg, 0) {
			return N(1), true
		}
	case "acos":
		if isNumEqual(arg, 1) {
			return N(0), true
		}
	case "exp":
		if isNumEqual(arg, 0) {
			return N(1), true
		}
		if isNumEqual(arg, 1) {
			return EulerE, true
		}
		if inner, ok := innerCall(arg, "log"); ok {
			return inner, true
		}
	case "log":
		if isNumEqual(arg, 1) {
			return N(0), true
		}
		if isConst(arg, EulerE) {
			return N(1), true
		}
		if inner, ok := innerCall(arg, "exp"); ok {
			return inner, true
		}
	case "Abs":
		if n, ok := arg.(*Num); ok {
			return numAbs(n), true
		}
		if isConst(arg, Pi) || isConst(arg, EulerE) {
			return arg, true
		}
		if _, ok := innerCall(arg, "Abs"); ok {
			return arg, true
		}
		if m, ok := arg.(*Mul); ok && isNegativeNumber(m.factors[0]) {
			fs := slices.Clone(m.factors)
			fs[0] = negNumber(fs[0])
			return AbsOf(MulOf(fs...)), true
		}
	case "sign":
		if n, ok := arg.(*Num); ok {
			return N(int64(n.val.Sign())), true
		}
		if isConst(arg, Pi) || isConst(arg, EulerE) {
			return N(1), true
		}
	case "floor", "ceiling":
		if n, ok := arg.(*Num); ok {
			return ratRound(n, name == "ceiling"), true
		}
	}
	return nil, false
}

func ratRound(n *Num, up bool) *Num {
	v := n.val
	if up {
		v = new(big.Rat).Neg(v)
	}
	// Div is Euclidean and the denominator is positive, so this floors.
	q := new(big.Int).Div(v.Num(), v.Denom())
	if up {
		q.Neg(q)
	}
	return NInt(q)
}

// simplifyExtremum flattens nested Max/Min calls, keeps the extreme numeric
// argument, drops duplicates and orders what remains.
func simplifyExtremum(name string, args []Expr) Expr {
	var best Expr
	seen := map[string]bool{}
	var rest []Expr
	var walk func([]Expr)
	walk = func(as []Expr) {
		for _, a := range as {
			if fn, ok := a.(*Func); ok && fn.name == name {
				walk(fn.argv)
				continue
			}
			if isNumber(a) && !isNaN(a) {
				c := 0
				if best != nil {
					c = cmpNumbers(a, best)
				}
				if best == nil || (name == "Max" && c > 0) || (name == "Min" && c < 0) {
					best = a
				}
				continue
			}
			key := a.String()
			if !seen[key] {
				seen[key] = true
				rest = append(rest, a)
			}
		}
	}
	walk(args)
	slices.SortStableFunc(rest, func(x, y Expr) int { return strings.Compare(x.String(), y.String()) })
	out := rest
	if best != nil {
		out = append([]Expr{best}, rest...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Func{name: name, argv: out}
}

func (f *Func) Sub(varName string, value Expr) Expr { return subArgs(f, varName, value) }

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && equalArgs(f.argv, o.argv)
}

func (f *Func) String() string {
	parts := make([]string, len(f.argv))
	for i, a := range f.argv {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *Func) LaTeX() string {
	parts := make([]string, len(f.argv))
	for i, a := range f.argv {
		parts[i] = a.LaTeX()
	}
	inner := strings.Join(parts, ", ")
	switch f.name {
	case "sin", "cos", "tan", "exp", "log", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + inner + "\\right)"
	case "Max", "Min":
		return "\\" + strings.ToLower(f.name) + "\\left(" + inner + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + inner + "\\right)"
	case "acos":
		return "\\arccos\\left(" + inner + "\\right)"
	case "atan":
		return "\\arctan\\left(" + inner + "\\right)"
	case "Abs":
		return "\\left|" + inner + "\\right|"
	case "floor":
		return "\\lfloor " + inner + " \\rfloor"
	case "ceiling":
		return "\\lceil " + inner + " \\rceil"
	}
	return "\\operatorname{" + f.name + "}\\left(" + inner + "\\right)"
}

func (f *Func) exprType() string          { return "func" }
func (f *Func) args() []Expr              { return f.argv }
func (f *Func) withArgs(args []Expr) Expr { return &Func{name: f.name, argv: args} }
func (f *Func) FuncName() string          { return f.name }
func (f *Func) Args() []Expr              { return slices.Clone(f.argv) }
