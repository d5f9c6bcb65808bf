package symcanon_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/symcanon"
)

var (
	x = symcanon.S("x")
	y = symcanon.S("y")
)

type renderCase struct {
	name string
	expr symcanon.Expr
	want string
}

func runRender(t *testing.T, tests []renderCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

// ============================================================
// Leaves
// ============================================================

func TestNum(t *testing.T) {
	runRender(t, []renderCase{
		{"integer", symcanon.N(42), "42"},
		{"rational", symcanon.F(1, 3), "1/3"},
		{"reduced", symcanon.F(4, 6), "2/3"},
		{"negative", symcanon.F(1, -2), "-1/2"},
	})
	assert.Equal(t, `\frac{2}{5}`, symcanon.F(2, 5).LaTeX())
	assert.Equal(t, `-\frac{1}{2}`, symcanon.F(-1, 2).LaTeX())
	assert.Panics(t, func() { symcanon.F(1, 0) })
	assert.True(t, symcanon.N(3).IsPositive())
	assert.False(t, symcanon.N(0).IsPositive())
	assert.False(t, symcanon.F(-1, 2).IsPositive())
}

func TestFloat(t *testing.T) {
	runRender(t, []renderCase{
		{"integral", symcanon.NFloat(2), "2.0"},
		{"fraction", symcanon.NFloat(1.5), "1.5"},
		{"small", symcanon.NFloat(1e-6), "1e-06"},
		{"large", symcanon.NFloat(1e21), "1e+21"},
		{"negative", symcanon.NFloat(-3), "-3.0"},
		{"infinity", symcanon.NFloat(math.Inf(1)), "oo"},
		{"negative infinity", symcanon.NFloat(math.Inf(-1)), "-oo"},
		{"nan", symcanon.NFloat(math.NaN()), "nan"},
		{"overflowed coefficient", symcanon.MulOf(symcanon.NFloat(1e300), symcanon.NFloat(-1e300), x), "-oo*x"},
		{"infinite term", symcanon.AddOf(x, symcanon.NFloat(math.Inf(-1))), "x - oo"},
	})
	assert.True(t, symcanon.NFloat(4).IsIntegral())
	assert.False(t, symcanon.NFloat(4.25).IsIntegral())
	assert.False(t, symcanon.NFloat(math.Inf(1)).IsIntegral())
	assert.Equal(t, `\infty`, symcanon.NFloat(math.Inf(1)).LaTeX())
	assert.Equal(t, `-\infty`, symcanon.NFloat(math.Inf(-1)).LaTeX())
}

func TestEqual(t *testing.T) {
	assert.True(t, symcanon.N(3).Equal(symcanon.N(3)))
	assert.False(t, symcanon.N(3).Equal(symcanon.N(4)))
	assert.False(t, symcanon.N(1).Equal(symcanon.NFloat(1)))
	assert.True(t, x.Equal(symcanon.S("x")))
	assert.False(t, x.Equal(y))
	assert.True(t, symcanon.AddOf(x, y).Equal(symcanon.AddOf(y, x)))
}

func TestDummy(t *testing.T) {
	a, b := symcanon.NewDummy(), symcanon.NewDummy()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.Contains(t, a.String(), "_Dummy_")
}

// ============================================================
// Add and Mul
// ============================================================

func TestAdd(t *testing.T) {
	runRender(t, []renderCase{
		{"like terms", symcanon.AddOf(x, x, x, symcanon.N(2)), "3*x + 2"},
		{"rational coefficients", symcanon.AddOf(
			symcanon.MulOf(symcanon.F(1, 3), x),
			symcanon.MulOf(symcanon.F(5, 6), x)), "7*x/6"},
		{"collapse to zero", symcanon.AddOf(x, symcanon.MulOf(symcanon.N(-1), x)), "0"},
		{"single term", symcanon.AddOf(x), "x"},
		{"difference", symcanon.SubOf(x, y), "x - y"},
		{"leading negative", symcanon.AddOf(symcanon.MulOf(symcanon.N(-1), x), symcanon.N(1)), "-x + 1"},
		{"float folding", symcanon.AddOf(symcanon.NFloat(1.5), symcanon.N(1)), "2.5"},
		{"degree order", symcanon.AddOf(x, symcanon.PowOf(x, symcanon.N(3)), symcanon.PowOf(x, symcanon.N(2))), "x**3 + x**2 + x"},
	})
}

func TestMul(t *testing.T) {
	runRender(t, []renderCase{
		{"zero", symcanon.MulOf(symcanon.N(0), x), "0"},
		{"one", symcanon.MulOf(symcanon.N(1), x), "x"},
		{"square", symcanon.MulOf(x, x), "x**2"},
		{"factor order", symcanon.MulOf(y, x), "x*y"},
		{"distribute", symcanon.MulOf(symcanon.N(2), symcanon.AddOf(x, symcanon.N(1))), "2*x + 2"},
		{"quotient", symcanon.DivOf(symcanon.N(3), x), "3/x"},
		{"negative product", symcanon.MulOf(symcanon.N(-1), x, y), "-x*y"},
		{"sum factor", symcanon.MulOf(x, symcanon.AddOf(y, symcanon.N(1))), "x*(y + 1)"},
		{"cancel", symcanon.DivOf(symcanon.MulOf(x, y), x), "y"},
		{"float coefficient kept", symcanon.MulOf(symcanon.NFloat(1), x), "1.0*x"},
	})
}

// ============================================================
// Pow
// ============================================================

func TestPow(t *testing.T) {
	runRender(t, []renderCase{
		{"integer power", symcanon.PowOf(symcanon.N(2), symcanon.N(10)), "1024"},
		{"rational root", symcanon.PowOf(symcanon.F(4, 9), symcanon.F(1, 2)), "2/3"},
		{"irrational root", symcanon.PowOf(symcanon.N(2), symcanon.F(1, 2)), "sqrt(2)"},
		{"cube root", symcanon.PowOf(symcanon.N(27), symcanon.F(1, 3)), "3"},
		{"zero exponent", symcanon.PowOf(x, symcanon.N(0)), "1"},
		{"unit exponent", symcanon.PowOf(x, symcanon.N(1)), "x"},
		{"unit base", symcanon.PowOf(symcanon.N(1), x), "1"},
		{"division by zero", symcanon.PowOf(symcanon.N(0), symcanon.N(-1)), "1/0"},
		{"nested", symcanon.PowOf(symcanon.PowOf(x, symcanon.N(2)), symcanon.N(3)), "x**6"},
		{"product base", symcanon.PowOf(symcanon.MulOf(symcanon.N(2), x), symcanon.N(2)), "4*x**2"},
		{"euler", symcanon.PowOf(symcanon.EulerE, x), "exp(x)"},
		{"i squared", symcanon.PowOf(symcanon.ImagUnit, symcanon.N(2)), "-1"},
		{"i cubed", symcanon.PowOf(symcanon.ImagUnit, symcanon.N(3)), "-I"},
		{"i fourth", symcanon.PowOf(symcanon.ImagUnit, symcanon.N(4)), "1"},
		{"i inverse", symcanon.PowOf(symcanon.ImagUnit, symcanon.N(-1)), "-I"},
		{"inverse sqrt", symcanon.PowOf(x, symcanon.F(-1, 2)), "1/sqrt(x)"},
		{"negative exponent", symcanon.PowOf(x, symcanon.N(-2)), "x**(-2)"},
		{"sum base", symcanon.PowOf(symcanon.AddOf(x, symcanon.N(1)), symcanon.N(2)), "(x + 1)**2"},
		{"rational base", symcanon.PowOf(symcanon.F(1, 2), x), "(1/2)**x"},
		{"float power", symcanon.PowOf(symcanon.NFloat(2), symcanon.N(3)), "8.0"},
	})

	p, ok := symcanon.PowOf(x, symcanon.N(3)).(*symcanon.Pow)
	if assert.True(t, ok) {
		assert.True(t, p.Base().Equal(x))
		assert.True(t, p.ExpExpr().Equal(symcanon.N(3)))
	}
}

func TestPow_ExactSizeBound(t *testing.T) {
	big := symcanon.PowOf(symcanon.N(2), symcanon.N(4096))
	assert.IsType(t, &symcanon.Num{}, big)
	assert.IsType(t, &symcanon.Num{}, symcanon.PowOf(symcanon.F(2, 3), symcanon.N(-200)))

	// The exact result would need 2**24 bits.
	capped, ok := symcanon.PowOf(big, symcanon.N(4096)).(*symcanon.Pow)
	if assert.True(t, ok) {
		assert.True(t, capped.Base().Equal(big))
		assert.True(t, strings.HasSuffix(capped.String(), "**4096"))
	}

	nested, ok := symcanon.PowOf(capped, symcanon.N(4096)).(*symcanon.Pow)
	if assert.True(t, ok) {
		assert.True(t, nested.Base().Equal(big))
		assert.Equal(t, "16777216", nested.ExpExpr().String())
	}

	// 4097 bits times 7 fits the bound, times 8 does not.
	assert.IsType(t, &symcanon.Num{}, symcanon.PowOf(big, symcanon.N(7)))
	assert.IsType(t, &symcanon.Pow{}, symcanon.PowOf(big, symcanon.N(8)))
	assert.IsType(t, &symcanon.Pow{}, symcanon.PowOf(symcanon.F(1, 3), symcanon.N(-40000)))
}

func TestLaTeX(t *testing.T) {
	tests := []struct {
		name string
		expr symcanon.Expr
		want string
	}{
		{"sqrt", symcanon.SqrtOf(x), `\sqrt{x}`},
		{"sin", symcanon.SinOf(x), `\sin\left(x\right)`},
		{"fraction", symcanon.DivOf(x, y), `\frac{x}{y}`},
		{"power", symcanon.PowOf(x, symcanon.N(2)), `x^{2}`},
		{"pi", symcanon.Pi, `\pi`},
		{"abs", symcanon.AbsOf(x), `\left|x\right|`},
		{"sum", symcanon.AddOf(symcanon.MulOf(symcanon.N(2), x), symcanon.N(3)), `2 x + 3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, symcanon.LaTeX(tt.expr))
		})
	}
}

// ============================================================
// Func
// ============================================================

func TestFunc(t *testing.T) {
	runRender(t, []renderCase{
		{"sin zero", symcanon.SinOf(symcanon.N(0)), "0"},
		{"cos pi", symcanon.CosOf(symcanon.Pi), "-1"},
		{"exp one", symcanon.ExpOf(symcanon.N(1)), "E"},
		{"log exp", symcanon.LogOf(symcanon.ExpOf(x)), "x"},
		{"exp log", symcanon.ExpOf(symcanon.LogOf(x)), "x"},
		{"log e", symcanon.LogOf(symcanon.EulerE), "1"},
		{"abs number", symcanon.AbsOf(symcanon.N(-3)), "3"},
		{"abs negated", symcanon.AbsOf(symcanon.MulOf(symcanon.N(-2), x)), "Abs(2*x)"},
		{"floor", symcanon.FloorOf(symcanon.F(7, 2)), "3"},
		{"ceiling", symcanon.CeilingOf(symcanon.F(7, 2)), "4"},
		{"floor negative", symcanon.FloorOf(symcanon.F(-7, 2)), "-4"},
		{"ceiling negative", symcanon.CeilingOf(symcanon.F(-7, 2)), "-3"},
		{"floor float", symcanon.FloorOf(symcanon.NFloat(2.7)), "2"},
		{"sign", symcanon.SignOf(symcanon.N(-5)), "-1"},
		{"sign pi", symcanon.SignOf(symcanon.Pi), "1"},
		{"symbolic", symcanon.SinOf(x), "sin(x)"},
		{"max nested", symcanon.MaxOf(x, symcanon.N(1), symcanon.MaxOf(y, symcanon.N(3))), "Max(3, x, y)"},
		{"min single", symcanon.MinOf(symcanon.N(2)), "2"},
		{"min numbers", symcanon.MinOf(symcanon.N(2), symcanon.F(1, 2)), "1/2"},
		{"alias", symcanon.FuncOf("ln", x), "log(x)"},
		{"log base", symcanon.FuncOf("log", x, symcanon.N(2)), "log(x)/log(2)"},
		{"asin zero", symcanon.AsinOf(symcanon.N(0)), "0"},
		{"acos one", symcanon.AcosOf(symcanon.N(1)), "0"},
		{"atan symbolic", symcanon.AtanOf(x), "atan(x)"},
		{"asin float", symcanon.AsinOf(symcanon.NFloat(1)), "1.5707963267948966"},
	})

	f, ok := symcanon.AcosOf(x).(*symcanon.Func)
	if assert.True(t, ok) {
		assert.Equal(t, "acos", f.FuncName())
		assert.Equal(t, `\arccos\left(x\right)`, f.LaTeX())
	}

	v, ok := symcanon.SinOf(symcanon.NFloat(0.5)).(*symcanon.Float)
	if assert.True(t, ok) {
		assert.InDelta(t, 0.479425538604203, v.Value(), 1e-12)
	}
}
