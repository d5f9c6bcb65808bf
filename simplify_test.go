package symcanon_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symcanon"
)

// ============================================================
// Differentiation
// ============================================================

func TestDiff(t *testing.T) {
	x2 := symcanon.PowOf(x, symcanon.N(2))
	runRender(t, []renderCase{
		{"constant", symcanon.Diff(symcanon.N(5), "x"), "0"},
		{"other symbol", symcanon.Diff(y, "x"), "0"},
		{"self", symcanon.Diff(x, "x"), "1"},
		{"power rule", symcanon.Diff(symcanon.PowOf(x, symcanon.N(3)), "x"), "3*x**2"},
		{"sum", symcanon.Diff(symcanon.AddOf(x2, symcanon.MulOf(symcanon.N(-4), x), symcanon.N(4)), "x"), "2*x - 4"},
		{"chain rule", symcanon.Diff(symcanon.SinOf(x2), "x"), "2*cos(x**2)*x"},
		{"cos", symcanon.Diff(symcanon.CosOf(x), "x"), "-sin(x)"},
		{"exp", symcanon.Diff(symcanon.ExpOf(x), "x"), "exp(x)"},
		{"log", symcanon.Diff(symcanon.LogOf(x), "x"), "1/x"},
		{"abs", symcanon.Diff(symcanon.AbsOf(x), "x"), "sign(x)"},
		{"exponential", symcanon.Diff(symcanon.PowOf(symcanon.N(2), x), "x"), "2**x*log(2)"},
		{"product rule", symcanon.Diff(symcanon.MulOf(x, symcanon.SinOf(x)), "x"), "cos(x)*x + sin(x)"},
		{"independent call", symcanon.Diff(symcanon.MaxOf(y, symcanon.N(1)), "x"), "0"},
		{"unevaluated", symcanon.Diff(symcanon.MaxOf(x, y), "x"), "Derivative(Max(x, y), x)"},
		{"second", symcanon.Diff2(symcanon.PowOf(x, symcanon.N(4)), "x"), "12*x**2"},
		{"fourth", symcanon.DiffN(symcanon.PowOf(x, symcanon.N(4)), "x", 4), "24"},
	})
}

// ============================================================
// Expand, TrigSimplify, Simplify
// ============================================================

func TestExpand(t *testing.T) {
	xm2 := symcanon.AddOf(x, symcanon.N(-2))
	runRender(t, []renderCase{
		{"square", symcanon.Expand(symcanon.MulOf(xm2, xm2)), "x**2 - 4*x + 4"},
		{"binomial", symcanon.Expand(symcanon.PowOf(symcanon.AddOf(x, y), symcanon.N(2))), "x**2 + 2*x*y + y**2"},
		{"inside call", symcanon.Expand(symcanon.SinOf(symcanon.MulOf(x, symcanon.AddOf(y, symcanon.N(1))))), "sin(x*y + x)"},
		{"large power kept", symcanon.Expand(symcanon.PowOf(symcanon.AddOf(x, y), symcanon.N(40))), "(x + y)**40"},
	})
}

func TestTrigSimplify(t *testing.T) {
	sin2 := symcanon.PowOf(symcanon.SinOf(x), symcanon.N(2))
	cos2 := symcanon.PowOf(symcanon.CosOf(x), symcanon.N(2))
	runRender(t, []renderCase{
		{"identity", symcanon.TrigSimplify(symcanon.AddOf(sin2, cos2)), "1"},
		{"scaled", symcanon.TrigSimplify(symcanon.AddOf(
			symcanon.MulOf(symcanon.N(3), sin2),
			symcanon.MulOf(symcanon.N(3), cos2),
			y)), "y + 3"},
		{"unequal coefficients", symcanon.TrigSimplify(symcanon.AddOf(symcanon.MulOf(symcanon.N(2), sin2), cos2)), "sin(x)**2 + 1"},
		{"unequal keeps cosine", symcanon.TrigSimplify(symcanon.AddOf(sin2, symcanon.MulOf(symcanon.N(2), cos2))), "cos(x)**2 + 1"},
		{"unequal with common factor", symcanon.TrigSimplify(symcanon.AddOf(
			symcanon.MulOf(x, sin2),
			symcanon.MulOf(symcanon.N(2), x, cos2))), "cos(x)**2*x + x"},
		{"single square untouched", symcanon.TrigSimplify(symcanon.AddOf(sin2, x)), "sin(x)**2 + x"},
		{"nested", symcanon.TrigSimplify(symcanon.ExpOf(symcanon.AddOf(sin2, cos2))), "E"},
	})
}

func TestSimplify_PicksShorterForm(t *testing.T) {
	// (x + 1)**2 - x**2 expands to a smaller tree.
	e := symcanon.AddOf(
		symcanon.PowOf(symcanon.AddOf(x, symcanon.N(1)), symcanon.N(2)),
		symcanon.MulOf(symcanon.N(-1), symcanon.PowOf(x, symcanon.N(2))))
	assert.Equal(t, "2*x + 1", symcanon.Simplify(e).String())

	// (x + 1)**3 is smaller than its expansion.
	c := symcanon.PowOf(symcanon.AddOf(x, symcanon.N(1)), symcanon.N(3))
	assert.Equal(t, "(x + 1)**3", symcanon.Simplify(c).String())
}

func TestSimplify_SkipsOversizedExpansion(t *testing.T) {
	tests := []struct {
		name string
		syms []string
		expr string
		want string
	}{
		{"six terms to the twelfth", []string{"a", "b", "c", "d", "e", "f"}, "(a+b+c+d+e+f)^12", "(a + b + c + d + e + f)**12"},
		{"four terms to the sixteenth", []string{"a", "b", "c", "d"}, "(a+b+c+d)^16", "(a + b + c + d)**16"},
		{"product of binomials", []string{"a", "b", "c", "d"}, "(a+1)*(b+1)*(c+1)*(d+1)", "(a + 1)*(b + 1)*(c + 1)*(d + 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := symcanon.Parse(tt.expr, symcanon.NewSymbolTable(tt.syms...), symcanon.DefaultParserConfig())
			require.NoError(t, err)
			start := time.Now()
			got := symcanon.Simplify(e)
			assert.Equal(t, tt.want, got.String())
			assert.Less(t, time.Since(start), time.Second)
		})
	}
}

// ============================================================
// Flint
// ============================================================

func TestFlint(t *testing.T) {
	runRender(t, []renderCase{
		{"coefficient", symcanon.Flint(symcanon.MulOf(symcanon.NFloat(2), x)), "2*x"},
		{"unit coefficient", symcanon.Flint(symcanon.MulOf(symcanon.NFloat(1), x)), "x"},
		{"shared value", symcanon.Flint(symcanon.AddOf(
			symcanon.MulOf(symcanon.NFloat(2), x),
			symcanon.MulOf(symcanon.NFloat(2), y))), "2*x + 2*y"},
		{"exponent", symcanon.Flint(symcanon.PowOf(x, symcanon.NFloat(2))), "x**2"},
		{"leaf", symcanon.Flint(symcanon.NFloat(3)), "3"},
		{"large", symcanon.Flint(symcanon.NFloat(1e20)), "100000000000000000000"},
		{"mixed", symcanon.Flint(symcanon.AddOf(
			symcanon.MulOf(symcanon.NFloat(1.5), x),
			symcanon.NFloat(-4))), "1.5*x - 4"},
	})
}

func TestFlint_Unchanged(t *testing.T) {
	tests := []struct {
		name string
		expr symcanon.Expr
	}{
		{"fractional", symcanon.MulOf(symcanon.NFloat(1.5), x)},
		{"exact", symcanon.AddOf(x, symcanon.N(2))},
		{"infinite", symcanon.NFloat(math.Inf(1))},
		{"nan", symcanon.NFloat(math.NaN())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.expr, symcanon.Flint(tt.expr))
		})
	}
}

func TestFlint_Refolded(t *testing.T) {
	// (2*x)**2.0 narrows to 4*x**2, which folds the fractional float
	// coefficient into a new integral float.
	square := func(c float64, exp float64) symcanon.Expr {
		return symcanon.MulOf(symcanon.NFloat(c), symcanon.PowOf(symcanon.MulOf(symcanon.N(2), x), symcanon.NFloat(exp)))
	}
	tests := []struct {
		name string
		expr symcanon.Expr
		want string
	}{
		{"to integer coefficient", square(1.5, 2), "6*x**2"},
		{"to unit coefficient", square(0.25, 2), "x**2"},
		{"unit exponent", square(0.5, 1), "x"},
		{"still fractional", square(0.3, 2), "1.2*x**2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := symcanon.Flint(tt.expr)
			assert.Equal(t, tt.want, once.String())
			assert.Same(t, once, symcanon.Flint(once))
			symcanon.Walk(once, func(n symcanon.Expr) bool {
				if f, ok := n.(*symcanon.Float); ok {
					assert.False(t, f.IsIntegral(), "integral float %s left in %s", f, once)
				}
				return true
			})
		})
	}
}

func TestFlint_Idempotent(t *testing.T) {
	e := symcanon.AddOf(
		symcanon.MulOf(symcanon.NFloat(2), symcanon.SinOf(x)),
		symcanon.PowOf(y, symcanon.NFloat(3)),
		symcanon.NFloat(0.25))
	once := symcanon.Flint(e)
	twice := symcanon.Flint(once)
	assert.Equal(t, once.String(), twice.String())
	assert.Same(t, once, twice)
	assert.Equal(t, "2*sin(x) + y**3 + 0.25", once.String())
}

// ============================================================
// Traversal
// ============================================================

func TestWalkAndCount(t *testing.T) {
	e := symcanon.AddOf(symcanon.MulOf(x, y), symcanon.S("z"))
	assert.Equal(t, 5, symcanon.Count(e))
	assert.Equal(t, []string{"x", "y", "z"}, symcanon.SortedFreeSymbols(e))
	assert.Empty(t, symcanon.FreeSymbols(symcanon.AddOf(symcanon.Pi, symcanon.N(1))))

	var visited []string
	symcanon.Walk(e, func(n symcanon.Expr) bool {
		visited = append(visited, n.String())
		_, isMul := n.(*symcanon.Mul)
		return !isMul
	})
	assert.Equal(t, []string{"x*y + z", "x*y", "z"}, visited)
}

func TestRewrite(t *testing.T) {
	toY := func(n symcanon.Expr) (symcanon.Expr, bool) {
		if s, ok := n.(*symcanon.Sym); ok && s.Name() == "x" {
			return y, true
		}
		return nil, false
	}
	sum := symcanon.AddOf(x, y)
	assert.Equal(t, "y + y", symcanon.Rewrite(sum, toY).String())
	assert.Equal(t, "2*y", symcanon.XReplace(sum, toY).String())

	untouched := symcanon.AddOf(y, symcanon.N(1))
	assert.Same(t, untouched, symcanon.Rewrite(untouched, toY))
}

func TestSub(t *testing.T) {
	linear := symcanon.AddOf(symcanon.MulOf(symcanon.N(2), x), symcanon.N(3))
	assert.Equal(t, "13", symcanon.Sub(linear, "x", symcanon.N(5)).String())
	assert.Equal(t, "2*y + 3", symcanon.Sub(linear, "x", y).String())
	assert.Equal(t, "0", symcanon.Sub(symcanon.SinOf(x), "x", symcanon.Pi).String())
}

// ============================================================
// SymbolTable
// ============================================================

func TestSymbolTable(t *testing.T) {
	table := symcanon.NewSymbolTable("b", "a", "b")
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"a", "b"}, table.Names())

	a, ok := table.Lookup("a")
	require.True(t, ok)
	assert.Same(t, a, table.Add("a"))

	_, ok = table.Lookup("c")
	assert.False(t, ok)

	var empty *symcanon.SymbolTable
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Names())
	_, ok = empty.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, "a", empty.Add("a").Name())
	assert.Equal(t, 0, empty.Len())

	var zero symcanon.SymbolTable
	s := zero.Add("z")
	assert.Equal(t, 1, zero.Len())
	got, ok := zero.Lookup("z")
	require.True(t, ok)
	assert.Same(t, s, got)
}
