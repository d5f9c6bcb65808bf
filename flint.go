package symcanon

import "math/big"

// ============================================================
// Integral float narrowing
// ============================================================

// maxFlintPasses bounds the narrowing passes.
const maxFlintPasses = 8

// Flint replaces every float literal whose value is finite and equal to its
// truncation by the exact integer of the same value, then lets the
// enclosing nodes re-canonicalize, so 1.0*x becomes x and x**2.0 becomes
// x**2. Non-integral floats are left alone.
//
// Each pass runs in two phases. The first swaps each qualifying float for
// a placeholder with a purely structural rewrite, one placeholder per
// distinct value. The second swaps the placeholders for integers with a
// canonical rebuild. The rebuild can fold a fractional coefficient into a
// new integral float (0.25*(2*x)**2.0 becomes 1.0*x**2), so passes repeat
// until none is left. A tree without qualifying floats is returned as is.
func Flint(e Expr) Expr {
	for i := 0; i < maxFlintPasses; i++ {
		next, changed := flintPass(e)
		if !changed {
			return e
		}
		e = next
	}
	return e
}

func flintPass(e Expr) (Expr, bool) {
	dummies := map[float64]*Dummy{}
	values := map[string]*Num{}
	marked := Rewrite(e, func(n Expr) (Expr, bool) {
		f, ok := n.(*Float)
		if !ok || !f.IsIntegral() {
			return nil, false
		}
		// Map keys compare with ==, so -0.0 and 0.0 share one placeholder.
		key := f.val
		d, seen := dummies[key]
		if !seen {
			d = NewDummy()
			dummies[key] = d
			i, _ := big.NewFloat(key).Int(nil)
			values[d.id] = NInt(i)
		}
		return d, true
	})
	if len(dummies) == 0 {
		return e, false
	}
	return XReplace(marked, func(n Expr) (Expr, bool) {
		d, ok := n.(*Dummy)
		if !ok {
			return nil, false
		}
		v, ok := values[d.id]
		if !ok {
			return nil, false
		}
		return v, true
	}), true
}
