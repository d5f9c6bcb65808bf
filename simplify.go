package symcanon

import "slices"

// ============================================================
// Simplification strategy
// ============================================================

// maxExpandPower bounds the integer powers of sums that Expand multiplies
// out.
const maxExpandPower = 16

// Simplify returns the smaller, by node count, of the fully simplified
// form of e and the fully simplified expansion of e. Ties keep the
// unexpanded form. The expansion is skipped when some subexpression would
// already expand to more terms than the whole simplified form has nodes.
func Simplify(e Expr) Expr {
	auto := DeepSimplify(e)
	size := Count(auto)
	if expansionExceeds(auto, size) {
		return auto
	}
	expanded := DeepSimplify(Expand(auto))
	if Count(expanded) < size {
		return expanded
	}
	return auto
}

// expansionExceeds reports whether expanding any subexpression of e yields
// more than limit terms.
func expansionExceeds(e Expr, limit int) bool {
	over := false
	Walk(e, func(n Expr) bool {
		if !over && expandedTerms(n, limit) > limit {
			over = true
		}
		return !over
	})
	return over
}

// expandedTerms estimates the number of terms Expand produces for e,
// assuming no cancellation. Results saturate at limit+1.
func expandedTerms(e Expr, limit int) int {
	sat := func(n int) int {
		if n > limit {
			return limit + 1
		}
		return n
	}
	switch v := e.(type) {
	case *Add:
		n := 0
		for _, t := range v.terms {
			n = sat(n + expandedTerms(t, limit))
		}
		return n
	case *Mul:
		n := 1
		for _, f := range v.factors {
			n = sat(n * expandedTerms(f, limit))
		}
		return n
	case *Pow:
		if _, isAdd := v.base.(*Add); !isAdd || !isIntegerNum(v.exp) {
			return 1
		}
		k := v.exp.(*Num).val.Num()
		if !k.IsInt64() || k.Int64() < 1 || k.Int64() > maxExpandPower {
			return 1
		}
		// Monomials of degree k in m terms: C(m+k-1, k).
		m := expandedTerms(v.base, limit)
		n := 1
		for i := 1; i <= int(k.Int64()); i++ {
			n = n * (m - 1 + i) / i
			if n > limit {
				return limit + 1
			}
		}
		return n
	}
	return 1
}

func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

// DeepSimplify applies repeated simplification and trig passes until
// stable.
func DeepSimplify(e Expr) Expr {
	prev := ""
	curr := e.Simplify()
	for i := 0; i < 10; i++ {
		str := curr.String()
		if str == prev {
			break
		}
		prev = str
		curr = TrigSimplify(curr)
	}
	return curr
}

// ============================================================
// Trig identities
// ============================================================

// TrigSimplify applies sin(a)**2 + cos(a)**2 = 1 bottom-up. Equal
// coefficients c*r collapse to c*r; unequal ones rewrite
// p*sin(a)**2 + q*cos(a)**2 as p + (q-p)*cos(a)**2 or q + (p-q)*sin(a)**2,
// whichever is smaller.
func TrigSimplify(e Expr) Expr {
	return trigSimplifyExpr(e.Simplify())
}

func trigSimplifyExpr(e Expr) Expr {
	old := e.args()
	if len(old) == 0 {
		return e
	}
	next := make([]Expr, len(old))
	for i, a := range old {
		next[i] = trigSimplifyExpr(a)
	}
	rebuilt := e.withArgs(next).Simplify()
	return trigFindPythagorean(rebuilt)
}

type trigTerm struct {
	funcName string
	key      string
	coeff    Expr
	rest     Expr
	other    Expr
	idx      int
}

// squaredTrig returns the sin/cos factor squared in a product, if any,
// together with the product of the remaining factors.
func squaredTrig(rest Expr) (*Func, Expr, bool) {
	factors := []Expr{rest}
	if m, ok := rest.(*Mul); ok {
		factors = m.factors
	}
	for i, f := range factors {
		p, ok := f.(*Pow)
		if !ok || !isNumEqual(p.exp, 2) {
			continue
		}
		fn, ok := p.base.(*Func)
		if !ok || (fn.name != "sin" && fn.name != "cos") || len(fn.argv) != 1 {
			continue
		}
		others := make([]Expr, 0, len(factors)-1)
		others = append(others, factors[:i]...)
		others = append(others, factors[i+1:]...)
		switch len(others) {
		case 0:
			return fn, N(1), true
		case 1:
			return fn, others[0], true
		}
		return fn, &Mul{factors: others}, true
	}
	return nil, nil, false
}

func trigFindPythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	var trigTerms []trigTerm
	for idx, t := range add.terms {
		coeff, rest := splitCoeff(t)
		fn, other, ok := squaredTrig(rest)
		if !ok {
			continue
		}
		trigTerms = append(trigTerms, trigTerm{
			funcName: fn.name,
			key:      fn.argv[0].String() + "|" + other.String(),
			coeff:    coeff,
			rest:     rest,
			other:    other,
			idx:      idx,
		})
	}
	for i := 0; i < len(trigTerms); i++ {
		for j := i + 1; j < len(trigTerms); j++ {
			ti, tj := trigTerms[i], trigTerms[j]
			if ti.key != tj.key || ti.funcName == tj.funcName {
				continue
			}
			remaining := make([]Expr, 0, len(add.terms))
			for idx, t := range add.terms {
				if idx != ti.idx && idx != tj.idx {
					remaining = append(remaining, t)
				}
			}
			if cmpNumbers(ti.coeff, tj.coeff) == 0 {
				return AddOf(append(remaining, MulOf(ti.coeff, ti.other))...)
			}
			sinTerm, cosTerm := ti, tj
			if sinTerm.funcName != "sin" {
				sinTerm, cosTerm = tj, ti
			}
			best := pythagoreanRewrite(remaining, sinTerm, cosTerm)
			if alt := pythagoreanRewrite(remaining, cosTerm, sinTerm); Count(alt) < Count(best) {
				best = alt
			}
			if Count(best) < Count(e) {
				return best
			}
		}
	}
	return e
}

// pythagoreanRewrite returns the remaining terms plus drop's coefficient
// times the common factor, with keep's square scaled by the coefficient
// difference.
func pythagoreanRewrite(remaining []Expr, drop, keep trigTerm) Expr {
	diff := addNumbers(keep.coeff, negNumber(drop.coeff))
	terms := append(slices.Clone(remaining), MulOf(drop.coeff, drop.other), MulOf(diff, keep.rest))
	return AddOf(terms...)
}

// ============================================================
// Expansion
// ============================================================

// Expand multiplies out products of sums and small positive integer powers
// of sums.
func Expand(e Expr) Expr { return expand(e.Simplify()) }

func expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expand(t)
		}
		return AddOf(terms...)
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = distribute(result, expand(f))
		}
		return result
	case *Pow:
		base := expand(v.base)
		exp := expand(v.exp)
		if _, isAdd := base.(*Add); isAdd && isIntegerNum(exp) {
			k := exp.(*Num).val.Num()
			if k.IsInt64() && k.Int64() >= 1 && k.Int64() <= maxExpandPower {
				result := base
				for i := int64(1); i < k.Int64(); i++ {
					result = distribute(result, base)
				}
				return result
			}
		}
		return PowOf(base, exp)
	case *Func:
		args := make([]Expr, len(v.argv))
		for i, a := range v.argv {
			args[i] = expand(a)
		}
		return (&Func{name: v.name, argv: args}).Simplify()
	}
	return e
}

func addTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// distribute multiplies two expanded expressions term by term.
func distribute(a, b Expr) Expr {
	at, bt := addTerms(a), addTerms(b)
	if len(at) == 1 && len(bt) == 1 {
		return MulOf(a, b)
	}
	terms := make([]Expr, 0, len(at)*len(bt))
	for _, x := range at {
		for _, y := range bt {
			terms = append(terms, MulOf(x, y))
		}
	}
	return AddOf(terms...)
}
