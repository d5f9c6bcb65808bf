package symcanon

import (
	"slices"
	"strings"
)

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

// Simplify flattens nested sums, folds numeric terms, collects like terms
// by coefficient and orders the result.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	type like struct {
		coeff Expr
		rest  Expr
	}
	var constant Expr = N(0)
	groups := map[string]*like{}
	order := []string{}
	for _, t := range flat {
		if isNumber(t) {
			constant = addNumbers(constant, t)
			continue
		}
		c, rest := splitCoeff(t)
		key := rest.String()
		g, seen := groups[key]
		if !seen {
			g = &like{coeff: N(0), rest: rest}
			groups[key] = g
			order = append(order, key)
		}
		g.coeff = addNumbers(g.coeff, c)
	}

	terms := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		if isZeroNumber(g.coeff) {
			continue
		}
		terms = append(terms, withCoeff(g.coeff, g.rest))
	}
	sortTerms(terms)
	if !isZeroNumber(constant) {
		terms = append(terms, constant)
	}
	switch len(terms) {
	case 0:
		return N(0)
	case 1:
		return terms[0]
	}
	return &Add{terms: terms}
}

func (a *Add) Sub(varName string, value Expr) Expr { return subArgs(a, varName, value) }

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && equalArgs(a.terms, o.terms)
}

func (a *Add) exprType() string          { return "add" }
func (a *Add) args() []Expr              { return a.terms }
func (a *Add) withArgs(args []Expr) Expr { return &Add{terms: args} }
func (a *Add) Terms() []Expr             { return slices.Clone(a.terms) }

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// DivOf returns a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

// Simplify flattens nested products, folds the numeric coefficient, merges
// equal bases by adding exponents and orders the factors by base.
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	type power struct {
		orig Expr
		base Expr
		exps []Expr
	}
	var coeff Expr = N(1)
	powers := map[string]*power{}
	order := []string{}
	for _, f := range flat {
		if isNumber(f) {
			coeff = mulNumbers(coeff, f)
			continue
		}
		base, exp := splitPow(f)
		key := base.String()
		p, seen := powers[key]
		if !seen {
			p = &power{orig: f, base: base}
			powers[key] = p
			order = append(order, key)
		}
		p.exps = append(p.exps, exp)
	}
	if isZeroNumber(coeff) {
		return N(0)
	}

	factors := make([]Expr, 0, len(order))
	var pending []Expr
	for _, key := range order {
		p := powers[key]
		f := p.orig
		if len(p.exps) > 1 {
			f = PowOf(p.base, AddOf(p.exps...))
		}
		switch f.(type) {
		case *Num, *Float:
			coeff = mulNumbers(coeff, f)
		case *Mul:
			pending = append(pending, f)
		default:
			factors = append(factors, f)
		}
	}
	if len(pending) > 0 {
		all := append([]Expr{coeff}, factors...)
		return MulOf(append(all, pending...)...)
	}
	if isZeroNumber(coeff) {
		return N(0)
	}
	if len(factors) == 0 {
		return coeff
	}
	if len(factors) == 1 && !isOneNum(coeff) {
		if sum, ok := factors[0].(*Add); ok {
			terms := make([]Expr, len(sum.terms))
			for i, t := range sum.terms {
				terms[i] = MulOf(coeff, t)
			}
			return AddOf(terms...)
		}
	}
	sortFactors(factors)
	if isOneNum(coeff) {
		if len(factors) == 1 {
			return factors[0]
		}
		return &Mul{factors: factors}
	}
	return &Mul{factors: append([]Expr{coeff}, factors...)}
}

func (m *Mul) Sub(varName string, value Expr) Expr { return subArgs(m, varName, value) }

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	return ok && equalArgs(m.factors, o.factors)
}

func (m *Mul) exprType() string          { return "mul" }
func (m *Mul) args() []Expr              { return m.factors }
func (m *Mul) withArgs(args []Expr) Expr { return &Mul{factors: args} }
func (m *Mul) Factors() []Expr           { return slices.Clone(m.factors) }

// ============================================================
// Term decomposition
// ============================================================

// splitCoeff separates the leading numeric coefficient of a term.
func splitCoeff(e Expr) (Expr, Expr) {
	if isNumber(e) {
		return e, N(1)
	}
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 && isNumber(m.factors[0]) {
		rest := m.factors[1:]
		if len(rest) == 1 {
			return m.factors[0], rest[0]
		}
		return m.factors[0], &Mul{factors: rest}
	}
	return N(1), e
}

// withCoeff rebuilds coeff*rest without re-simplifying rest.
func withCoeff(coeff, rest Expr) Expr {
	if isOneNum(coeff) {
		return rest
	}
	if m, ok := rest.(*Mul); ok {
		return &Mul{factors: append([]Expr{coeff}, m.factors...)}
	}
	return &Mul{factors: []Expr{coeff, rest}}
}

func splitPow(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func equalArgs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func subArgs(e Expr, varName string, value Expr) Expr {
	old := e.args()
	next := make([]Expr, len(old))
	for i, a := range old {
		next[i] = a.Sub(varName, value)
	}
	return e.withArgs(next).Simplify()
}

// ============================================================
// Canonical ordering
// ============================================================

type monoFactor struct {
	base string
	exp  Expr
}

func monomial(e Expr) []monoFactor {
	var fs []Expr
	if m, ok := e.(*Mul); ok {
		fs = m.factors
	} else {
		fs = []Expr{e}
	}
	out := make([]monoFactor, 0, len(fs))
	for _, f := range fs {
		if isNumber(f) {
			continue
		}
		b, x := splitPow(f)
		out = append(out, monoFactor{base: b.String(), exp: x})
	}
	return out
}

// compareDegree puts higher degrees first; symbolic exponents sort before
// numeric ones.
func compareDegree(a, b Expr) int {
	an, bn := isNumber(a), isNumber(b)
	switch {
	case an && bn:
		return -cmpNumbers(a, b)
	case an:
		return 1
	case bn:
		return -1
	}
	return strings.Compare(a.String(), b.String())
}

// compareTerms orders two non-numeric sum terms: by base name ascending,
// then degree descending, then terms with more factors first.
func compareTerms(a, b Expr) int {
	ma, mb := monomial(a), monomial(b)
	for i := 0; i < len(ma) && i < len(mb); i++ {
		if c := strings.Compare(ma[i].base, mb[i].base); c != 0 {
			return c
		}
		if c := compareDegree(ma[i].exp, mb[i].exp); c != 0 {
			return c
		}
	}
	if len(ma) != len(mb) {
		return len(mb) - len(ma)
	}
	return strings.Compare(a.String(), b.String())
}

func sortTerms(terms []Expr) { slices.SortStableFunc(terms, compareTerms) }

func sortFactors(factors []Expr) {
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(factors))
	for i, f := range factors {
		b, _ := splitPow(f)
		ks[i] = keyed{e: f, key: b.String()}
	}
	slices.SortStableFunc(ks, func(x, y keyed) int { return strings.Compare(x.key, y.key) })
	for i := range ks {
		factors[i] = ks[i].e
	}
}
