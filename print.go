package symcanon

import (
	"math/big"
	"strings"
)

// ============================================================
// String rendering for compound nodes
// ============================================================

// isNegativeTerm reports whether a sum term carries a negative sign.
func isNegativeTerm(e Expr) bool {
	if isNumber(e) {
		return isNegativeNumber(e)
	}
	if m, ok := e.(*Mul); ok && len(m.factors) > 0 {
		return isNegativeNumber(m.factors[0])
	}
	return false
}

// negateTerm flips the sign of a term for which isNegativeTerm holds.
func negateTerm(e Expr) Expr {
	if isNumber(e) {
		return negNumber(e)
	}
	m := e.(*Mul)
	c := negNumber(m.factors[0])
	rest := m.factors[1:]
	if isOneNum(c) {
		if len(rest) == 1 {
			return rest[0]
		}
		return &Mul{factors: rest}
	}
	return &Mul{factors: append([]Expr{c}, rest...)}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		neg := isNegativeTerm(t)
		s := ""
		if neg {
			s = negateTerm(t).String()
		} else {
			s = t.String()
		}
		if _, ok := t.(*Add); ok {
			s = "(" + s + ")"
		}
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		neg := isNegativeTerm(t)
		s := ""
		if neg {
			s = negateTerm(t).LaTeX()
		} else {
			s = t.LaTeX()
		}
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// fraction splits a product into sign, numerator and denominator parts.
// Rational coefficients contribute p and q; powers with a negative numeric
// exponent move to the denominator with the exponent negated.
func (m *Mul) fraction() (neg bool, num, den []Expr) {
	for i, f := range m.factors {
		if i == 0 && isNumber(f) {
			if isNegativeNumber(f) {
				neg = true
				f = negNumber(f)
			}
			switch c := f.(type) {
			case *Num:
				p := new(big.Int).Set(c.val.Num())
				q := c.val.Denom()
				if p.Cmp(big.NewInt(1)) != 0 {
					num = append(num, NInt(p))
				}
				if !q.IsInt64() || q.Int64() != 1 {
					den = append(den, NInt(q))
				}
			default:
				num = append(num, f)
			}
			continue
		}
		if p, ok := f.(*Pow); ok && isNegativeNumber(p.exp) {
			inv := negNumber(p.exp)
			if isOneNum(inv) {
				den = append(den, p.base)
			} else {
				den = append(den, &Pow{base: p.base, exp: inv})
			}
			continue
		}
		num = append(num, f)
	}
	return neg, num, den
}

func mulOperand(e Expr) string {
	switch e.(type) {
	case *Add:
		return "(" + e.String() + ")"
	case *Mul:
		return "(" + e.String() + ")"
	}
	return e.String()
}

func (m *Mul) String() string {
	neg, num, den := m.fraction()
	var sb strings.Builder
	if neg {
		sb.WriteString("-")
	}
	if len(num) == 0 {
		sb.WriteString("1")
	}
	for i, f := range num {
		if i > 0 {
			sb.WriteString("*")
		}
		sb.WriteString(mulOperand(f))
	}
	switch len(den) {
	case 0:
	case 1:
		sb.WriteString("/")
		if _, isPow := den[0].(*Pow); isPow {
			sb.WriteString(den[0].String())
		} else {
			sb.WriteString(mulOperand(den[0]))
		}
	default:
		parts := make([]string, len(den))
		for i, f := range den {
			parts[i] = mulOperand(f)
		}
		sb.WriteString("/(" + strings.Join(parts, "*") + ")")
	}
	return sb.String()
}

func (m *Mul) LaTeX() string {
	neg, num, den := m.fraction()
	join := func(fs []Expr) string {
		if len(fs) == 0 {
			return "1"
		}
		parts := make([]string, len(fs))
		for i, f := range fs {
			if _, isAdd := f.(*Add); isAdd {
				parts[i] = "\\left(" + f.LaTeX() + "\\right)"
			} else {
				parts[i] = f.LaTeX()
			}
		}
		return strings.Join(parts, " ")
	}
	sign := ""
	if neg {
		sign = "-"
	}
	if len(den) == 0 {
		return sign + join(num)
	}
	return sign + "\\frac{" + join(num) + "}{" + join(den) + "}"
}

func needsBaseParens(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return v.IsNegative() || !v.IsInteger()
	case *Float:
		return v.val < 0
	}
	return false
}

func needsExpParens(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return v.IsNegative() || !v.IsInteger()
	case *Float:
		return v.val < 0
	}
	return false
}

func wrapIf(s string, cond bool) string {
	if cond {
		return "(" + s + ")"
	}
	return s
}

func (p *Pow) String() string {
	if en, ok := p.exp.(*Num); ok {
		switch {
		case en.IsNegOne():
			return "1/" + wrapIf(p.base.String(), needsBaseParens(p.base))
		case en.Equal(F(1, 2)):
			return "sqrt(" + p.base.String() + ")"
		case en.Equal(F(-1, 2)):
			return "1/sqrt(" + p.base.String() + ")"
		}
	}
	return wrapIf(p.base.String(), needsBaseParens(p.base)) + "**" + wrapIf(p.exp.String(), needsExpParens(p.exp))
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok && en.Equal(F(1, 2)) {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	if needsBaseParens(p.base) {
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}
