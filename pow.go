package symcanon

import "math/big"

// ============================================================
// Pow: base**exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsOne() {
			return N(1)
		}
		if bn.IsZero() {
			if isNumber(exp) && signNumber(exp) > 0 {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		}
	}
	if isNumber(base) && isNumber(exp) {
		if r, ok := powNumbers(base, exp); ok {
			return r
		}
		return &Pow{base: base, exp: exp}
	}

	switch b := base.(type) {
	case *Const:
		if b.name == EulerE.name {
			return ExpOf(exp)
		}
		if b.name == ImagUnit.name && isIntegerNum(exp) {
			return imagPower(exp.(*Num))
		}
	case *Pow:
		if isIntegerNum(exp) {
			return PowOf(b.base, MulOf(b.exp, exp))
		}
	case *Mul:
		if isIntegerNum(exp) {
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				fs[i] = PowOf(f, exp)
			}
			return MulOf(fs...)
		}
	}
	return &Pow{base: base, exp: exp}
}

// imagPower returns I**k for integer k.
func imagPower(k *Num) Expr {
	// big.Int.Mod is Euclidean, so m is in [0, 4).
	m := new(big.Int).Mod(k.val.Num(), big.NewInt(4)).Int64()
	switch m {
	case 1:
		return ImagUnit
	case 2:
		return N(-1)
	case 3:
		return &Mul{factors: []Expr{N(-1), ImagUnit}}
	}
	return N(1)
}

func (p *Pow) Sub(varName string, value Expr) Expr { return subArgs(p, varName, value) }

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string          { return "pow" }
func (p *Pow) args() []Expr              { return []Expr{p.base, p.exp} }
func (p *Pow) withArgs(args []Expr) Expr { return &Pow{base: args[0], exp: args[1]} }
func (p *Pow) Base() Expr                { return p.base }
func (p *Pow) ExpExpr() Expr             { return p.exp }
