package symcanon

import (
	"math"
	"math/big"
)

// ============================================================
// Numeric helpers shared by Num and Float
// ============================================================

// maxExactExponent and maxExactBits bound integer powers computed
// exactly, by exponent and by the bit length of the result; larger powers
// stay unevaluated.
const (
	maxExactExponent = 4096
	maxExactBits     = 1 << 15
)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numAbs(a *Num) *Num    { return &Num{val: new(big.Rat).Abs(a.val)} }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

func isNumber(e Expr) bool {
	switch e.(type) {
	case *Num, *Float:
		return true
	}
	return false
}

func toFloat(e Expr) float64 {
	switch v := e.(type) {
	case *Num:
		return v.Float64()
	case *Float:
		return v.val
	}
	return math.NaN()
}

// addNumbers and mulNumbers stay exact for two Nums and fall back to
// float64 as soon as a Float takes part.
func addNumbers(a, b Expr) Expr {
	an, aok := a.(*Num)
	bn, bok := b.(*Num)
	if aok && bok {
		return numAdd(an, bn)
	}
	return NFloat(toFloat(a) + toFloat(b))
}

func mulNumbers(a, b Expr) Expr {
	an, aok := a.(*Num)
	bn, bok := b.(*Num)
	if aok && bok {
		return numMul(an, bn)
	}
	return NFloat(toFloat(a) * toFloat(b))
}

func negNumber(e Expr) Expr {
	switch v := e.(type) {
	case *Num:
		return numNeg(v)
	case *Float:
		return NFloat(-v.val)
	}
	return e
}

func signNumber(e Expr) int {
	switch v := e.(type) {
	case *Num:
		return v.val.Sign()
	case *Float:
		switch {
		case v.val > 0:
			return 1
		case v.val < 0:
			return -1
		}
	}
	return 0
}

func isZeroNumber(e Expr) bool     { return isNumber(e) && signNumber(e) == 0 && !isNaN(e) }
func isNegativeNumber(e Expr) bool { return isNumber(e) && signNumber(e) < 0 }
func isNaN(e Expr) bool            { f, ok := e.(*Float); return ok && math.IsNaN(f.val) }

func isOneNum(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsOne()
}

func isIntegerNum(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsInteger()
}

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(new(big.Rat).SetInt64(v)) == 0
}

// cmpNumbers orders two numeric leaves by value.
func cmpNumbers(a, b Expr) int {
	an, aok := a.(*Num)
	bn, bok := b.(*Num)
	if aok && bok {
		return numCmp(an, bn)
	}
	x, y := toFloat(a), toFloat(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// powNumbers evaluates base**exp for numeric leaves. ok is false when the
// result is not representable exactly (or finitely), in which case the
// caller keeps the power unevaluated.
func powNumbers(base, exp Expr) (Expr, bool) {
	bn, bok := base.(*Num)
	en, eok := exp.(*Num)
	if !bok || !eok {
		r := math.Pow(toFloat(base), toFloat(exp))
		if !isFinite(r) {
			return nil, false
		}
		return NFloat(r), true
	}
	if en.IsInteger() {
		return ratIntPow(bn.val, en.val.Num())
	}
	if bn.IsNegative() {
		return nil, false
	}
	q := en.val.Denom()
	if !q.IsInt64() || q.Int64() > 64 {
		return nil, false
	}
	rn, ok := intRoot(bn.val.Num(), int(q.Int64()))
	if !ok {
		return nil, false
	}
	rd, ok := intRoot(bn.val.Denom(), int(q.Int64()))
	if !ok {
		return nil, false
	}
	root := new(big.Rat).SetFrac(rn, rd)
	return ratIntPow(root, en.val.Num())
}

func ratIntPow(base *big.Rat, k *big.Int) (Expr, bool) {
	if !k.IsInt64() {
		return nil, false
	}
	n := k.Int64()
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs > maxExactExponent {
		return nil, false
	}
	if n < 0 && base.Sign() == 0 {
		return nil, false
	}
	if int64(base.Num().BitLen())*abs > maxExactBits || int64(base.Denom().BitLen())*abs > maxExactBits {
		return nil, false
	}
	e := big.NewInt(abs)
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Denom(), e, nil)
	if n < 0 {
		num, den = den, num
	}
	return &Num{val: new(big.Rat).SetFrac(num, den)}, true
}

// intRoot returns the exact non-negative q-th root of n if one exists.
func intRoot(n *big.Int, q int) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	if n.Sign() == 0 || q == 1 {
		return new(big.Int).Set(n), true
	}
	if q == 2 {
		r := new(big.Int).Sqrt(n)
		return r, new(big.Int).Mul(r, r).Cmp(n) == 0
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	if !isFinite(f) {
		return nil, false
	}
	guess := int64(math.Round(math.Pow(f, 1/float64(q))))
	qq := big.NewInt(int64(q))
	for _, c := range []int64{guess - 1, guess, guess + 1} {
		if c < 0 {
			continue
		}
		r := big.NewInt(c)
		if new(big.Int).Exp(r, qq, nil).Cmp(n) == 0 {
			return r, true
		}
	}
	return nil, false
}
