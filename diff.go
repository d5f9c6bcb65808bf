package symcanon

// ============================================================
// Differentiation
// ============================================================

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

func Diff2(expr Expr, varName string) Expr {
	return Diff(Diff(expr, varName), varName)
}

func DiffN(expr Expr, varName string, n int) Expr {
	result := expr
	for i := 0; i < n; i++ {
		result = Diff(result, varName)
	}
	return result
}

func (n *Num) Diff(string) Expr   { return N(0) }
func (f *Float) Diff(string) Expr { return N(0) }
func (c *Const) Diff(string) Expr { return N(0) }
func (d *Dummy) Diff(string) Expr { return N(0) }

func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

func (a *Add) Diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(varName)
	}
	return AddOf(dTerms...)
}

// Diff applies the product rule.
func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors))
		others = append(others, dfi)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		terms[i] = MulOf(others...)
	}
	return AddOf(terms...)
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if isNumber(p.exp) {
		newExp := AddOf(p.exp, N(-1))
		return MulOf(p.exp, PowOf(p.base, newExp), du)
	}
	if isNumber(p.base) || isConst(p.base, Pi) {
		return MulOf(PowOf(p.base, p.exp), LogOf(p.base), dv)
	}
	logTerm := MulOf(dv, LogOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

// Diff applies the chain rule for the known one-argument functions. Other
// calls that depend on varName become an unevaluated Derivative.
func (f *Func) Diff(varName string) Expr {
	if _, free := FreeSymbols(f)[varName]; !free {
		return N(0)
	}
	if len(f.argv) != 1 {
		return &Func{name: "Derivative", argv: []Expr{f, S(varName)}}
	}
	arg := f.argv[0]
	du := arg.Diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(arg), N(2)))
	case "exp":
		outer = ExpOf(arg)
	case "log":
		outer = PowOf(arg, N(-1))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(arg, N(2)))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(arg, N(2)))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(arg, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(arg)
	case "cosh":
		outer = SinhOf(arg)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(TanhOf(arg), N(2))))
	case "Abs":
		outer = SignOf(arg)
	case "sign", "floor", "ceiling":
		return N(0)
	default:
		return &Func{name: "Derivative", argv: []Expr{f, S(varName)}}
	}
	return MulOf(outer, du)
}
