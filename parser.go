package symcanon

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Parse reads input into an expression tree. Identifiers resolve to the
// variables declared in table first, then to function names and finally
// to the constants pi, E and I.
//
// With cfg.Evaluate unset the tree is built from raw nodes: nothing is
// folded or collected apart from negated literals. Subtraction is parsed
// as a + (-1)*b and division as a * b**(-1).
func Parse(input string, table *SymbolTable, cfg ParserConfig) (e Expr, err error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, toks: toks, table: table, cfg: cfg}

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			e, err = nil, perr
		}
	}()

	if p.peek().kind == tokEOF {
		p.error(0, "empty expression")
	}
	e = p.parseExpr()
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			p.error(t.pos, "unbalanced ')'")
		}
		p.error(t.pos, "unexpected %s", t)
	}
	return e, nil
}

type parser struct {
	input string
	toks  []token
	cur   int
	table *SymbolTable
	cfg   ParserConfig
}

func (p *parser) error(pos int, format string, args ...interface{}) {
	panic(&ParseError{Input: p.input, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) peek() token { return p.toks[p.cur] }

func (p *parser) next() token {
	t := p.toks[p.cur]
	if t.kind != tokEOF {
		p.cur++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) token {
	t := p.next()
	if t.kind != kind {
		p.error(t.pos, "expected %s, got %s", what, t)
	}
	return t
}

// ============================================================
// Node builders
// ============================================================

func (p *parser) sum(terms []Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	if p.cfg.Evaluate {
		return AddOf(terms...)
	}
	return &Add{terms: terms}
}

func (p *parser) product(factors []Expr) Expr {
	if len(factors) == 1 {
		return factors[0]
	}
	if p.cfg.Evaluate {
		return MulOf(factors...)
	}
	return &Mul{factors: factors}
}

func (p *parser) power(base, exp Expr) Expr {
	if p.cfg.Evaluate {
		return PowOf(base, exp)
	}
	return &Pow{base: base, exp: exp}
}

func (p *parser) negate(e Expr) Expr {
	if isNumber(e) {
		return negNumber(e)
	}
	return p.product([]Expr{N(-1), e})
}

func (p *parser) call(name string, args []Expr) Expr {
	switch {
	case name == "sqrt":
		return p.power(args[0], F(1, 2))
	case name == "log" && len(args) == 2:
		return p.product([]Expr{p.call("log", args[:1]), p.power(p.call("log", args[1:]), N(-1))})
	case p.cfg.Evaluate:
		return FuncOf(name, args...)
	}
	return &Func{name: name, argv: args}
}

// ============================================================
// Grammar
// ============================================================

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() Expr {
	terms := []Expr{p.parseTerm()}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			terms = append(terms, p.parseTerm())
		case tokMinus:
			p.next()
			terms = append(terms, p.negate(p.parseTerm()))
		default:
			return p.sum(terms)
		}
	}
}

// term := unary (('*' | '/') unary | power)*
//
// The bare power alternative is juxtaposition, accepted only with
// implicit multiplication enabled.
func (p *parser) parseTerm() Expr {
	factors := []Expr{p.parseUnary()}
	for {
		t := p.peek()
		switch {
		case t.kind == tokStar:
			p.next()
			factors = append(factors, p.parseUnary())
		case t.kind == tokSlash:
			p.next()
			factors = append(factors, p.power(p.parseUnary(), N(-1)))
		case startsAtom(t) && p.cfg.ImplicitMultiplication:
			factors = append(factors, p.parsePower())
		case startsAtom(t):
			p.error(t.pos, "unexpected %s (missing operator?)", t)
		default:
			return p.product(factors)
		}
	}
}

func startsAtom(t token) bool {
	return t.kind == tokNumber || t.kind == tokIdent || t.kind == tokLParen
}

// unary := ('+' | '-') unary | power
func (p *parser) parseUnary() Expr {
	switch p.peek().kind {
	case tokPlus:
		p.next()
		return p.parseUnary()
	case tokMinus:
		p.next()
		return p.negate(p.parseUnary())
	}
	return p.parsePower()
}

// power := atom (('**' | '^') unary)?
func (p *parser) parsePower() Expr {
	base := p.parseAtom()
	t := p.peek()
	switch t.kind {
	case tokCaret:
		if p.cfg.Exponent == ExponentStarStar {
			p.error(t.pos, "'^' is not an operator; use '**' for exponentiation")
		}
	case tokStarStar:
	default:
		return base
	}
	p.next()
	return p.power(base, p.parseUnary())
}

func (p *parser) parseAtom() Expr {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return p.parseNumber(t)
	case tokIdent:
		return p.parseIdent(t)
	case tokLParen:
		e := p.parseExpr()
		if c := p.next(); c.kind != tokRParen {
			p.error(c.pos, "missing ')' for '(' at offset %d", t.pos)
		}
		return e
	case tokEOF:
		p.error(t.pos, "unexpected end of input")
	case tokRParen:
		p.error(t.pos, "unbalanced ')'")
	}
	p.error(t.pos, "unexpected %s", t)
	return nil
}

func (p *parser) parseIdent(t token) Expr {
	if s, ok := p.table.Lookup(t.text); ok {
		if p.peek().kind == tokLParen && !p.cfg.ImplicitMultiplication {
			p.error(t.pos, "%q is a variable, not a function", t.text)
		}
		return s
	}
	name := t.text
	if canon, ok := funcAliases[name]; ok {
		name = canon
	}
	arity, isFunc := funcArity[name]
	if name == "sqrt" {
		arity, isFunc = [2]int{1, 1}, true
	}
	if isFunc {
		if p.peek().kind != tokLParen {
			p.error(t.pos, "function %q requires arguments", t.text)
		}
		open := p.next()
		args := p.parseArgs(open)
		if len(args) < arity[0] || (arity[1] >= 0 && len(args) > arity[1]) {
			p.error(t.pos, "function %q takes %s, got %d", t.text, arityText(arity), len(args))
		}
		return p.call(name, args)
	}
	if c, ok := constants[t.text]; ok {
		return c
	}
	if v, ok := nonFinite[t.text]; ok {
		return NFloat(v)
	}
	p.error(t.pos, "unknown identifier %q", t.text)
	return nil
}

// parseArgs reads a comma separated argument list after its '('.
func (p *parser) parseArgs(open token) []Expr {
	if p.peek().kind == tokRParen {
		p.next()
		return nil
	}
	args := []Expr{p.parseExpr()}
	for {
		t := p.next()
		switch t.kind {
		case tokComma:
			args = append(args, p.parseExpr())
		case tokRParen:
			return args
		case tokEOF:
			p.error(t.pos, "missing ')' for '(' at offset %d", open.pos)
		default:
			p.error(t.pos, "expected ',' or ')', got %s", t)
		}
	}
}

func arityText(a [2]int) string {
	switch {
	case a[1] < 0:
		return fmt.Sprintf("at least %d argument(s)", a[0])
	case a[0] == a[1]:
		return fmt.Sprintf("%d argument(s)", a[0])
	}
	return fmt.Sprintf("%d to %d arguments", a[0], a[1])
}

func (p *parser) parseNumber(t token) Expr {
	text := t.text
	if p.cfg.Numbers == NumberRational {
		if strings.HasPrefix(text, ".") {
			text = "0" + text
		}
		text = strings.Replace(text, ".e", ".0e", 1)
		text = strings.Replace(text, ".E", ".0E", 1)
		text = strings.TrimSuffix(text, ".")
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			p.error(t.pos, "invalid number %q", t.text)
		}
		return NRat(r)
	}
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.error(t.pos, "invalid number %q", t.text)
		}
		return NFloat(f)
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		p.error(t.pos, "invalid number %q", t.text)
	}
	return NInt(i)
}
