package symcanon

import "strings"

// ToRPN renders e in postfix notation with space separated tokens. Sums
// and products are folded left into binary operators and a function name
// follows its arguments.
func ToRPN(e Expr) string {
	var toks []string
	rpnTokens(e, &toks)
	return strings.Join(toks, " ")
}

func rpnTokens(e Expr, out *[]string) {
	fold := func(args []Expr, op string) {
		for i, a := range args {
			rpnTokens(a, out)
			if i > 0 {
				*out = append(*out, op)
			}
		}
	}
	switch v := e.(type) {
	case *Add:
		fold(v.terms, "+")
	case *Mul:
		fold(v.factors, "*")
	case *Pow:
		rpnTokens(v.base, out)
		rpnTokens(v.exp, out)
		*out = append(*out, "^")
	case *Func:
		for _, a := range v.argv {
			rpnTokens(a, out)
		}
		*out = append(*out, v.name)
	default:
		*out = append(*out, e.String())
	}
}
