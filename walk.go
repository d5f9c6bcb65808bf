package symcanon

import "sort"

// ============================================================
// Traversal and structural replacement
// ============================================================

// Walk visits e and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(e Expr, fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	for _, a := range e.args() {
		Walk(a, fn)
	}
}

// Rewrite replaces, top-down, every node for which fn returns a
// replacement. Parents are rebuilt structurally without simplification,
// and untouched subtrees keep their identity.
func Rewrite(e Expr, fn func(Expr) (Expr, bool)) Expr {
	return rewrite(e, fn, false)
}

// XReplace is Rewrite followed by a canonical rebuild of every changed
// parent, so that replacements can trigger simplification.
func XReplace(e Expr, fn func(Expr) (Expr, bool)) Expr {
	return rewrite(e, fn, true)
}

func rewrite(e Expr, fn func(Expr) (Expr, bool), canonical bool) Expr {
	if r, ok := fn(e); ok {
		return r
	}
	old := e.args()
	if len(old) == 0 {
		return e
	}
	var next []Expr
	for i, a := range old {
		r := rewrite(a, fn, canonical)
		if r != a && next == nil {
			next = make([]Expr, len(old))
			copy(next, old[:i])
		}
		if next != nil {
			next[i] = r
		}
	}
	if next == nil {
		return e
	}
	rebuilt := e.withArgs(next)
	if canonical {
		return rebuilt.Simplify()
	}
	return rebuilt
}

// FreeSymbols returns the names of all variables occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	Walk(e, func(n Expr) bool {
		if s, ok := n.(*Sym); ok {
			out[s.name] = struct{}{}
		}
		return true
	})
	return out
}

// SortedFreeSymbols returns the names of FreeSymbols in ascending order.
func SortedFreeSymbols(e Expr) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of nodes in e.
func Count(e Expr) int {
	n := 0
	Walk(e, func(Expr) bool { n++; return true })
	return n
}

// Sub substitutes value for every occurrence of the named variable and
// canonicalizes the result.
func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}
