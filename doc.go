// Package symcanon converts textual mathematical expressions into
// simplified, canonical expression strings.
//
// The pipeline is: declare the variables (NewSymbolTable), parse without
// evaluation (Parse), simplify (Simplify), narrow integer-valued float
// literals to integers (Flint) and render (Expr.String). GetExpr and
// Canonicalizer.Canonicalize run the whole pipeline:
//
//	s, err := symcanon.GetExpr("1.0*sin(x)^2 + 2*x - x", []string{"x"})
//	// s == "sin(x)**2 + x"
//
// The symbolic kernel is built from immutable Expr nodes. The AddOf, MulOf,
// PowOf and FuncOf constructors canonicalize as they build: numbers are
// folded, like terms and equal bases are collected and operands are put in
// a deterministic order, so two equal expressions render identically.
// Undefined numeric results such as 1/0 stay unevaluated.
//
// Output uses Python syntax: ** for powers, / for negative powers and
// rational coefficients, sqrt for square roots, oo and nan for overflowed
// floats. Every rendering parses back under DefaultParserConfig and
// canonicalizes to the same string.
package symcanon
