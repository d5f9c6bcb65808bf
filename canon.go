package symcanon

import (
	"go.uber.org/zap"
)

// Canonicalizer turns expression strings into canonical expression
// strings. It holds no per-call state and is safe for concurrent use.
type Canonicalizer struct {
	cfg    ParserConfig
	logger *zap.Logger
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithParserConfig sets the grammar configuration.
func WithParserConfig(cfg ParserConfig) Option {
	return func(c *Canonicalizer) { c.cfg = cfg }
}

// WithLogger sets the logger used for per-stage debug output. A nil
// logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Canonicalizer) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewCanonicalizer(opts ...Option) *Canonicalizer {
	c := &Canonicalizer{
		cfg:    DefaultParserConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParserConfig returns the grammar configuration in use.
func (c *Canonicalizer) ParserConfig() ParserConfig { return c.cfg }

// Canonicalize parses expr with syms declared as variables, simplifies it,
// narrows integral floats and renders the result. Parse failures are
// returned unchanged as *ParseError.
func (c *Canonicalizer) Canonicalize(expr string, syms []string) (string, error) {
	e, err := c.CanonicalizeExpr(expr, syms)
	if err != nil {
		return "", err
	}
	return e.String(), nil
}

// CanonicalizeExpr is Canonicalize without the final rendering.
func (c *Canonicalizer) CanonicalizeExpr(expr string, syms []string) (Expr, error) {
	table := NewSymbolTable(syms...)
	parsed, err := Parse(expr, table, c.cfg)
	if err != nil {
		c.logger.Debug("parse failed", zap.String("expr", expr), zap.Error(err))
		return nil, err
	}
	c.logger.Debug("parsed", zap.String("expr", expr), zap.Stringer("tree", parsed))

	simplified := Simplify(parsed)
	c.logger.Debug("simplified", zap.Stringer("tree", simplified))

	result := Flint(simplified)
	c.logger.Debug("narrowed integral floats", zap.Stringer("tree", result))
	return result, nil
}

var defaultCanonicalizer = NewCanonicalizer()

// GetExpr canonicalizes expr under the default parser configuration.
func GetExpr(expr string, syms []string) (string, error) {
	return defaultCanonicalizer.Canonicalize(expr, syms)
}
