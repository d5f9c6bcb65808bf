package symcanon

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExponentOperator selects the spelling of exponentiation.
type ExponentOperator int

const (
	// ExponentCaret accepts both ^ and ** as exponentiation.
	ExponentCaret ExponentOperator = iota
	// ExponentStarStar accepts only **; a ^ is rejected.
	ExponentStarStar
)

// NumberMode selects how numeric literals are represented.
type NumberMode int

const (
	// NumberAuto reads digit-only literals as exact integers and literals
	// with a decimal point or exponent as floats.
	NumberAuto NumberMode = iota
	// NumberRational reads every literal as an exact rational.
	NumberRational
)

var exponentNames = map[ExponentOperator]string{
	ExponentCaret:    "caret",
	ExponentStarStar: "starstar",
}

var numberNames = map[NumberMode]string{
	NumberAuto:     "auto",
	NumberRational: "rational",
}

func (o ExponentOperator) String() string {
	if s, ok := exponentNames[o]; ok {
		return s
	}
	return fmt.Sprintf("ExponentOperator(%d)", int(o))
}

func (m NumberMode) String() string {
	if s, ok := numberNames[m]; ok {
		return s
	}
	return fmt.Sprintf("NumberMode(%d)", int(m))
}

// ParseExponentOperator maps a config name onto its ExponentOperator.
func ParseExponentOperator(s string) (ExponentOperator, error) {
	for k, v := range exponentNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("symcanon: unknown exponent operator %q", s)
}

// ParseNumberMode maps a config name onto its NumberMode.
func ParseNumberMode(s string) (NumberMode, error) {
	for k, v := range numberNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("symcanon: unknown number mode %q", s)
}

func (o ExponentOperator) MarshalYAML() (interface{}, error) { return o.String(), nil }

func (o *ExponentOperator) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseExponentOperator(node.Value)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (m NumberMode) MarshalYAML() (interface{}, error) { return m.String(), nil }

func (m *NumberMode) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseNumberMode(node.Value)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParserConfig is the grammar configuration used by Parse.
type ParserConfig struct {
	Exponent               ExponentOperator `yaml:"exponent"`
	Numbers                NumberMode       `yaml:"numbers"`
	Evaluate               bool             `yaml:"evaluate"`
	ImplicitMultiplication bool             `yaml:"implicit_multiplication"`
}

// DefaultParserConfig returns the configuration used by GetExpr: caret
// exponentiation, automatic number typing, no evaluation during parsing
// and no implicit multiplication.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		Exponent: ExponentCaret,
		Numbers:  NumberAuto,
	}
}
