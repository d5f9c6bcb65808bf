package symcanon

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"
)

// ============================================================
// JSON tree form
// ============================================================

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func (f *Float) toJSON() map[string]interface{} {
	if !isFinite(f.val) {
		return map[string]interface{}{"type": "float", "value": formatFloat(f.val)}
	}
	return map[string]interface{}{"type": "float", "value": f.val}
}

func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}

func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "name": c.name}
}

func (d *Dummy) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "dummy", "id": d.id}
}

func listJSON(es []Expr) []interface{} {
	out := make([]interface{}, len(es))
	for i, e := range es {
		out[i] = e.toJSON()
	}
	return out
}

func (a *Add) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "add", "terms": listJSON(a.terms)}
}

func (m *Mul) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "mul", "factors": listJSON(m.factors)}
}

func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}

func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "args": listJSON(f.argv)}
}

// TreeJSON returns the JSON tree form of e as generic maps and slices.
func TreeJSON(e Expr) map[string]interface{} { return e.toJSON() }

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ToProto returns the JSON tree form of e as a protobuf Struct.
func ToProto(e Expr) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(e.toJSON())
	if err != nil {
		return nil, fmt.Errorf("symcanon: encode tree: %w", err)
	}
	return s, nil
}

// FromProto rebuilds an expression from the Struct produced by ToProto.
func FromProto(s *structpb.Struct) (Expr, error) {
	if s == nil {
		return nil, fmt.Errorf("symcanon: nil struct")
	}
	return FromJSON(s.AsMap())
}

// FromJSON rebuilds an expression from its JSON tree form. Compound nodes
// are rebuilt through the canonicalizing constructors.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		return m, nil
	}

	subList := func(field string) ([]Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		r, ok := new(big.Rat).SetString(val)
		if !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return &Num{val: r}, nil

	case "float":
		switch v := data["value"].(type) {
		case float64:
			return NFloat(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid float value: %w", err)
			}
			return NFloat(f), nil
		}
		return nil, fmt.Errorf("float: 'value' must be a number")

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "const":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		c, ok := constants[name]
		if !ok {
			return nil, fmt.Errorf("unknown constant: %s", name)
		}
		return c, nil

	case "dummy":
		id, err := subString("id")
		if err != nil {
			return nil, err
		}
		return &Dummy{id: id}, nil

	case "add":
		terms, err := subList("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subList("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		baseM, err := subObj("base")
		if err != nil {
			return nil, err
		}
		expM, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		base, err := FromJSON(baseM)
		if err != nil {
			return nil, fmt.Errorf("pow: base: %w", err)
		}
		exp, err := FromJSON(expM)
		if err != nil {
			return nil, fmt.Errorf("pow: exp: %w", err)
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		args, err := subList("args")
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("func: %s needs at least one argument", name)
		}
		return FuncOf(name, args...), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownNode, typ)
}
