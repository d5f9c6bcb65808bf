package symcanon

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall dispatches req with the default parser configuration.
func HandleToolCall(req ToolRequest) ToolResponse {
	return defaultCanonicalizer.HandleToolCall(req)
}

// HandleToolCall dispatches req. String-valued expressions are parsed with
// the canonicalizer's parser configuration; tree-valued ones use the JSON
// tree form.
func (c *Canonicalizer) HandleToolCall(req ToolRequest) ToolResponse {
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return FromJSON(val)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getStrings := func(key string) ([]string, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, nil
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]string, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			result[i] = s
		}
		return result, nil
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: e.toJSON(), LaTeX: LaTeX(e), String: String(e)}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "canonicalize", "parse":
		src, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		syms, err := getStrings("symbols")
		if err != nil {
			return fail(err)
		}
		if req.Tool == "parse" {
			e, err := Parse(src, NewSymbolTable(syms...), c.cfg)
			if err != nil {
				return fail(err)
			}
			return respond(e)
		}
		e, err := c.CanonicalizeExpr(src, syms)
		if err != nil {
			return fail(err)
		}
		return respond(e)

	case "simplify", "flint", "expand", "to_latex", "to_rpn", "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		switch req.Tool {
		case "simplify":
			return respond(Simplify(e))
		case "flint":
			return respond(Flint(e))
		case "expand":
			return respond(Expand(e))
		case "to_latex":
			return ToolResponse{Result: LaTeX(e), LaTeX: LaTeX(e), String: String(e)}
		case "to_rpn":
			rpn := ToRPN(e)
			return ToolResponse{Result: rpn, String: rpn}
		}
		names := SortedFreeSymbols(e)
		return ToolResponse{Result: names, String: strings.Join(names, ", ")}

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return respond(Diff(e, v))

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		value, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(Sub(e, v, value))

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return fail(fmt.Errorf("%w: %s", ErrUnknownTool, req.Tool))
}

// MCPToolSpec returns the JSON schema of every tool HandleToolCall serves.
func MCPToolSpec() string {
	exprObj := map[string]string{"expr": "object"}
	tools := []map[string]interface{}{
		ts("canonicalize", "Parse, simplify and normalize an expression string", []string{"expr"}, map[string]string{"expr": "string", "symbols": "array"}),
		ts("parse", "Parse an expression string without simplifying it", []string{"expr"}, map[string]string{"expr": "string", "symbols": "array"}),
		ts("simplify", "Simplify a symbolic expression", []string{"expr"}, exprObj),
		ts("flint", "Replace integer-valued float literals with integers", []string{"expr"}, exprObj),
		ts("expand", "Algebraically expand expression", []string{"expr"}, exprObj),
		ts("diff", "First derivative d/dx", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, exprObj),
		ts("to_rpn", "Convert to postfix notation", []string{"expr"}, exprObj),
		ts("free_symbols", "Return free symbol names", []string{"expr"}, exprObj),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
