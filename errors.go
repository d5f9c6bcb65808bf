package symcanon

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every error returned for malformed input.
// Use errors.As with *ParseError to get the position.
var ErrParse = errors.New("symcanon: parse error")

// ErrUnknownNode reports a JSON tree node whose type is not recognised.
var ErrUnknownNode = errors.New("symcanon: unknown node type")

// ErrUnknownTool reports a tool request naming no registered tool.
var ErrUnknownTool = errors.New("symcanon: unknown tool")

// ParseError locates a parse failure inside its input.
type ParseError struct {
	Input string
	Pos   int // byte offset
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("symcanon: parse error at offset %d: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }
