package symcanon

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokStarStar
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }

// lex splits input into tokens, ending with a tokEOF token.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(input) && isDigit(input[i+1])):
			end := scanNumber(input, i)
			toks = append(toks, token{kind: tokNumber, text: input[i:end], pos: i})
			i = end
		case isIdentStart(c):
			end := i + 1
			for end < len(input) && isIdentPart(input[end]) {
				end++
			}
			toks = append(toks, token{kind: tokIdent, text: input[i:end], pos: i})
			i = end
		case c == '*' && i+1 < len(input) && input[i+1] == '*':
			toks = append(toks, token{kind: tokStarStar, text: "**", pos: i})
			i += 2
		default:
			kind, ok := singleCharTokens[c]
			if !ok {
				return nil, &ParseError{Input: input, Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
			}
			toks = append(toks, token{kind: kind, text: string(c), pos: i})
			i++
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(input)}), nil
}

var singleCharTokens = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'^': tokCaret,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
}

// scanNumber returns the end offset of the numeric literal starting at i:
// digits, an optional fraction and an optional exponent. An 'e' that is
// not followed by digits is left for the identifier scanner.
func scanNumber(input string, i int) int {
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
		}
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < len(input) && isDigit(input[j]) {
			for j < len(input) && isDigit(input[j]) {
				j++
			}
			i = j
		}
	}
	return i
}
