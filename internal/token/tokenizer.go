package token

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// maxIntConst is the largest integer constant a Jack program may write.
const maxIntConst = 32767

// Tokenizer turns Jack source text into a finite ordered token sequence.
// Tokens are lexed eagerly at construction time; Peek/Advance then walk the
// resulting slice.
type Tokenizer struct {
	toks []Token
	pos  int
}

// New strips comments from src and lexes the remainder into a Tokenizer.
// It fails with a lexical error on the first unrecognized fragment.
func New(src string) (*Tokenizer, error) {
	toks, err := lex(stripComments(src))
	if err != nil {
		return nil, err
	}
	return &Tokenizer{toks: toks}, nil
}

// Peek returns the current token without consuming it. ok is false at
// end-of-stream.
func (t *Tokenizer) Peek() (Token, bool) {
	if t.pos >= len(t.toks) {
		return Token{}, false
	}
	return t.toks[t.pos], true
}

// Advance returns the current token and moves the cursor past it. ok is
// false at end-of-stream, in which case the cursor does not move.
func (t *Tokenizer) Advance() (Token, bool) {
	tok, ok := t.Peek()
	if ok {
		t.pos++
	}
	return tok, ok
}

// stripComments removes line comments (// to end of line, replaced by a
// single newline) and block comments (/* ... */, including /** ... */)
// from src, leaving string literals untouched. Comments are not recognized
// while scanning inside a string literal.
func stripComments(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))

	i, n := 0, len(src)
	for i < n {
		c := src[i]
		switch {
		case c == '"':
			start := i
			i++
			for i < n && src[i] != '"' && src[i] != '\n' {
				i++
			}
			if i < n && src[i] == '"' {
				i++
			}
			sb.WriteString(src[start:i])
		case c == '/' && i+1 < n && src[i+1] == '/':
			sb.WriteByte('\n')
			i += 2
			for i < n && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && src[i+1] == '*':
			i += 2
			closed := false
			for i+1 < n {
				if src[i] == '*' && src[i+1] == '/' {
					i += 2
					closed = true
					break
				}
				i++
			}
			if !closed {
				i = n
			}
			sb.WriteByte(' ')
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool { return isLetter(c) || isDigit(c) }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// lex recognizes tokens in source order: keyword, symbol, integer constant,
// string constant, identifier, each the longest match at the current
// position.
func lex(src string) ([]Token, error) {
	var toks []Token
	i, n := 0, len(src)

	for i < n {
		c := src[i]
		switch {
		case isSpace(c):
			i++

		case c == '"':
			start := i + 1
			j := start
			for j < n && src[j] != '"' && src[j] != '\n' {
				j++
			}
			if j >= n || src[j] == '\n' {
				return nil, errors.Errorf("unterminated string constant starting at %q", src[i:min(i+16, n)])
			}
			toks = append(toks, Token{Kind: StringConst, Text: src[start:j]})
			i = j + 1

		case isDigit(c):
			j := i
			for j < n && isDigit(src[j]) {
				j++
			}
			text := src[i:j]
			value, err := strconv.Atoi(text)
			if err != nil || value > maxIntConst {
				return nil, errors.Errorf("integer constant %q out of range 0..%d", text, maxIntConst)
			}
			toks = append(toks, Token{Kind: IntConst, Text: text, IntValue: uint16(value)})
			i = j

		case isLetter(c):
			j := i
			for j < n && isIdentChar(src[j]) {
				j++
			}
			text := src[i:j]
			if Keywords[text] {
				toks = append(toks, Token{Kind: Keyword, Text: text})
			} else {
				toks = append(toks, Token{Kind: Identifier, Text: text})
			}
			i = j

		case strings.IndexByte(Symbols, c) >= 0:
			toks = append(toks, Token{Kind: Symbol, Text: string(c)})
			i++

		default:
			return nil, errors.Errorf("unknown token %q", string(c))
		}
	}

	return toks, nil
}
