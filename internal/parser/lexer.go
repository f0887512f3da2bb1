package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError reports source text the parser does not accept.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokChar
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pre  Space
	line int
	col  int
}

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true,
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true, "int": true,
	"long": true, "float": true, "double": true, "void": true,
}

// operators ordered longest first. ">" is never combined with a following
// ">" so that nested type arguments close one at a time; the expression
// parser joins shift operators.
var operators = []string{
	"<<=", "...", "->", "::", "++", "--", "&&", "||", "==", "!=", "<=", ">=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<",
	"(", ")", "{", "}", "[", "]", ";", ",", ".", "@", "=", ">", "<", "!", "~",
	"?", ":", "+", "-", "*", "/", "&", "|", "^", "%",
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func tokenize(src string) ([]token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	var toks []token
	for {
		pre, err := lx.trivia()
		if err != nil {
			return nil, err
		}
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		tok.pre = pre
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Line: lx.line, Col: lx.col, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) advance(n int) string {
	s := lx.src[lx.pos : lx.pos+n]
	for _, r := range s {
		if r == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
	}
	lx.pos += n
	return s
}

func (lx *lexer) rest() string { return lx.src[lx.pos:] }

func (lx *lexer) trivia() (Space, error) {
	start := lx.pos
	for lx.pos < len(lx.src) {
		r := lx.rest()
		switch {
		case r[0] == ' ' || r[0] == '\t' || r[0] == '\n' || r[0] == '\r' || r[0] == '\f':
			lx.advance(1)
		case strings.HasPrefix(r, "//"):
			end := strings.IndexByte(r, '\n')
			if end < 0 {
				end = len(r)
			}
			lx.advance(end)
		case strings.HasPrefix(r, "/*"):
			end := strings.Index(r[2:], "*/")
			if end < 0 {
				return "", lx.errorf("unterminated comment")
			}
			lx.advance(end + 4)
		default:
			return Space(lx.src[start:lx.pos]), nil
		}
	}
	return Space(lx.src[start:lx.pos]), nil
}

func (lx *lexer) next() (token, error) {
	tok := token{line: lx.line, col: lx.col}
	r := lx.rest()
	if r == "" {
		tok.kind = tokEOF
		return tok, nil
	}

	c := r[0]
	switch {
	case isIdentStart(r):
		n := identLen(r)
		tok.kind = tokIdent
		tok.text = lx.advance(n)
		return tok, nil
	case c >= '0' && c <= '9', c == '.' && len(r) > 1 && r[1] >= '0' && r[1] <= '9':
		n, float := numberLen(r)
		tok.kind = tokInt
		if float {
			tok.kind = tokFloat
		}
		tok.text = lx.advance(n)
		return tok, nil
	case strings.HasPrefix(r, `"""`):
		end := strings.Index(r[3:], `"""`)
		for end >= 0 && escaped(r[3:], end) {
			next := strings.Index(r[3+end+1:], `"""`)
			if next < 0 {
				end = -1
				break
			}
			end += next + 1
		}
		if end < 0 {
			return tok, lx.errorf("unterminated text block")
		}
		tok.kind = tokString
		tok.text = lx.advance(end + 6)
		return tok, nil
	case c == '"' || c == '\'':
		n := quotedLen(r)
		if n < 0 {
			return tok, lx.errorf("unterminated literal")
		}
		tok.kind = tokString
		if c == '\'' {
			tok.kind = tokChar
		}
		tok.text = lx.advance(n)
		return tok, nil
	}

	for _, op := range operators {
		if strings.HasPrefix(r, op) {
			tok.kind = tokOp
			tok.text = lx.advance(len(op))
			return tok, nil
		}
	}
	return tok, lx.errorf("unexpected character %q", c)
}

func isIdentStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func identLen(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		n += size
	}
	return n
}

func numberLen(s string) (int, bool) {
	n := 0
	float := false
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") || strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B") {
		n = 2
		for n < len(s) && (isHex(s[n]) || s[n] == '_') {
			n++
		}
		if n < len(s) && (s[n] == 'l' || s[n] == 'L') {
			n++
		}
		return n, false
	}
	for n < len(s) {
		c := s[n]
		switch {
		case c >= '0' && c <= '9', c == '_':
			n++
		case c == '.' && !float && n+1 < len(s) && s[n+1] >= '0' && s[n+1] <= '9':
			float = true
			n++
		case c == '.' && !float && (n+1 >= len(s) || !isIdentStart(s[n+1:])):
			float = true
			n++
		case (c == 'e' || c == 'E') && n > 0:
			float = true
			n++
			if n < len(s) && (s[n] == '+' || s[n] == '-') {
				n++
			}
		default:
			if strings.ContainsRune("lLfFdD", rune(c)) {
				if c != 'l' && c != 'L' {
					float = true
				}
				n++
			}
			return n, float
		}
	}
	return n, float
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func quotedLen(s string) int {
	q := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i + 1
		case '\n':
			return -1
		}
	}
	return -1
}

func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
