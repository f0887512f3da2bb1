package whitespace

import (
	"strings"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// NoWhitespaceAfterOptions configures NoWhitespaceAfter.
type NoWhitespaceAfterOptions struct {
	AllowLineBreaks bool            `prop:"allowLineBreaks"`
	Tokens          config.TokenSet `prop:"tokens"`
}

var noWhitespaceAfterAllowed = config.Tokens(
	"ARRAY_INIT", "AT", "INC", "DEC", "UNARY_MINUS", "UNARY_PLUS", "BNOT", "LNOT",
	"DOT", "ARRAY_DECLARATOR", "INDEX_OP", "TYPECAST", "LITERAL_SYNCHRONIZED", "METHOD_REF",
)

var prefixOpTokens = map[string]string{
	"++": "INC",
	"--": "DEC",
	"-":  "UNARY_MINUS",
	"+":  "UNARY_PLUS",
	"~":  "BNOT",
	"!":  "LNOT",
}

// NoWhitespaceAfter removes the whitespace that follows selected tokens.
type NoWhitespaceAfter struct {
	opts NoWhitespaceAfterOptions
}

// NewNoWhitespaceAfter builds a NoWhitespaceAfter fixer from m.
func NewNoWhitespaceAfter(m config.Module) (*NoWhitespaceAfter, error) {
	opts := NoWhitespaceAfterOptions{
		AllowLineBreaks: true,
		Tokens: config.Tokens(
			"ARRAY_INIT", "AT", "INC", "DEC", "UNARY_MINUS", "UNARY_PLUS", "BNOT", "LNOT",
			"DOT", "ARRAY_DECLARATOR", "INDEX_OP",
		),
	}
	if err := config.DecodeModule("NoWhitespaceAfter", m, &opts, &opts.Tokens, noWhitespaceAfterAllowed); err != nil {
		return nil, err
	}
	return &NoWhitespaceAfter{opts: opts}, nil
}

// Name returns the module name.
func (*NoWhitespaceAfter) Name() string { return "NoWhitespaceAfter" }

// Fix implements formatter.Fixer.
func (f *NoWhitespaceAfter) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	keep := f.opts.AllowLineBreaks
	has := f.opts.Tokens.Has

	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		var e edit
		var out parser.Node
		switch x := n.(type) {
		case *parser.ArrayInit:
			// Array values of annotation arguments are left as written.
			if !has("ARRAY_INIT") || inAnnotation(c) {
				return n
			}
			y := *x
			y.Elems = elems(x.Elems)
			prefix(&e, &y.Elems[0].Node, "", keep)
			last := len(y.Elems) - 1
			if _, trailing := y.Elems[last].Node.(*parser.Empty); !trailing || last == 0 {
				e.space(&y.Elems[last].After, "", keep)
			}
			out = &y
		case *parser.Annotation:
			if !has("AT") {
				return n
			}
			y := *x
			prefix(&e, &y.Name, "", keep)
			out = &y
		case *parser.Unary:
			token, ok := prefixOpTokens[x.Op]
			if x.Postfix || !ok || !has(token) || fuses(x) {
				return n
			}
			y := *x
			prefix(&e, &y.Expr, "", keep)
			out = &y
		case *parser.FieldAccess:
			if !has("DOT") {
				return n
			}
			y := *x
			prefix(&e, &y.Name, "", keep)
			out = &y
		case *parser.MethodInvocation:
			if x.Target == nil || !has("DOT") {
				return n
			}
			y := *x
			if y.TypeArgs != nil {
				prefix(&e, &y.TypeArgs, "", keep)
			} else {
				prefix(&e, &y.Name, "", keep)
			}
			out = &y
		case *parser.TypeCast:
			if !has("TYPECAST") {
				return n
			}
			y := *x
			prefix(&e, &y.Expr, "", keep)
			out = &y
		case *parser.ArrayType:
			if !has("ARRAY_DECLARATOR") {
				return n
			}
			y := *x
			e.space(&y.Dim.Pre, "", keep)
			out = &y
		case *parser.NamedVar:
			if len(x.Dims) == 0 || !has("ARRAY_DECLARATOR") {
				return n
			}
			y := *x
			y.Dims = append([]parser.Dim(nil), x.Dims...)
			for i := range y.Dims {
				e.space(&y.Dims[i].Pre, "", keep)
			}
			out = &y
		case *parser.NewArray:
			if len(x.Dims) == 0 || !has("ARRAY_DECLARATOR") {
				return n
			}
			y := *x
			y.Dims = append([]parser.ArrayDim(nil), x.Dims...)
			for i := range y.Dims {
				e.space(&y.Dims[i].Pre, "", keep)
			}
			out = &y
		case *parser.ArrayAccess:
			if !has("INDEX_OP") {
				return n
			}
			y := *x
			e.space(&y.IndexPre, "", keep)
			out = &y
		case *parser.Synchronized:
			if !has("LITERAL_SYNCHRONIZED") {
				return n
			}
			y := *x
			prefix(&e, &y.Lock, "", keep)
			out = &y
		case *parser.MemberRef:
			if !has("METHOD_REF") {
				return n
			}
			y := *x
			prefix(&e, &y.Name, "", keep)
			out = &y
		}
		if !e.changed {
			return n
		}
		return out
	})
}

// fuses reports whether removing the space after a sign would merge it
// with the operand into a different token, as in "- -x" or "+ +x".
func fuses(u *parser.Unary) bool {
	if u.Op != "-" && u.Op != "+" {
		return false
	}
	switch x := u.Expr.(type) {
	case *parser.Unary:
		return !x.Postfix && strings.HasPrefix(x.Op, u.Op)
	case *parser.Literal:
		return strings.HasPrefix(x.Text, u.Op)
	}
	return false
}

func inAnnotation(c *parser.Cursor) bool {
	return c.Nearest(func(n parser.Node) bool {
		_, ok := n.(*parser.Annotation)
		return ok
	}) != nil
}
