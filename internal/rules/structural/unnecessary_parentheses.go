package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// UnnecessaryParentheses removes parentheses that operator precedence does
// not require, and the parentheses around a single untyped lambda
// parameter.
type UnnecessaryParentheses struct{}

// NewUnnecessaryParentheses builds an UnnecessaryParentheses fixer. It
// takes no options.
func NewUnnecessaryParentheses(config.Module) (*UnnecessaryParentheses, error) {
	return &UnnecessaryParentheses{}, nil
}

// Name returns the module name.
func (*UnnecessaryParentheses) Name() string { return "UnnecessaryParentheses" }

// Fix implements formatter.Fixer.
func (*UnnecessaryParentheses) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		switch x := n.(type) {
		case *parser.Parens:
			if redundant(c, x) {
				return unwrap(c, x)
			}
		case *parser.LambdaParams:
			return bareLambdaParam(x)
		}
		return n
	})
}

// redundant reports whether the parentheses p at c can go without changing
// how the expression parses.
func redundant(c *parser.Cursor, p *parser.Parens) bool {
	if parser.Prefix(p.Tree.Node).HasComment() || p.Tree.After.HasComment() {
		return false
	}
	inner := p.Tree.Node
	if isPrimary(inner) {
		return true
	}
	orig := c.Node
	switch parent := c.ParentNode().(type) {
	case *parser.NamedVar, *parser.Return, *parser.Throw, *parser.Args, *parser.ArrayInit,
		*parser.ControlParens, *parser.Parens, *parser.ForEachControl:
		return true
	case *parser.ArrayAccess:
		return parent.Index.Node == orig
	case *parser.ForControl:
		return parent.Cond.Node == orig
	case *parser.Assignment:
		return parent.Value == orig
	case *parser.Lambda:
		return parent.Body == orig
	case *parser.Binary:
		// Unary operands stay wrapped: "a - (-b)" must not become "a --b".
		in, isBinary := inner.(*parser.Binary)
		return isBinary && parser.Precedence(in.Op) > parser.Precedence(parent.Op)
	}
	return false
}

// unwrap returns the expression inside p, carrying p's prefix. A keyword
// directly before the parenthesis keeps a separating space.
func unwrap(c *parser.Cursor, p *parser.Parens) parser.Node {
	pre := p.Prefix
	if pre == "" {
		switch c.ParentNode().(type) {
		case *parser.Return, *parser.Throw, *parser.Case:
			pre = " "
		}
	}
	return parser.WithPrefix(p.Tree.Node, pre)
}

// bareLambdaParam drops the parentheses around a single untyped lambda
// parameter.
func bareLambdaParam(lp *parser.LambdaParams) parser.Node {
	if !lp.Parenthesized || len(lp.Elems) != 1 {
		return lp
	}
	e := lp.Elems[0]
	v, ok := e.Node.(*parser.VarDecls)
	if !ok || v.Type != nil || len(v.Leading) > 0 || e.After.HasComment() || v.Prefix.HasComment() {
		return lp
	}
	out := parser.Clone(lp)
	out.Parenthesized = false
	out.Elems = []parser.Elem{{Node: parser.WithPrefix(v, "")}}
	return out
}
