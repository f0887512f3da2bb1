package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// SimplifyBooleanReturn collapses an if statement that only picks between
// returning true and returning false into a single return.
type SimplifyBooleanReturn struct{}

// NewSimplifyBooleanReturn builds a SimplifyBooleanReturn fixer. It takes no
// options.
func NewSimplifyBooleanReturn(config.Module) (*SimplifyBooleanReturn, error) {
	return &SimplifyBooleanReturn{}, nil
}

// Name returns the module name.
func (*SimplifyBooleanReturn) Name() string { return "SimplifyBooleanReturn" }

// Fix implements formatter.Fixer.
func (f *SimplifyBooleanReturn) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		b, ok := n.(*parser.Block)
		if !ok || isClassBody(c) || len(b.Stmts) == 0 {
			return n
		}
		stmts, changed := simplifyTail(b.Stmts)
		if !changed {
			return n
		}
		out := parser.Clone(b)
		out.Stmts = stmts
		return out
	})
}

// simplifyTail rewrites the last statements of a block.
func simplifyTail(stmts []parser.Elem) ([]parser.Elem, bool) {
	last := len(stmts) - 1
	if x, ok := stmts[last].Node.(*parser.If); ok && x.Else != nil {
		then, ok1 := returnsBool(x.Then.Node)
		els, ok2 := returnsBool(x.Else.Body.Node)
		if ok1 && ok2 && then != els && !commented(x) {
			return append(stmts[:last:last], parser.Elem{Node: collapse(x, then)}), true
		}
		return stmts, false
	}
	if last < 1 {
		return stmts, false
	}
	x, ok := stmts[last-1].Node.(*parser.If)
	if !ok || x.Else != nil {
		return stmts, false
	}
	then, ok1 := returnsBool(x.Then.Node)
	after, ok2 := returnsBool(stmts[last].Node)
	if !ok1 || !ok2 || then == after || commented(x) || parser.Prefix(stmts[last].Node).HasComment() {
		return stmts, false
	}
	return append(stmts[:last-1:last-1], parser.Elem{Node: collapse(x, then)}), true
}

// commented reports whether collapsing x would drop a comment.
func commented(x *parser.If) bool {
	return parser.Prefix(x.Cond.Tree.Node).HasComment() || x.Cond.Tree.After.HasComment() ||
		(x.Else != nil && x.Else.Prefix.HasComment())
}

// collapse builds the return replacing x, whose then branch returns then.
func collapse(x *parser.If, then bool) *parser.Return {
	cond := x.Cond.Tree.Node
	if !then {
		cond = not(cond)
	}
	return &parser.Return{Meta: x.Meta, Expr: parser.WithPrefix(cond, " ")}
}

// returnsBool reports the literal returned by a statement that is nothing
// but "return true;" or "return false;", braced or not.
func returnsBool(n parser.Node) (value, ok bool) {
	if b, isBlock := n.(*parser.Block); isBlock {
		if len(b.Stmts) != 1 || b.End.HasComment() {
			return false, false
		}
		n = b.Stmts[0].Node
	}
	r, isReturn := n.(*parser.Return)
	if !isReturn || r.Prefix.HasComment() {
		return false, false
	}
	lit, isLit := r.Expr.(*parser.Literal)
	if !isLit || lit.Kind != parser.LitBool {
		return false, false
	}
	return lit.Text == "true", true
}
