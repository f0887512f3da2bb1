package whitespace

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// RightCurlyOptions configures RightCurly.
type RightCurlyOptions struct {
	Option config.RightCurlyPolicy `prop:"option"`
	Tokens config.TokenSet         `prop:"tokens"`
}

var rightCurlyAllowed = config.Tokens(
	"LITERAL_TRY", "LITERAL_CATCH", "LITERAL_FINALLY", "LITERAL_IF", "LITERAL_ELSE",
	"CLASS_DEF", "METHOD_DEF", "CTOR_DEF", "LITERAL_FOR", "LITERAL_WHILE", "LITERAL_DO",
	"STATIC_INIT", "INSTANCE_INIT",
)

// RightCurly places closing braces. A multi-line block always ends with
// its brace on a line of its own. The else, catch, finally and do-while
// keywords that follow a brace go on the same line under the same policy
// and on the next line otherwise. The alone policy also splits single-line
// blocks. Nested statement blocks are handled whatever the tokens.
type RightCurly struct {
	opts RightCurlyOptions
}

// NewRightCurly builds a RightCurly fixer from m.
func NewRightCurly(m config.Module) (*RightCurly, error) {
	opts := RightCurlyOptions{
		Option: config.Same,
		Tokens: config.Tokens("LITERAL_TRY", "LITERAL_CATCH", "LITERAL_FINALLY", "LITERAL_IF", "LITERAL_ELSE"),
	}
	if err := config.DecodeModule("RightCurly", m, &opts, &opts.Tokens, rightCurlyAllowed); err != nil {
		return nil, err
	}
	return &RightCurly{opts: opts}, nil
}

// Name returns the module name.
func (*RightCurly) Name() string { return "RightCurly" }

// Fix implements formatter.Fixer.
func (f *RightCurly) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	r := &curly{opts: f.opts, unit: parser.IndentUnit(cu)}
	return parser.Rewrite(cu, r.visit)
}

type curly struct {
	opts RightCurlyOptions
	unit string
}

func (r *curly) visit(c *parser.Cursor, n parser.Node) parser.Node {
	indent := parser.IndentOf(c)
	has := r.opts.Tokens.Has

	switch x := n.(type) {
	case *parser.If:
		orig := c.Node.(*parser.If)
		y := *x
		changed := false
		if then, ok := x.Then.Node.(*parser.Block); ok && has("LITERAL_IF") {
			if b := r.close(orig.Then.Node.(*parser.Block), then, indent); b != then {
				y.Then.Node = b
				changed = true
			}
			if x.Else != nil {
				if pre := r.keyword(x.Else.Prefix, indent); pre != x.Else.Prefix {
					y.Else = parser.WithPrefix(x.Else, pre)
					changed = true
				}
			}
		}
		if x.Else != nil && has("LITERAL_ELSE") {
			if body, ok := x.Else.Body.Node.(*parser.Block); ok {
				if b := r.close(orig.Else.Body.Node.(*parser.Block), body, indent); b != body {
					els := parser.Clone(y.Else)
					els.Body.Node = b
					y.Else = els
					changed = true
				}
			}
		}
		if changed {
			return &y
		}

	case *parser.Try:
		return r.try(c.Node.(*parser.Try), x, indent)

	case *parser.DoWhile:
		body, ok := x.Body.Node.(*parser.Block)
		if !ok || !has("LITERAL_DO") {
			break
		}
		y := *x
		y.Body.Node = r.close(c.Node.(*parser.DoWhile).Body.Node.(*parser.Block), body, indent)
		y.WhilePre = r.keyword(x.WhilePre, indent)
		if y.Body.Node != x.Body.Node || y.WhilePre != x.WhilePre {
			return &y
		}

	case *parser.WhileLoop:
		if has("LITERAL_WHILE") {
			if b, ok := r.body(c.Node.(*parser.WhileLoop).Body, x.Body, indent); ok {
				y := *x
				y.Body.Node = b
				return &y
			}
		}

	case *parser.ForLoop:
		if has("LITERAL_FOR") {
			if b, ok := r.body(c.Node.(*parser.ForLoop).Body, x.Body, indent); ok {
				y := *x
				y.Body.Node = b
				return &y
			}
		}

	case *parser.ForEachLoop:
		if has("LITERAL_FOR") {
			if b, ok := r.body(c.Node.(*parser.ForEachLoop).Body, x.Body, indent); ok {
				y := *x
				y.Body.Node = b
				return &y
			}
		}

	case *parser.MethodDecl:
		token := "METHOD_DEF"
		if x.ReturnType == nil {
			token = "CTOR_DEF"
		}
		if x.Body != nil && has(token) {
			if b := r.close(c.Node.(*parser.MethodDecl).Body, x.Body, indent); b != x.Body {
				y := *x
				y.Body = b
				return &y
			}
		}

	case *parser.ClassDecl:
		if has("CLASS_DEF") {
			if b := r.close(c.Node.(*parser.ClassDecl).Body, x.Body, indent); b != x.Body {
				y := *x
				y.Body = b
				return &y
			}
		}

	case *parser.Block:
		switch {
		case isInitializer(c):
			token := "INSTANCE_INIT"
			if x.Static {
				token = "STATIC_INIT"
			}
			if has(token) {
				return r.close(c.Node.(*parser.Block), x, indent)
			}
		case isNestedBlock(c):
			return r.close(c.Node.(*parser.Block), x, indent)
		}
	}
	return n
}

func (r *curly) try(orig, x *parser.Try, indent string) parser.Node {
	has := r.opts.Tokens.Has
	y := *x
	y.Catches = append([]*parser.Catch(nil), x.Catches...)
	changed := false

	// next moves the clause following a closing brace.
	next := func(i int) {
		switch {
		case i < len(y.Catches):
			if pre := r.keyword(y.Catches[i].Prefix, indent); pre != y.Catches[i].Prefix {
				y.Catches[i] = parser.WithPrefix(y.Catches[i], pre)
				changed = true
			}
		case y.Finally != nil:
			if pre := r.keyword(y.Finally.Prefix, indent); pre != y.Finally.Prefix {
				y.Finally = parser.WithPrefix(y.Finally, pre)
				changed = true
			}
		}
	}

	if has("LITERAL_TRY") {
		if b := r.close(orig.Body, x.Body, indent); b != x.Body {
			y.Body = b
			changed = true
		}
		next(0)
	}
	if has("LITERAL_CATCH") {
		for i, ct := range y.Catches {
			if b := r.close(orig.Catches[i].Body, ct.Body, indent); b != ct.Body {
				cc := parser.Clone(ct)
				cc.Body = b
				y.Catches[i] = cc
				changed = true
			}
			next(i + 1)
		}
	}
	if y.Finally != nil && has("LITERAL_FINALLY") {
		if b := r.close(orig.Finally.Body, y.Finally.Body, indent); b != y.Finally.Body {
			fin := parser.Clone(y.Finally)
			fin.Body = b
			y.Finally = fin
			changed = true
		}
	}
	if !changed {
		return x
	}
	return &y
}

// body closes a loop body when it is a block.
func (r *curly) body(orig, e parser.Elem, indent string) (*parser.Block, bool) {
	b, ok := e.Node.(*parser.Block)
	if !ok {
		return nil, false
	}
	out := r.close(orig.Node.(*parser.Block), b, indent)
	return out, out != b
}

// close puts the closing brace of b on its own line at indent when b spans
// several lines, or always under the alone policy. orig is b before its
// children were rewritten; it decides whether b was written on one line.
func (r *curly) close(orig, b *parser.Block, indent string) *parser.Block {
	if b.End.HasNewline() || b.End.HasComment() {
		return b
	}
	single := !parser.SpansMultipleLines(orig)
	if single && r.opts.Option != config.Alone {
		return b
	}
	out := parser.Clone(b)
	out.End = parser.Space("\n" + indent)
	if !single {
		return out
	}
	out.Stmts = elems(b.Stmts)
	for i, s := range out.Stmts {
		if parser.Prefix(s.Node).HasComment() {
			return b
		}
		moved := indentBy(s.Node, r.unit)
		out.Stmts[i].Node = parser.WithPrefix(moved, parser.Space("\n"+indent+r.unit))
	}
	return out
}

// keyword places a keyword that follows a closing brace.
func (r *curly) keyword(pre parser.Space, indent string) parser.Space {
	if pre.HasComment() {
		return pre
	}
	if r.opts.Option == config.Same {
		if pre.HasNewline() {
			return " "
		}
		return pre
	}
	if pre.HasNewline() {
		return pre
	}
	return parser.Space("\n" + indent)
}

// isInitializer reports whether the block at c is a static or instance
// initializer of a class body.
func isInitializer(c *parser.Cursor) bool {
	if _, ok := c.ParentNode().(*parser.Block); !ok || c.Role != parser.RoleStmt {
		return false
	}
	switch c.Parent.ParentNode().(type) {
	case *parser.ClassDecl, *parser.NewClass, *parser.EnumValue:
		return true
	}
	return false
}

// isNestedBlock reports whether the block at c is a plain statement block
// inside a method body or a switch case.
func isNestedBlock(c *parser.Cursor) bool {
	switch c.ParentNode().(type) {
	case *parser.Block:
		return c.Role == parser.RoleStmt && !isInitializer(c)
	case *parser.Case:
		return c.Role == parser.RoleStmt
	}
	return false
}
