package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// NeedBracesOptions configures NeedBraces.
type NeedBracesOptions struct {
	AllowSingleLineStatement bool            `prop:"allowSingleLineStatement"`
	AllowEmptyLoopBody       bool            `prop:"allowEmptyLoopBody"`
	Tokens                   config.TokenSet `prop:"tokens"`
}

var needBracesAllowed = config.Tokens(
	"LITERAL_DO", "LITERAL_ELSE", "LITERAL_FOR", "LITERAL_IF", "LITERAL_WHILE",
	"LITERAL_CASE", "LITERAL_DEFAULT",
)

// NeedBraces wraps the bodies of control statements in blocks.
type NeedBraces struct {
	opts NeedBracesOptions
}

// NewNeedBraces builds a NeedBraces fixer from m.
func NewNeedBraces(m config.Module) (*NeedBraces, error) {
	opts := NeedBracesOptions{
		Tokens: config.Tokens("LITERAL_DO", "LITERAL_ELSE", "LITERAL_FOR", "LITERAL_IF", "LITERAL_WHILE"),
	}
	if err := decode("NeedBraces", m, &opts, &opts.Tokens, needBracesAllowed); err != nil {
		return nil, err
	}
	return &NeedBraces{opts: opts}, nil
}

// Name returns the module name.
func (*NeedBraces) Name() string { return "NeedBraces" }

// Fix implements formatter.Fixer.
func (f *NeedBraces) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	unit := parser.IndentUnit(cu)
	tokens := f.opts.Tokens
	single := f.opts.AllowSingleLineStatement

	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		indent := parser.IndentOf(c)
		switch x := n.(type) {
		case *parser.If:
			var out *parser.If
			if tokens.Has("LITERAL_IF") && !(single && onOneLine(x.Cond, x.Then.Node)) {
				if body, ok := f.brace(x.Then, indent, unit, false); ok {
					out = parser.Clone(x)
					out.Then = body
				}
			}
			if x.Else != nil && tokens.Has("LITERAL_ELSE") && !(single && onOneLine(x.Else.Body.Node)) {
				if _, elseIf := x.Else.Body.Node.(*parser.If); !elseIf {
					if body, ok := f.brace(x.Else.Body, indent, unit, false); ok {
						if out == nil {
							out = parser.Clone(x)
						}
						els := parser.Clone(x.Else)
						els.Body = body
						out.Else = els
					}
				}
			}
			if out != nil {
				return out
			}
		case *parser.WhileLoop:
			if tokens.Has("LITERAL_WHILE") && !(single && onOneLine(x.Cond, x.Body.Node)) {
				if body, ok := f.brace(x.Body, indent, unit, true); ok {
					w := parser.Clone(x)
					w.Body = body
					return w
				}
			}
		case *parser.DoWhile:
			if tokens.Has("LITERAL_DO") && !(single && onOneLine(x.Body.Node, x.Cond) && !x.WhilePre.HasNewline()) {
				if body, ok := f.brace(x.Body, indent, unit, true); ok {
					d := parser.Clone(x)
					d.Body = body
					if d.WhilePre.HasNewline() && !d.WhilePre.HasComment() {
						d.WhilePre = " "
					}
					return d
				}
			}
		case *parser.ForLoop:
			if tokens.Has("LITERAL_FOR") && !(single && onOneLine(x.Control, x.Body.Node)) {
				if body, ok := f.brace(x.Body, indent, unit, true); ok {
					l := parser.Clone(x)
					l.Body = body
					return l
				}
			}
		case *parser.ForEachLoop:
			if tokens.Has("LITERAL_FOR") && !(single && onOneLine(x.Control, x.Body.Node)) {
				if body, ok := f.brace(x.Body, indent, unit, true); ok {
					l := parser.Clone(x)
					l.Body = body
					return l
				}
			}
		case *parser.Case:
			return f.caseBody(x, indent, c.ParentNode())
		}
		return n
	})
}

// brace wraps a body statement in a block. It declines for blocks, for
// empty loop bodies when those are allowed and when a comment sits where
// the semicolon of an empty body was.
func (f *NeedBraces) brace(e parser.Elem, indent, unit string, loop bool) (parser.Elem, bool) {
	switch e.Node.(type) {
	case *parser.Block:
		return e, false
	case *parser.Empty:
		if (loop && f.opts.AllowEmptyLoopBody) || e.After.HasComment() {
			return e, false
		}
	}
	return parser.Elem{Node: blockOf(e, indent, unit)}, true
}

// caseBody wraps the statements of a case label in a block when the label
// kind is selected. A switch whose cases declare locals is left alone,
// since those stay visible to the labels that follow.
func (f *NeedBraces) caseBody(x *parser.Case, indent string, body parser.Node) parser.Node {
	token := "LITERAL_CASE"
	if x.Default {
		token = "LITERAL_DEFAULT"
	}
	if !f.opts.Tokens.Has(token) || len(x.Stmts) == 0 {
		return x
	}
	if _, ok := x.Stmts[0].Node.(*parser.Block); ok && len(x.Stmts) == 1 {
		return x
	}
	if declaresInCase(body) {
		return x
	}
	nodes := make([]parser.Node, len(x.Stmts))
	for i, e := range x.Stmts {
		nodes[i] = e.Node
	}
	line := onOneLine(nodes...)
	if f.opts.AllowSingleLineStatement && line {
		return x
	}
	block := &parser.Block{Meta: parser.Meta{Prefix: " "}, Stmts: x.Stmts, End: parser.Space("\n" + indent)}
	if line {
		block.End = " "
	}
	first := parser.WithPrefix(x.Stmts[0].Node, " ")
	if parser.Prefix(x.Stmts[0].Node).HasNewline() {
		first = x.Stmts[0].Node
	}
	block.Stmts = append([]parser.Elem{{Node: first, After: x.Stmts[0].After}}, x.Stmts[1:]...)
	out := parser.Clone(x)
	out.Stmts = []parser.Elem{{Node: block}}
	return out
}

// declaresInCase reports whether any case of the switch body declares a
// local variable or class directly under its label.
func declaresInCase(body parser.Node) bool {
	b, ok := body.(*parser.Block)
	if !ok {
		return false
	}
	for _, e := range b.Stmts {
		cs, ok := e.Node.(*parser.Case)
		if !ok {
			continue
		}
		for _, st := range cs.Stmts {
			switch st.Node.(type) {
			case *parser.VarDecls, *parser.ClassDecl:
				return true
			}
		}
	}
	return false
}
