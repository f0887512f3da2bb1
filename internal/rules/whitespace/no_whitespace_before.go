package whitespace

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// NoWhitespaceBeforeOptions configures NoWhitespaceBefore.
type NoWhitespaceBeforeOptions struct {
	AllowLineBreaks bool            `prop:"allowLineBreaks"`
	Tokens          config.TokenSet `prop:"tokens"`
}

var noWhitespaceBeforeAllowed = config.Tokens(
	"COMMA", "SEMI", "POST_INC", "POST_DEC", "ELLIPSIS",
	"DOT", "GENERIC_START", "GENERIC_END", "METHOD_REF",
)

// NoWhitespaceBefore removes the whitespace that precedes selected tokens.
// The space before the parenthesis closing a list is never touched.
type NoWhitespaceBefore struct {
	opts NoWhitespaceBeforeOptions
}

// NewNoWhitespaceBefore builds a NoWhitespaceBefore fixer from m.
func NewNoWhitespaceBefore(m config.Module) (*NoWhitespaceBefore, error) {
	opts := NoWhitespaceBeforeOptions{
		Tokens: config.Tokens("COMMA", "SEMI", "POST_INC", "POST_DEC", "ELLIPSIS"),
	}
	if err := config.DecodeModule("NoWhitespaceBefore", m, &opts, &opts.Tokens, noWhitespaceBeforeAllowed); err != nil {
		return nil, err
	}
	return &NoWhitespaceBefore{opts: opts}, nil
}

// Name returns the module name.
func (*NoWhitespaceBefore) Name() string { return "NoWhitespaceBefore" }

// Fix implements formatter.Fixer.
func (f *NoWhitespaceBefore) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	keep := f.opts.AllowLineBreaks
	has := f.opts.Tokens.Has

	return parser.Rewrite(cu, func(_ *parser.Cursor, n parser.Node) parser.Node {
		var e edit
		var out parser.Node
		switch x := n.(type) {
		case *parser.PackageDecl:
			y := *x
			if has("SEMI") {
				e.space(&y.Semi, "", keep)
			}
			out = &y
		case *parser.Import:
			y := *x
			if has("SEMI") {
				e.space(&y.Semi, "", keep)
			}
			out = &y
		case *parser.Block:
			y := *x
			y.Stmts = f.stmts(&e, x.Stmts)
			out = &y
		case *parser.Case:
			y := *x
			y.Stmts = f.stmts(&e, x.Stmts)
			y.Labels = f.commas(&e, x.Labels)
			out = &y
		case *parser.If:
			y := *x
			f.stmt(&e, &y.Then)
			out = &y
		case *parser.Else:
			y := *x
			f.stmt(&e, &y.Body)
			out = &y
		case *parser.WhileLoop:
			y := *x
			f.stmt(&e, &y.Body)
			out = &y
		case *parser.DoWhile:
			y := *x
			f.stmt(&e, &y.Body)
			out = &y
		case *parser.ForLoop:
			y := *x
			f.stmt(&e, &y.Body)
			out = &y
		case *parser.ForEachLoop:
			y := *x
			f.stmt(&e, &y.Body)
			out = &y
		case *parser.ForControl:
			y := *x
			y.Init = f.commas(&e, x.Init)
			y.Update = f.commas(&e, x.Update)
			if has("SEMI") {
				if last := len(y.Init) - 1; !isEmpty(y.Init[last].Node) {
					y.Init = elems(y.Init)
					e.space(&y.Init[last].After, "", keep)
				}
				if !isEmpty(y.Cond.Node) {
					e.space(&y.Cond.After, "", keep)
				}
			}
			out = &y
		case *parser.Resources:
			y := *x
			if has("SEMI") {
				y.Elems = elems(x.Elems)
				for i := 0; i < len(y.Elems)-1; i++ {
					e.space(&y.Elems[i].After, "", keep)
				}
			}
			out = &y
		case *parser.Args:
			y := *x
			y.Elems = f.commas(&e, x.Elems)
			out = &y
		case *parser.TypeArgs:
			y := *x
			y.Elems = f.generic(&e, f.commas(&e, x.Elems))
			out = &y
		case *parser.TypeParams:
			y := *x
			y.Elems = f.generic(&e, f.commas(&e, x.Elems))
			out = &y
		case *parser.ArrayInit:
			y := *x
			y.Elems = f.commas(&e, x.Elems)
			out = &y
		case *parser.EnumValueSet:
			y := *x
			y.Values = f.commas(&e, x.Values)
			out = &y
		case *parser.LambdaParams:
			y := *x
			y.Elems = f.commas(&e, x.Elems)
			out = &y
		case *parser.VarDecls:
			y := *x
			y.Vars = f.commas(&e, x.Vars)
			if x.Varargs && has("ELLIPSIS") {
				e.space(&y.VarargsPre, "", keep)
			}
			out = &y
		case *parser.MethodDecl:
			y := *x
			y.Throws = f.clause(&e, x.Throws)
			out = &y
		case *parser.ClassDecl:
			y := *x
			y.Extends = f.clause(&e, x.Extends)
			y.Implements = f.clause(&e, x.Implements)
			if y.TypeParams != nil && has("GENERIC_START") {
				prefix(&e, &y.TypeParams, "", keep)
			}
			out = &y
		case *parser.Unary:
			if !x.Postfix || !(x.Op == "++" && has("POST_INC") || x.Op == "--" && has("POST_DEC")) {
				return n
			}
			y := *x
			e.space(&y.OpPre, "", keep)
			out = &y
		case *parser.FieldAccess:
			if !has("DOT") {
				return n
			}
			y := *x
			e.space(&y.DotPre, "", keep)
			out = &y
		case *parser.MethodInvocation:
			if x.Target == nil || !has("DOT") {
				return n
			}
			y := *x
			e.space(&y.DotPre, "", keep)
			out = &y
		case *parser.ParamType:
			if !has("GENERIC_START") {
				return n
			}
			y := *x
			prefix(&e, &y.Args, "", keep)
			out = &y
		case *parser.MemberRef:
			if !has("METHOD_REF") {
				return n
			}
			y := *x
			e.space(&y.ColonPre, "", keep)
			out = &y
		}
		if !e.changed {
			return n
		}
		return out
	})
}

// stmts strips the space before the semicolons ending the statements of a
// list.
func (f *NoWhitespaceBefore) stmts(e *edit, es []parser.Elem) []parser.Elem {
	if !f.opts.Tokens.Has("SEMI") {
		return es
	}
	out := elems(es)
	for i := range out {
		f.stmt(e, &out[i])
	}
	return out
}

func (f *NoWhitespaceBefore) stmt(e *edit, s *parser.Elem) {
	if f.opts.Tokens.Has("SEMI") && parser.NeedsSemicolon(s.Node) {
		e.space(&s.After, "", f.opts.AllowLineBreaks)
	}
}

// commas strips the space before every comma of a list. The last element
// is followed by the closing delimiter, not a comma.
func (f *NoWhitespaceBefore) commas(e *edit, es []parser.Elem) []parser.Elem {
	if !f.opts.Tokens.Has("COMMA") || len(es) < 2 {
		return es
	}
	out := elems(es)
	for i := 0; i < len(out)-1; i++ {
		e.space(&out[i].After, "", f.opts.AllowLineBreaks)
	}
	return out
}

// generic strips the space before the ">" closing a type argument or
// parameter list.
func (f *NoWhitespaceBefore) generic(e *edit, es []parser.Elem) []parser.Elem {
	if !f.opts.Tokens.Has("GENERIC_END") {
		return es
	}
	out := elems(es)
	e.space(&out[len(out)-1].After, "", f.opts.AllowLineBreaks)
	return out
}

func (f *NoWhitespaceBefore) clause(e *edit, c *parser.Clause) *parser.Clause {
	if c == nil {
		return nil
	}
	types := f.commas(e, c.Types)
	if len(types) == 0 || &types[0] == &c.Types[0] {
		return c
	}
	out := *c
	out.Types = types
	return &out
}

func isEmpty(n parser.Node) bool {
	_, ok := n.(*parser.Empty)
	return ok
}
