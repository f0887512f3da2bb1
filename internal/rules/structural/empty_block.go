package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// EmptyBlockOptions configures EmptyBlock.
type EmptyBlockOptions struct {
	Option config.BlockPolicy `prop:"option"`
	Tokens config.TokenSet    `prop:"tokens"`
}

var (
	emptyBlockDefaults = []string{
		"LITERAL_WHILE", "LITERAL_TRY", "LITERAL_FINALLY", "LITERAL_DO",
		"LITERAL_IF", "LITERAL_ELSE", "LITERAL_FOR", "INSTANCE_INIT",
		"STATIC_INIT", "LITERAL_SWITCH", "LITERAL_SYNCHRONIZED",
	}
	emptyBlockAllowed = config.Tokens(append(emptyBlockDefaults, "LITERAL_CATCH")...)
)

// EmptyBlock removes empty blocks or gives them a body that keeps the
// program's behavior.
type EmptyBlock struct {
	opts EmptyBlockOptions
}

// NewEmptyBlock builds an EmptyBlock fixer from m.
func NewEmptyBlock(m config.Module) (*EmptyBlock, error) {
	opts := EmptyBlockOptions{Option: config.Statement, Tokens: config.Tokens(emptyBlockDefaults...)}
	if err := decode("EmptyBlock", m, &opts, &opts.Tokens, emptyBlockAllowed); err != nil {
		return nil, err
	}
	return &EmptyBlock{opts: opts}, nil
}

// Name returns the module name.
func (*EmptyBlock) Name() string { return "EmptyBlock" }

func (f *EmptyBlock) empty(b *parser.Block) bool {
	return isEmptyBlock(b, f.opts.Option == config.Text)
}

// removable reports whether b can be dropped without losing a comment.
func (f *EmptyBlock) removable(b *parser.Block) bool {
	return f.empty(b) && !b.End.HasComment()
}

func (f *EmptyBlock) emptyBody(e parser.Elem) (*parser.Block, bool) {
	b, ok := e.Node.(*parser.Block)
	return b, ok && f.empty(b)
}

// Fix implements formatter.Fixer.
func (f *EmptyBlock) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	unit := parser.IndentUnit(cu)
	tokens := f.opts.Tokens
	uncheckedIO := false

	out := parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		switch x := n.(type) {
		case *parser.Block:
			if isClassBody(c) {
				return f.members(x)
			}
			if stmts, changed := f.statements(c, x.Stmts, unit); changed {
				b := parser.Clone(x)
				b.Stmts = stmts
				return b
			}
		case *parser.Case:
			if stmts, changed := f.statements(c, x.Stmts, unit); changed {
				cs := parser.Clone(x)
				cs.Stmts = stmts
				return cs
			}
		case *parser.WhileLoop:
			if b, ok := f.emptyBody(x.Body); ok && tokens.Has("LITERAL_WHILE") {
				w := parser.Clone(x)
				w.Body = parser.Elem{Node: fill(b, statement("continue;"), parser.IndentOf(c), unit), After: x.Body.After}
				return w
			}
		case *parser.DoWhile:
			if b, ok := f.emptyBody(x.Body); ok && tokens.Has("LITERAL_DO") {
				d := parser.Clone(x)
				d.Body = parser.Elem{Node: fill(b, statement("continue;"), parser.IndentOf(c), unit), After: x.Body.After}
				return d
			}
		case *parser.ForLoop:
			if b, ok := f.emptyBody(x.Body); ok && tokens.Has("LITERAL_FOR") {
				l := parser.Clone(x)
				l.Body = parser.Elem{Node: fill(b, statement("continue;"), parser.IndentOf(c), unit), After: x.Body.After}
				return l
			}
		case *parser.ForEachLoop:
			if b, ok := f.emptyBody(x.Body); ok && tokens.Has("LITERAL_FOR") {
				l := parser.Clone(x)
				l.Body = parser.Elem{Node: fill(b, statement("continue;"), parser.IndentOf(c), unit), After: x.Body.After}
				return l
			}
		case *parser.Try:
			t, io := f.try(c, x, unit)
			uncheckedIO = uncheckedIO || io
			return t
		case *parser.If:
			return f.ifStatement(c, x, unit)
		}
		return n
	})
	if uncheckedIO {
		out = addImport(out, "java.io.UncheckedIOException")
	}
	return out
}

// members drops empty initializer blocks from a class body.
func (f *EmptyBlock) members(body *parser.Block) parser.Node {
	var kept []parser.Elem
	changed := false
	for _, e := range body.Stmts {
		if b, ok := e.Node.(*parser.Block); ok && f.removable(b) && !parser.Prefix(b).HasComment() {
			if (b.Static && f.opts.Tokens.Has("STATIC_INIT")) || (!b.Static && f.opts.Tokens.Has("INSTANCE_INIT")) {
				changed = true
				continue
			}
		}
		kept = append(kept, e)
	}
	if !changed {
		return body
	}
	out := parser.Clone(body)
	out.Stmts = kept
	return out
}

// statements removes empty constructs from a statement list, keeping the
// side effects of their guards.
func (f *EmptyBlock) statements(c *parser.Cursor, stmts []parser.Elem, unit string) ([]parser.Elem, bool) {
	var out []parser.Elem
	changed := false
	for _, e := range stmts {
		repl, ok := f.remove(c, e, unit)
		if !ok {
			out = append(out, e)
			continue
		}
		changed = true
		out = append(out, repl...)
	}
	return out, changed
}

func (f *EmptyBlock) remove(c *parser.Cursor, e parser.Elem, unit string) ([]parser.Elem, bool) {
	pre := parser.Prefix(e.Node)
	if pre.HasComment() {
		return nil, false
	}
	indent := stmtIndent(c, e.Node, unit)
	tokens := f.opts.Tokens

	var repl []parser.Elem
	ok := false
	switch x := e.Node.(type) {
	case *parser.If:
		if b, isBlock := x.Then.Node.(*parser.Block); isBlock && x.Else == nil && tokens.Has("LITERAL_IF") && f.removable(b) {
			repl, ok = hoist(x.Cond.Tree.Node, indent)
		}
	case *parser.Switch:
		if tokens.Has("LITERAL_SWITCH") && f.removable(x.Body) {
			repl, ok = hoist(x.Selector.Tree.Node, indent)
		}
	case *parser.Synchronized:
		if tokens.Has("LITERAL_SYNCHRONIZED") && f.removable(x.Body) {
			repl, ok = hoist(x.Lock.Tree.Node, indent)
		}
	case *parser.Try:
		switch {
		case tokens.Has("LITERAL_TRY") && f.removable(x.Body) && pureResources(x.Resources):
			ok = true
			if x.Finally != nil {
				repl = dedent(x.Finally.Body.Stmts, unit)
			}
		case tokens.Has("LITERAL_FINALLY") && x.Finally != nil && f.removable(x.Finally.Body) &&
			len(x.Catches) == 0 && x.Resources == nil && !x.Body.End.HasComment():
			ok = true
			repl = dedent(x.Body.Stmts, unit)
		}
	}
	if !ok {
		return nil, false
	}
	if len(repl) > 0 {
		repl[0].Node = parser.WithPrefix(repl[0].Node, pre)
	}
	return repl, true
}

func dedent(stmts []parser.Elem, unit string) []parser.Elem {
	out := make([]parser.Elem, len(stmts))
	for i, e := range stmts {
		out[i] = parser.Elem{Node: unshift(e.Node, unit), After: e.After}
	}
	return out
}

// pureResources reports whether opening the resources of a try has no
// effect worth keeping.
func pureResources(r *parser.Resources) bool {
	if r == nil {
		return true
	}
	for _, e := range r.Elems {
		switch x := e.Node.(type) {
		case *parser.VarDecls:
			for _, v := range x.Vars {
				effects, ok := sideEffects(v.Node.(*parser.NamedVar).Init)
				if !ok || len(effects) > 0 {
					return false
				}
			}
		default:
			effects, ok := sideEffects(x)
			if !ok || len(effects) > 0 {
				return false
			}
		}
	}
	return true
}

// try fills empty catch blocks with a rethrow and drops an empty finally.
// It reports whether an UncheckedIOException was introduced.
func (f *EmptyBlock) try(c *parser.Cursor, x *parser.Try, unit string) (parser.Node, bool) {
	var out *parser.Try
	io := false
	if f.opts.Tokens.Has("LITERAL_CATCH") {
		for i, ct := range x.Catches {
			if !f.empty(ct.Body) {
				continue
			}
			param := ct.Param.Tree.Node.(*parser.VarDecls)
			name := param.Vars[0].Node.(*parser.NamedVar).Name.Name
			wrapper := "RuntimeException"
			if t := scope.TypeName(param.Type); t == "IOException" {
				wrapper = "UncheckedIOException"
				io = true
			}
			if out == nil {
				out = parser.Clone(x)
				out.Catches = append([]*parser.Catch(nil), x.Catches...)
			}
			filled := parser.Clone(ct)
			filled.Body = fill(ct.Body, statement("throw new %s(%s);", wrapper, name), parser.IndentOf(c), unit)
			out.Catches[i] = filled
		}
	}
	if f.opts.Tokens.Has("LITERAL_FINALLY") && x.Finally != nil && f.removable(x.Finally.Body) &&
		(len(x.Catches) > 0 || x.Resources != nil) {
		if out == nil {
			out = parser.Clone(x)
		}
		out.Finally = nil
	}
	if out == nil {
		return x, false
	}
	return out, io
}

// ifStatement drops an empty else and inverts an if whose only content is
// its else branch.
func (f *EmptyBlock) ifStatement(c *parser.Cursor, x *parser.If, unit string) parser.Node {
	if x.Else == nil {
		return x
	}
	then, thenIsBlock := x.Then.Node.(*parser.Block)
	if eb, ok := x.Else.Body.Node.(*parser.Block); ok && f.removable(eb) && f.opts.Tokens.Has("LITERAL_ELSE") {
		out := parser.Clone(x)
		out.Else = nil
		return out
	}
	if !thenIsBlock || !f.removable(then) || !f.opts.Tokens.Has("LITERAL_IF") {
		return x
	}

	indent := parser.IndentOf(c)
	var body *parser.Block
	switch e := x.Else.Body.Node.(type) {
	case *parser.Block:
		body = &parser.Block{Stmts: e.Stmts, End: e.End}
	case *parser.If:
		nested := parser.WithPrefix(shift(e, unit), parser.Space("\n"+indent+unit))
		body = &parser.Block{Stmts: []parser.Elem{{Node: nested}}, End: parser.Space("\n" + indent)}
	default:
		body = blockOf(x.Else.Body, indent, unit)
	}
	body.Prefix = then.Prefix

	out := parser.Clone(x)
	cond := parser.Clone(x.Cond)
	cond.Tree = parser.Elem{Node: negate(x.Cond.Tree.Node), After: x.Cond.Tree.After}
	out.Cond = cond
	out.Then = parser.Elem{Node: body}
	out.Else = nil
	return out
}
