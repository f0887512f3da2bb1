// Package structural implements fixers that change the shape of the syntax
// tree: control flow, declarations and expressions.
package structural

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/stylefix/internal/parser"
)

// statement parses a statement template. Templates are constant, so a parse
// failure is a programming error.
func statement(format string, args ...any) parser.Node {
	src := fmt.Sprintf(format, args...)
	n, err := parser.ParseStatement(src)
	if err != nil {
		panic(fmt.Sprintf("structural: bad statement template %q: %v", src, err))
	}
	return n
}

// stmt wraps n as a statement element starting on a new line at indent.
func stmt(n parser.Node, indent string) parser.Elem {
	return parser.Elem{Node: parser.WithPrefix(n, parser.Space("\n"+indent))}
}

// shift indents every line of n after its first by add.
func shift(n parser.Node, add string) parser.Node {
	if add == "" {
		return n
	}
	return parser.MapSpaces(n, func(s parser.Space) parser.Space {
		return shiftSpace(s, add)
	})
}

func shiftSpace(s parser.Space, add string) parser.Space {
	if !s.HasNewline() {
		return s
	}
	lines := strings.Split(string(s), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" || i == len(lines)-1 {
			lines[i] = add + lines[i]
		}
	}
	return parser.Space(strings.Join(lines, "\n"))
}

// unshift removes up to one level of indentation from every line of n.
func unshift(n parser.Node, remove string) parser.Node {
	if remove == "" {
		return n
	}
	return parser.MapSpaces(n, func(s parser.Space) parser.Space {
		if !s.HasNewline() {
			return s
		}
		lines := strings.Split(string(s), "\n")
		for i := 1; i < len(lines); i++ {
			lines[i] = strings.TrimPrefix(lines[i], remove)
		}
		return parser.Space(strings.Join(lines, "\n"))
	})
}

// isEmptyBlock reports whether b holds no statements. With text set, a
// comment inside the braces makes the block non-empty.
func isEmptyBlock(b *parser.Block, text bool) bool {
	if b == nil || len(b.Stmts) > 0 {
		return false
	}
	return !text || !b.End.HasComment()
}

// fill returns b holding the single statement n. A comment left in the
// empty block stays in front of the statement. A block written on one line
// stays on one line.
func fill(b *parser.Block, n parser.Node, indent, unit string) *parser.Block {
	out := parser.Clone(b)
	if !b.End.HasNewline() {
		pre := parser.Space(" ")
		if b.End.HasComment() {
			pre = parser.Space(strings.TrimRight(string(b.End), " \t") + " ")
		}
		out.Stmts = []parser.Elem{{Node: parser.WithPrefix(n, pre)}}
		out.End = " "
		return out
	}
	pre := parser.Space("\n" + indent + unit)
	if i := strings.LastIndexByte(string(b.End), '\n'); b.End.HasComment() {
		pre = b.End[:i] + pre
	}
	out.Stmts = []parser.Elem{{Node: parser.WithPrefix(n, pre)}}
	out.End = parser.Space("\n" + indent)
	return out
}

// blockOf wraps a statement element in a block unless it already is one.
// A statement already on its own line keeps its line; one sharing the
// line of its parent moves to a new line one unit deeper.
func blockOf(e parser.Elem, indent, unit string) *parser.Block {
	if b, ok := e.Node.(*parser.Block); ok {
		return b
	}
	out := &parser.Block{Meta: parser.Meta{Prefix: " "}, End: parser.Space("\n" + indent)}
	if _, empty := e.Node.(*parser.Empty); empty {
		return out
	}
	body := e.Node
	if !parser.Prefix(body).HasNewline() {
		body = parser.WithPrefix(shift(body, unit), parser.Space("\n"+indent+unit))
	}
	out.Stmts = []parser.Elem{{Node: body, After: e.After}}
	return out
}

// onOneLine reports whether none of ns starts on or contains a line
// break.
func onOneLine(ns ...parser.Node) bool {
	for _, n := range ns {
		if parser.Prefix(n).HasNewline() || parser.SpansMultipleLines(n) {
			return false
		}
	}
	return true
}

var negated = map[string]string{
	"==": "!=", "!=": "==",
	"<": ">=", ">=": "<",
	">": "<=", "<=": ">",
}

// negate returns the logical negation of cond, flipping comparison
// operators where possible.
func negate(cond parser.Node) parser.Node {
	switch x := cond.(type) {
	case *parser.Binary:
		if op, ok := negated[x.Op]; ok {
			out := parser.Clone(x)
			out.Op = op
			return out
		}
	case *parser.Unary:
		if x.Op == "!" && !x.Postfix {
			return parser.WithPrefix(x.Expr, x.Prefix)
		}
	case *parser.Parens:
		if u, ok := x.Tree.Node.(*parser.Unary); ok && u.Op == "!" {
			return parser.WithPrefix(negate(u), x.Prefix)
		}
	case *parser.Literal:
		if x.Kind == parser.LitBool {
			text := "true"
			if x.Text == "true" {
				text = "false"
			}
			return &parser.Literal{Meta: x.Meta, Kind: parser.LitBool, Text: text}
		}
	}
	return not(cond)
}

// not prefixes cond with a logical not, adding parentheses unless cond is
// primary. A negated cond loses its not instead.
func not(cond parser.Node) parser.Node {
	if u, ok := cond.(*parser.Unary); ok && u.Op == "!" && !u.Postfix {
		return parser.WithPrefix(u.Expr, u.Prefix)
	}
	var operand parser.Node
	if isPrimary(cond) {
		operand = parser.WithPrefix(cond, "")
	} else {
		operand = &parser.Parens{Tree: parser.Elem{Node: parser.WithPrefix(cond, "")}}
	}
	return &parser.Unary{Meta: parser.Meta{Prefix: parser.Prefix(cond)}, Op: "!", Expr: operand}
}

// isPrimary reports whether n binds at least as tightly as any operator.
func isPrimary(n parser.Node) bool {
	switch n.(type) {
	case *parser.Ident, *parser.Literal, *parser.FieldAccess, *parser.MethodInvocation,
		*parser.ArrayAccess, *parser.NewClass, *parser.NewArray, *parser.Parens,
		*parser.MemberRef:
		return true
	}
	return false
}

// sideEffects lists the sub-expressions of n that must still be evaluated
// if n itself is dropped, in evaluation order. Method invocation,
// assignment, increment and decrement and object construction count as
// side effects and are returned whole. It reports false when n has a side
// effect that cannot be hoisted as a statement: array construction with
// a side effect in its sizes or initializer, or one that only runs
// conditionally.
func sideEffects(n parser.Node) ([]parser.Node, bool) {
	var out []parser.Node
	ok := true
	var visit func(n parser.Node, conditional bool)
	visit = func(n parser.Node, conditional bool) {
		if n == nil || !ok {
			return
		}
		switch x := n.(type) {
		case *parser.MethodInvocation, *parser.Assignment, *parser.NewClass:
			if conditional {
				ok = false
				return
			}
			out = append(out, x)
			return
		case *parser.Unary:
			if x.Op == "++" || x.Op == "--" {
				if conditional {
					ok = false
					return
				}
				out = append(out, x)
				return
			}
			visit(x.Expr, conditional)
		case *parser.Binary:
			visit(x.Left, conditional)
			visit(x.Right, conditional || x.Op == "&&" || x.Op == "||")
		case *parser.Ternary:
			visit(x.Cond, conditional)
			visit(x.Then, true)
			visit(x.Else, true)
		case *parser.Parens:
			visit(x.Tree.Node, conditional)
		case *parser.TypeCast:
			visit(x.Expr, conditional)
		case *parser.InstanceOf:
			visit(x.Expr, conditional)
		case *parser.FieldAccess:
			visit(x.Target, conditional)
		case *parser.ArrayAccess:
			visit(x.Indexed, conditional)
			visit(x.Index.Node, conditional)
		case *parser.NewArray:
			before := len(out)
			for _, d := range x.Dims {
				visit(d.Size, conditional)
			}
			if x.Init != nil {
				visit(x.Init, conditional)
			}
			if len(out) > before {
				ok = false
			}
		case *parser.ArrayInit:
			for _, e := range x.Elems {
				visit(e.Node, conditional)
			}
		case *parser.Ident, *parser.Literal, *parser.Lambda, *parser.MemberRef, *parser.Empty:
		default:
			ok = false
		}
	}
	visit(n, false)
	if !ok {
		return nil, false
	}
	return out, true
}

// hoist turns the side effects of n into statements at indent.
func hoist(n parser.Node, indent string) ([]parser.Elem, bool) {
	effects, ok := sideEffects(n)
	if !ok {
		return nil, false
	}
	out := make([]parser.Elem, 0, len(effects))
	for _, e := range effects {
		out = append(out, stmt(e, indent))
	}
	return out, true
}

// splice replaces the statement at index i of es with repl.
func splice(es []parser.Elem, i int, repl []parser.Elem) []parser.Elem {
	out := make([]parser.Elem, 0, len(es)-1+len(repl))
	out = append(out, es[:i]...)
	out = append(out, repl...)
	return append(out, es[i+1:]...)
}

// importName returns the dotted name of an import.
func importName(imp *parser.Import) string {
	return dotted(imp.Name)
}

func dotted(n parser.Node) string {
	switch x := n.(type) {
	case *parser.Ident:
		return x.Name
	case *parser.FieldAccess:
		return dotted(x.Target) + "." + x.Name.Name
	}
	return ""
}

// addImport returns cu with a single-type import of name, kept in sorted
// position. cu is returned unchanged when name is already imported, either
// directly or through its package wildcard.
func addImport(cu *parser.CompilationUnit, name string) *parser.CompilationUnit {
	pkg := name[:strings.LastIndexByte(name, '.')]
	if pkg == "java.lang" {
		return cu
	}
	at := len(cu.Imports)
	for i, imp := range cu.Imports {
		got := importName(imp)
		if !imp.Static && (got == name || got == pkg+".*") {
			return cu
		}
		if !imp.Static && got > name && at == len(cu.Imports) {
			at = i
		}
	}

	tmpl, err := parser.Parse("import " + name + ";")
	if err != nil {
		panic(fmt.Sprintf("structural: bad import %q: %v", name, err))
	}
	imp := tmpl.Imports[0]

	out := parser.Clone(cu)
	imports := make([]*parser.Import, 0, len(cu.Imports)+1)
	imports = append(imports, cu.Imports[:at]...)
	switch {
	case len(cu.Imports) == 0 && cu.Package != nil:
		imp = parser.WithPrefix(imp, "\n\n")
	case len(cu.Imports) == 0:
		imp = parser.WithPrefix(imp, "")
		if len(cu.Types) > 0 {
			types := append([]parser.Node(nil), cu.Types...)
			types[0] = parser.WithPrefix(types[0], "\n\n"+parser.Prefix(types[0]))
			out.Types = types
		}
	case at == 0:
		imp = parser.WithPrefix(imp, cu.Imports[0].Prefix)
	default:
		imp = parser.WithPrefix(imp, "\n")
	}
	imports = append(imports, imp)
	for i, rest := range cu.Imports[at:] {
		if i == 0 && at == 0 {
			rest = parser.WithPrefix(rest, "\n")
		}
		imports = append(imports, rest)
	}
	out.Imports = imports
	return out
}
