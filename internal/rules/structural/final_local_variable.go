package structural

import (
	"slices"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// FinalLocalVariable declares final the local variables that are
// initialized where they are declared and never assigned afterwards.
type FinalLocalVariable struct{}

// NewFinalLocalVariable builds a FinalLocalVariable fixer. It takes no
// options.
func NewFinalLocalVariable(config.Module) (*FinalLocalVariable, error) {
	return &FinalLocalVariable{}, nil
}

// Name returns the module name.
func (*FinalLocalVariable) Name() string { return "FinalLocalVariable" }

// Fix implements formatter.Fixer.
func (*FinalLocalVariable) Fix(cu *parser.CompilationUnit, unit *scope.Unit) *parser.CompilationUnit {
	unit = scope.For(unit, cu)
	assigned := assignedLocals(cu, unit)

	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		v, ok := n.(*parser.VarDecls)
		if !ok || !isLocalStatement(c) || scope.HasModifier(v.Leading, "final") {
			return n
		}
		for _, e := range c.Node.(*parser.VarDecls).Vars {
			nv := e.Node.(*parser.NamedVar)
			if nv.Init == nil || assigned[nv] {
				return n
			}
		}
		return withFinal(v)
	})
}

// isLocalStatement reports whether the declaration at c is a statement of
// a method body block or a switch case.
func isLocalStatement(c *parser.Cursor) bool {
	switch c.ParentNode().(type) {
	case *parser.Block:
		return !isClassBody(c.Parent)
	case *parser.Case:
		return true
	}
	return false
}

// assignedLocals returns the declarations that are the target of an
// assignment or an increment anywhere in cu.
func assignedLocals(cu *parser.CompilationUnit, unit *scope.Unit) map[*parser.NamedVar]bool {
	out := map[*parser.NamedVar]bool{}
	parser.Walk(cu, func(c *parser.Cursor) bool {
		id, ok := c.Node.(*parser.Ident)
		if !ok || c.Role != parser.RoleExpr || !isWriteTarget(c) {
			return true
		}
		if b, ok := unit.Resolve(c).Lookup(id.Name); ok && b.Decl != nil {
			out[b.Decl] = true
		}
		return true
	})
	return out
}

// isWriteTarget reports whether the expression at c is written to,
// looking through enclosing parentheses.
func isWriteTarget(c *parser.Cursor) bool {
	n := c.Node
	for p := c.Parent; p != nil; n, p = p.Node, p.Parent {
		switch x := p.Node.(type) {
		case *parser.Parens:
			continue
		case *parser.Assignment:
			return x.Var == n
		case *parser.Unary:
			return x.Op == "++" || x.Op == "--"
		}
		return false
	}
	return false
}

// withFinal puts a final modifier in front of v's modifiers and type.
func withFinal(v *parser.VarDecls) *parser.VarDecls {
	out := parser.Clone(v)
	final := &parser.Modifier{Keyword: "final"}
	if len(v.Leading) > 0 {
		leading := slices.Clone(v.Leading)
		leading[0] = parser.WithPrefix(leading[0], " ")
		out.Leading = slices.Insert(leading, 0, parser.Node(final))
		return out
	}
	out.Leading = []parser.Node{final}
	out.Type = parser.WithPrefix(v.Type, " ")
	return out
}
