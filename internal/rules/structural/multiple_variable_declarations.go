package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// MultipleVariableDeclarations splits a declaration of several variables or
// fields into one declaration per name. Declarations in a for-loop
// initializer are left alone.
type MultipleVariableDeclarations struct{}

// NewMultipleVariableDeclarations builds a MultipleVariableDeclarations
// fixer. It takes no options.
func NewMultipleVariableDeclarations(config.Module) (*MultipleVariableDeclarations, error) {
	return &MultipleVariableDeclarations{}, nil
}

// Name returns the module name.
func (*MultipleVariableDeclarations) Name() string { return "MultipleVariableDeclarations" }

// Fix implements formatter.Fixer.
func (*MultipleVariableDeclarations) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	unit := parser.IndentUnit(cu)
	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		switch x := n.(type) {
		case *parser.Block:
			if stmts, ok := splitAll(c, x.Stmts, unit); ok {
				out := parser.Clone(x)
				out.Stmts = stmts
				return out
			}
		case *parser.Case:
			if stmts, ok := splitAll(c, x.Stmts, unit); ok {
				out := parser.Clone(x)
				out.Stmts = stmts
				return out
			}
		}
		return n
	})
}

func splitAll(c *parser.Cursor, stmts []parser.Elem, unit string) ([]parser.Elem, bool) {
	var out []parser.Elem
	changed := false
	for i, e := range stmts {
		v, ok := e.Node.(*parser.VarDecls)
		if !ok || len(v.Vars) < 2 || !splittable(v) {
			if changed {
				out = append(out, e)
			}
			continue
		}
		if !changed {
			out = append(out, stmts[:i]...)
			changed = true
		}
		out = append(out, split(v, e.After, stmtIndent(c, v, unit))...)
	}
	if !changed {
		return stmts, false
	}
	return out, true
}

// splittable reports whether splitting v keeps every comment.
func splittable(v *parser.VarDecls) bool {
	for i, e := range v.Vars {
		if e.After.HasComment() || (i > 0 && parser.Prefix(e.Node).HasComment()) {
			return false
		}
	}
	return true
}

// split returns one declaration statement per declarator of v. The first
// keeps v's position and the rest start on new lines at indent.
func split(v *parser.VarDecls, after parser.Space, indent string) []parser.Elem {
	out := make([]parser.Elem, 0, len(v.Vars))
	for i, e := range v.Vars {
		nv := e.Node.(*parser.NamedVar)
		d := parser.Clone(v)
		if i > 0 {
			d.Prefix = parser.Space("\n" + indent)
			nv = parser.WithPrefix(nv, " ")
		}
		if arr, ok := v.Type.(*parser.ArrayType); ok && len(nv.Dims) > 0 {
			d.Type, nv = moveDims(arr, nv)
		}
		d.Vars = []parser.Elem{{Node: nv}}
		var semi parser.Space
		if i == len(v.Vars)-1 {
			semi = after
		}
		out = append(out, parser.Elem{Node: d, After: semi})
	}
	return out
}

// moveDims moves the dimensions of an array type onto a declarator that
// carries dimensions of its own, as in "Integer[] r[]" -> "Integer r[][]".
func moveDims(arr *parser.ArrayType, nv *parser.NamedVar) (parser.Node, *parser.NamedVar) {
	out := parser.Clone(nv)
	out.Dims = append([]parser.Dim(nil), nv.Dims...)
	var elem parser.Node = arr
	for {
		a, ok := elem.(*parser.ArrayType)
		if !ok {
			break
		}
		out.Dims = append(out.Dims, parser.Dim{})
		elem = a.Elem
	}
	return parser.WithPrefix(elem, parser.Prefix(arr)), out
}
