package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/rename"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// CovariantEquals turns "boolean equals(T t)" declared in class T into an
// override of Object.equals that checks identity, null and class before
// casting and running the original comparison.
type CovariantEquals struct{}

// NewCovariantEquals builds a CovariantEquals fixer. It takes no options.
func NewCovariantEquals(config.Module) (*CovariantEquals, error) {
	return &CovariantEquals{}, nil
}

// Name returns the module name.
func (*CovariantEquals) Name() string { return "CovariantEquals" }

// Fix implements formatter.Fixer.
func (*CovariantEquals) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	unit := parser.IndentUnit(cu)
	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		m, ok := n.(*parser.MethodDecl)
		if !ok || c.Parent == nil || c.Parent.Parent == nil {
			return n
		}
		cd, ok := c.Parent.Parent.Node.(*parser.ClassDecl)
		if !ok || cd.Kind != "class" {
			return n
		}
		param, ok := covariantParam(m, cd.Name.Name)
		if !ok || hasObjectEquals(cd.Body) {
			return n
		}
		return override(c, m, param, unit)
	})
}

// covariantParam returns the single parameter of m when m is
// "boolean equals(class t)" with a body.
func covariantParam(m *parser.MethodDecl, class string) (*parser.VarDecls, bool) {
	if m.Name.Name != "equals" || m.Body == nil || m.TypeParams != nil || scope.HasModifier(m.Leading, "static") {
		return nil, false
	}
	if ret, ok := m.ReturnType.(*parser.Ident); !ok || ret.Name != "boolean" {
		return nil, false
	}
	if len(m.Params.Elems) != 1 {
		return nil, false
	}
	v, ok := m.Params.Elems[0].Node.(*parser.VarDecls)
	if !ok || v.Varargs || len(v.Vars) != 1 {
		return nil, false
	}
	t, ok := v.Type.(*parser.Ident)
	if !ok || t.Name != class || len(v.Vars[0].Node.(*parser.NamedVar).Dims) > 0 {
		return nil, false
	}
	return v, true
}

// hasObjectEquals reports whether body already declares equals(Object).
func hasObjectEquals(body *parser.Block) bool {
	for _, e := range body.Stmts {
		m, ok := e.Node.(*parser.MethodDecl)
		if !ok || m.Name.Name != "equals" || m.ReturnType == nil || len(m.Params.Elems) != 1 {
			continue
		}
		if v, ok := m.Params.Elems[0].Node.(*parser.VarDecls); ok && scope.TypeName(v.Type) == "Object" {
			return true
		}
	}
	return false
}

func override(c *parser.Cursor, m *parser.MethodDecl, param *parser.VarDecls, unit string) *parser.MethodDecl {
	nv := param.Vars[0].Node.(*parser.NamedVar)
	class := param.Type.(*parser.Ident).Name
	names := rename.NamesIn(m)
	obj := "o"
	if names[obj] {
		obj = rename.NextFree(obj, func(s string) bool { return names[s] })
	}

	indent := parser.IndentOf(c)
	leading, next := setAccess(m.Leading, parser.Prefix(head(m)), "public")
	if !hasAnnotation(leading, "Override") {
		leading, next = annotate(leading, next, "Override", indent)
	}
	out := withHead(m, next)
	out.Leading = leading

	v := parser.Clone(param)
	v.Type = &parser.Ident{Name: "Object"}
	named := parser.Clone(nv)
	named.Name = &parser.Ident{Meta: nv.Name.Meta, Name: obj}
	v.Vars = []parser.Elem{{Node: named, After: param.Vars[0].After}}
	params := parser.Clone(m.Params)
	params.Elems = []parser.Elem{{Node: v, After: m.Params.Elems[0].After}}
	out.Params = params

	body := parser.Clone(m.Body)
	inner := indent + unit
	if len(body.Stmts) > 0 && parser.Prefix(body.Stmts[0].Node).HasNewline() {
		inner = parser.Prefix(body.Stmts[0].Node).Indent()
	}
	stmts := []parser.Elem{
		stmt(statement("if (this == %s) return true;", obj), inner),
		stmt(statement("if (%s == null || getClass() != %s.getClass()) return false;", obj, obj), inner),
		stmt(statement("%s %s = (%s) %s;", class, nv.Name.Name, class, obj), inner),
	}
	for i, e := range m.Body.Stmts {
		if i == 0 && !parser.Prefix(e.Node).HasNewline() {
			e.Node = parser.WithPrefix(e.Node, parser.Space("\n"+inner))
		}
		stmts = append(stmts, e)
	}
	body.Stmts = stmts
	if !body.End.HasNewline() {
		body.End = parser.Space("\n" + indent)
	}
	out.Body = body
	return out
}
