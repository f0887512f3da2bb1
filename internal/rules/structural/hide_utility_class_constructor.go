package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// HideUtilityClassConstructor makes the public constructors of a class
// holding only static members private, declaring a private constructor
// when the class has none.
type HideUtilityClassConstructor struct{}

// NewHideUtilityClassConstructor builds a HideUtilityClassConstructor
// fixer. It takes no options.
func NewHideUtilityClassConstructor(config.Module) (*HideUtilityClassConstructor, error) {
	return &HideUtilityClassConstructor{}, nil
}

// Name returns the module name.
func (*HideUtilityClassConstructor) Name() string { return "HideUtilityClassConstructor" }

// Fix implements formatter.Fixer.
func (*HideUtilityClassConstructor) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		cd, ok := n.(*parser.ClassDecl)
		if !ok || !isUtilityClass(cd) {
			return n
		}
		body := hideConstructors(cd.Body, cd.Name.Name)
		if body == cd.Body {
			return n
		}
		out := parser.Clone(cd)
		out.Body = body
		return out
	})
}

// isUtilityClass reports whether cd is a plain class whose members are all
// static, with at least one static field or method.
func isUtilityClass(cd *parser.ClassDecl) bool {
	if cd.Kind != "class" || cd.Extends != nil || scope.HasModifier(cd.Leading, "abstract") {
		return false
	}
	members := 0
	for _, e := range cd.Body.Stmts {
		switch x := e.Node.(type) {
		case *parser.VarDecls:
			if !scope.HasModifier(x.Leading, "static") {
				return false
			}
			members++
		case *parser.MethodDecl:
			if x.ReturnType == nil {
				continue
			}
			if !scope.HasModifier(x.Leading, "static") {
				return false
			}
			members++
		case *parser.Block:
			if !x.Static {
				return false
			}
		}
	}
	return members > 0
}

// hideConstructors returns body with its public constructors made private,
// or with a private constructor added when there is none.
func hideConstructors(body *parser.Block, name string) *parser.Block {
	var stmts []parser.Elem
	found := false
	for i, e := range body.Stmts {
		m, ok := e.Node.(*parser.MethodDecl)
		if !ok || m.ReturnType != nil {
			continue
		}
		found = true
		if !scope.HasModifier(m.Leading, "public") {
			continue
		}
		if stmts == nil {
			stmts = append([]parser.Elem(nil), body.Stmts...)
		}
		leading, next := setAccess(m.Leading, parser.Prefix(head(m)), "private")
		out := withHead(m, next)
		out.Leading = leading
		stmts[i].Node = out
	}
	if found {
		if stmts == nil {
			return body
		}
		out := parser.Clone(body)
		out.Stmts = stmts
		return out
	}
	return addConstructor(body, name)
}

// addConstructor declares "private Name() {}" in front of the first
// method of body, or after the last member when there is no method.
func addConstructor(body *parser.Block, name string) *parser.Block {
	at := len(body.Stmts)
	indent := ""
	for i, e := range body.Stmts {
		if pre := parser.Prefix(e.Node); pre.HasNewline() && indent == "" {
			indent = pre.Indent()
		}
		if _, ok := e.Node.(*parser.MethodDecl); ok && at == len(body.Stmts) {
			at = i
		}
	}

	pre := parser.Space("\n\n" + indent)
	stmts := make([]parser.Elem, 0, len(body.Stmts)+1)
	stmts = append(stmts, body.Stmts[:at]...)
	rest := append([]parser.Elem(nil), body.Stmts[at:]...)
	if len(rest) > 0 {
		if p := parser.Prefix(rest[0].Node); !p.HasComment() {
			pre = p
			rest[0].Node = parser.WithPrefix(rest[0].Node, parser.Space("\n\n"+indent))
		}
	}
	ctor := &parser.MethodDecl{
		Meta:    parser.Meta{Prefix: pre},
		Leading: []parser.Node{&parser.Modifier{Keyword: "private"}},
		Name:    &parser.Ident{Meta: parser.Meta{Prefix: " "}, Name: name},
		Params:  &parser.Args{Elems: []parser.Elem{{Node: &parser.Empty{}}}},
		Body:    &parser.Block{Meta: parser.Meta{Prefix: " "}, End: parser.Space("\n" + indent)},
	}
	stmts = append(stmts, parser.Elem{Node: ctor})
	out := parser.Clone(body)
	out.Stmts = append(stmts, rest...)
	return out
}
