package rename

import (
	"regexp"
	"unicode"

	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// Policy lists the declarations a shadowing rename must leave alone.
type Policy struct {
	IgnoreFormat               *regexp.Regexp
	IgnoreConstructorParameter bool
	IgnoreSetter               bool
	SetterCanReturnItsClass    bool
	IgnoreAbstractMethods      bool
}

// Exempt reports whether the variable name declared by the VarDecls at c
// is exempt from renaming.
func (p Policy) Exempt(c *parser.Cursor, name string) bool {
	if p.IgnoreFormat != nil && p.IgnoreFormat.MatchString(name) {
		return true
	}
	m := enclosingMethodOfParam(c)
	if m == nil {
		return false
	}
	switch {
	case m.ReturnType == nil:
		return p.IgnoreConstructorParameter
	case m.Body == nil || scope.HasModifier(m.Leading, "abstract"):
		return p.IgnoreAbstractMethods
	case p.IgnoreSetter:
		return p.isSetter(c, m, name)
	}
	return false
}

// enclosingMethodOfParam returns the method declaring the parameter at c.
func enclosingMethodOfParam(c *parser.Cursor) *parser.MethodDecl {
	if c.Parent == nil || c.Parent.Parent == nil {
		return nil
	}
	if _, ok := c.Parent.Node.(*parser.Args); !ok {
		return nil
	}
	m, _ := c.Parent.Parent.Node.(*parser.MethodDecl)
	return m
}

func (p Policy) isSetter(c *parser.Cursor, m *parser.MethodDecl, name string) bool {
	if len(m.Params.Elems) != 1 || m.Name.Name != "set"+capitalize(name) {
		return false
	}
	ret, ok := m.ReturnType.(*parser.Ident)
	if !ok {
		return false
	}
	if ret.Name == "void" {
		return true
	}
	if !p.SetterCanReturnItsClass {
		return false
	}
	cls := c.Nearest(func(n parser.Node) bool {
		_, ok := n.(*parser.ClassDecl)
		return ok
	})
	return cls != nil && cls.Node.(*parser.ClassDecl).Name.Name == ret.Name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

