// Package rename renames variable declarations together with every
// reference that resolves to them.
package rename

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

var numbered = regexp.MustCompile(`^(.*?)(\d+)$`)

// NextName returns the successor of name in its numbered sequence: n
// becomes n1, n1 becomes n2.
func NextName(name string) string {
	m := numbered.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return name + "1"
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return name + "1"
	}
	return m[1] + strconv.Itoa(n+1)
}

// NextFree returns the first successor of name that taken rejects.
func NextFree(name string, taken func(string) bool) string {
	next := NextName(name)
	for taken(next) {
		next = NextName(next)
	}
	return next
}

// SnakeToCamel converts CONSTANT_CASE, snake_case and PascalCase names to
// camelCase.
func SnakeToCamel(name string) string {
	if name == "" {
		return name
	}
	if !strings.Contains(name, "_") && !isUpper(name) {
		r := []rune(name)
		r[0] = unicode.ToLower(r[0])
		return string(r)
	}
	// Casers keep state, so each call gets its own.
	lower, title := cases.Lower(language.Und), cases.Title(language.Und)
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(lower.String(part))
			continue
		}
		b.WriteString(title.String(part))
	}
	if b.Len() == 0 {
		return name
	}
	return b.String()
}

func isUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// NamesIn returns every identifier spelled inside n.
func NamesIn(n parser.Node) map[string]bool {
	names := map[string]bool{}
	parser.Walk(n, func(c *parser.Cursor) bool {
		if id, ok := c.Node.(*parser.Ident); ok {
			names[id.Name] = true
		}
		return true
	})
	return names
}

// Apply renames decl to newName in root, rewriting each simple name,
// this-qualified and class-qualified reference that resolves to decl.
// References to an inner declaration that re-shadows the name are left
// alone.
func Apply(root *parser.CompilationUnit, unit *scope.Unit, decl *parser.NamedVar, newName string) *parser.CompilationUnit {
	unit = scope.For(unit, root)
	oldName := decl.Name.Name
	return parser.Rewrite(root, func(c *parser.Cursor, n parser.Node) parser.Node {
		switch x := n.(type) {
		case *parser.NamedVar:
			if c.Node == decl {
				return withName(x, newName)
			}
		case *parser.Ident:
			if c.Role != parser.RoleExpr || x.Name != oldName {
				return n
			}
			if b, ok := unit.Resolve(c).Lookup(oldName); ok && b.Decl == decl {
				return &parser.Ident{Meta: x.Meta, Name: newName}
			}
		case *parser.FieldAccess:
			if x.Name.Name != oldName {
				return n
			}
			orig := c.Node.(*parser.FieldAccess)
			if qualifiedField(unit, c, orig.Target, oldName) == decl {
				fa := parser.Clone(x)
				fa.Name = &parser.Ident{Meta: x.Name.Meta, Name: newName}
				return fa
			}
		}
		return n
	})
}

func withName(nv *parser.NamedVar, name string) *parser.NamedVar {
	out := parser.Clone(nv)
	out.Name = &parser.Ident{Meta: nv.Name.Meta, Name: name}
	return out
}

// qualifiedField resolves target.name where target is this or a class
// name.
func qualifiedField(unit *scope.Unit, c *parser.Cursor, target parser.Node, name string) *parser.NamedVar {
	if id, ok := target.(*parser.Ident); ok && id.Name == "this" {
		class := unit.Resolve(c).Class()
		if class == nil {
			return nil
		}
		for i := len(class.Bindings) - 1; i >= 0; i-- {
			if class.Bindings[i].Name == name {
				return class.Bindings[i].Decl
			}
		}
		return nil
	}
	if id, ok := target.(*parser.Ident); ok {
		if b, isVar := unit.Resolve(c).Lookup(id.Name); isVar && b.Decl != nil {
			return nil
		}
	}
	cd := unit.Lookup(scope.TypeName(target))
	if cd == nil {
		return nil
	}
	b, ok := unit.FieldOf(cd, name)
	if !ok {
		return nil
	}
	return b.Decl
}
