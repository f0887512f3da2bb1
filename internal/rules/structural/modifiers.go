package structural

import (
	"slices"

	"github.com/donaldgifford/stylefix/internal/parser"
)

var access = map[string]bool{"public": true, "protected": true, "private": true}

// head returns the node printed right after the modifiers of m.
func head(m *parser.MethodDecl) parser.Node {
	switch {
	case m.TypeParams != nil:
		return m.TypeParams
	case m.ReturnType != nil:
		return m.ReturnType
	}
	return m.Name
}

// withHead returns a copy of m whose head node has prefix s.
func withHead(m *parser.MethodDecl, s parser.Space) *parser.MethodDecl {
	out := parser.Clone(m)
	switch {
	case m.TypeParams != nil:
		out.TypeParams = parser.WithPrefix(m.TypeParams, s)
	case m.ReturnType != nil:
		out.ReturnType = parser.WithPrefix(m.ReturnType, s)
	default:
		out.Name = parser.WithPrefix(m.Name, s)
	}
	return out
}

// setAccess replaces the access modifier in leading with kw, or inserts kw
// after the annotations. next is the prefix of the node that follows
// leading; its new value is returned alongside.
func setAccess(leading []parser.Node, next parser.Space, kw string) ([]parser.Node, parser.Space) {
	at := len(leading)
	for i, n := range leading {
		m, ok := n.(*parser.Modifier)
		if !ok {
			continue
		}
		if access[m.Keyword] {
			if m.Keyword == kw {
				return leading, next
			}
			out := slices.Clone(leading)
			out[i] = &parser.Modifier{Meta: m.Meta, Keyword: kw}
			return out, next
		}
		if at == len(leading) {
			at = i
		}
	}
	mod := &parser.Modifier{Keyword: kw}
	out := slices.Clone(leading)
	if at == len(leading) {
		mod.Prefix = next
		next = " "
	} else {
		mod.Prefix = parser.Prefix(leading[at])
		out[at] = parser.WithPrefix(leading[at], " ")
	}
	return slices.Insert(out, at, parser.Node(mod)), next
}

// hasAnnotation reports whether leading carries the annotation name, plain
// or qualified.
func hasAnnotation(leading []parser.Node, name string) bool {
	for _, n := range leading {
		if a, ok := n.(*parser.Annotation); ok {
			if id, ok := a.Name.(*parser.Ident); ok && id.Name == name {
				return true
			}
			if fa, ok := a.Name.(*parser.FieldAccess); ok && fa.Name.Name == name {
				return true
			}
		}
	}
	return false
}

// annotate puts a marker annotation on its own line in front of leading.
func annotate(leading []parser.Node, next parser.Space, name, indent string) ([]parser.Node, parser.Space) {
	ann := &parser.Annotation{Name: &parser.Ident{Name: name}}
	line := parser.Space("\n" + indent)
	if len(leading) == 0 {
		return []parser.Node{ann}, line
	}
	out := make([]parser.Node, 0, len(leading)+1)
	out = append(out, ann, parser.WithPrefix(leading[0], line))
	return append(out, leading[1:]...), next
}
