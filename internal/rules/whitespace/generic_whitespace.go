package whitespace

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// GenericWhitespace removes the whitespace around and inside the angle
// brackets of type parameters and type arguments. The space between the
// type parameters of a generic method and its return type is kept, and
// line breaks are never removed. A diamond or type argument list of a
// constructor call is joined to its "(".
type GenericWhitespace struct{}

// NewGenericWhitespace builds a GenericWhitespace fixer. It takes no
// options.
func NewGenericWhitespace(m config.Module) (*GenericWhitespace, error) {
	if err := config.DecodeModule("GenericWhitespace", m, &struct{}{}, nil, config.TokenSet{}); err != nil {
		return nil, err
	}
	return &GenericWhitespace{}, nil
}

// Name returns the module name.
func (*GenericWhitespace) Name() string { return "GenericWhitespace" }

// Fix implements formatter.Fixer.
func (*GenericWhitespace) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	return parser.Rewrite(cu, func(_ *parser.Cursor, n parser.Node) parser.Node {
		var e edit
		var out parser.Node
		switch x := n.(type) {
		case *parser.ClassDecl:
			if x.TypeParams == nil {
				return n
			}
			y := *x
			prefix(&e, &y.TypeParams, "", true)
			out = &y
		case *parser.TypeParams:
			y := *x
			y.Elems = inside(&e, x.Elems)
			out = &y
		case *parser.TypeArgs:
			y := *x
			y.Elems = inside(&e, x.Elems)
			out = &y
		case *parser.ParamType:
			y := *x
			prefix(&e, &y.Args, "", true)
			out = &y
		case *parser.NewClass:
			// "new HashMap<> ()": nothing may follow ">" before "(".
			if _, ok := x.Clazz.(*parser.ParamType); !ok || x.Args == nil {
				return n
			}
			y := *x
			prefix(&e, &y.Args, "", true)
			out = &y
		case *parser.MethodInvocation:
			if x.Target == nil || x.TypeArgs == nil {
				return n
			}
			y := *x
			prefix(&e, &y.TypeArgs, "", true)
			prefix(&e, &y.Name, "", true)
			out = &y
		}
		if !e.changed {
			return n
		}
		return out
	})
}

// inside strips the space after "<" and before ">".
func inside(e *edit, es []parser.Elem) []parser.Elem {
	out := elems(es)
	prefix(e, &out[0].Node, "", true)
	e.space(&out[len(out)-1].After, "", true)
	return out
}
