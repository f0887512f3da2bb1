package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// EqualsAvoidsNullOptions configures EqualsAvoidsNull.
type EqualsAvoidsNullOptions struct {
	IgnoreEqualsIgnoreCase bool `prop:"ignoreEqualsIgnoreCase"`
}

// EqualsAvoidsNull moves string literals into the receiver position of
// equals and equalsIgnoreCase calls, dropping null checks that become
// redundant.
type EqualsAvoidsNull struct {
	opts EqualsAvoidsNullOptions
}

// NewEqualsAvoidsNull builds an EqualsAvoidsNull fixer from m.
func NewEqualsAvoidsNull(m config.Module) (*EqualsAvoidsNull, error) {
	var opts EqualsAvoidsNullOptions
	if err := decode("EqualsAvoidsNull", m, &opts, nil, config.TokenSet{}); err != nil {
		return nil, err
	}
	return &EqualsAvoidsNull{opts: opts}, nil
}

// Name returns the module name.
func (*EqualsAvoidsNull) Name() string { return "EqualsAvoidsNull" }

// Fix implements formatter.Fixer.
func (f *EqualsAvoidsNull) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	// Parentheses that enclosed a collapsed null check.
	collapsed := map[parser.Node]bool{}

	return parser.Rewrite(cu, func(c *parser.Cursor, n parser.Node) parser.Node {
		switch x := n.(type) {
		case *parser.MethodInvocation:
			return f.swap(x)
		case *parser.Binary:
			if out, ok := dropNullCheck(x, f.equalsCall); ok {
				collapsed[out] = true
				return out
			}
		case *parser.Parens:
			if collapsed[x.Tree.Node] && !x.Tree.After.HasComment() && !parser.Prefix(x.Tree.Node).HasComment() {
				out := parser.WithPrefix(x.Tree.Node, x.Prefix)
				collapsed[out] = true
				return out
			}
		}
		return n
	})
}

func (f *EqualsAvoidsNull) isEquals(name string) bool {
	return name == "equals" || (name == "equalsIgnoreCase" && !f.opts.IgnoreEqualsIgnoreCase)
}

// swap turns x.equals("lit") into "lit".equals(x).
func (f *EqualsAvoidsNull) swap(mi *parser.MethodInvocation) parser.Node {
	if mi.Target == nil || !f.isEquals(mi.Name.Name) || len(mi.Args.Elems) != 1 {
		return mi
	}
	arg := mi.Args.Elems[0]
	lit, ok := arg.Node.(*parser.Literal)
	if !ok || lit.Kind != parser.LitString {
		return mi
	}
	if _, isLit := mi.Target.(*parser.Literal); isLit {
		return mi
	}
	if parser.Prefix(mi.Target).HasComment() || lit.Prefix.HasComment() || mi.DotPre.HasComment() {
		return mi
	}
	out := parser.Clone(mi)
	out.Target = parser.WithPrefix(lit, "")
	args := parser.Clone(mi.Args)
	args.Elems = []parser.Elem{{Node: parser.WithPrefix(mi.Target, lit.Prefix), After: arg.After}}
	out.Args = args
	return out
}

// equalsCall returns the argument of a "literal".equals(arg) call.
func (f *EqualsAvoidsNull) equalsCall(n parser.Node) (parser.Node, bool) {
	mi, ok := n.(*parser.MethodInvocation)
	if !ok || !f.isEquals(mi.Name.Name) || len(mi.Args.Elems) != 1 {
		return nil, false
	}
	if lit, isLit := mi.Target.(*parser.Literal); !isLit || lit.Kind != parser.LitString {
		return nil, false
	}
	return mi.Args.Elems[0].Node, true
}

// dropNullCheck rewrites "x != null && lit.equals(x)" to the call alone,
// also when the null check is the last operand of a longer && chain.
func dropNullCheck(b *parser.Binary, call func(parser.Node) (parser.Node, bool)) (parser.Node, bool) {
	if b.Op != "&&" || b.OpPre.HasComment() || parser.Prefix(b.Right).HasComment() {
		return nil, false
	}
	arg, ok := call(b.Right)
	if !ok {
		return nil, false
	}
	if checksNotNull(b.Left, arg) {
		return parser.WithPrefix(b.Right, b.Prefix), true
	}
	left, ok := b.Left.(*parser.Binary)
	if !ok || left.Op != "&&" || !checksNotNull(left.Right, arg) || left.OpPre.HasComment() {
		return nil, false
	}
	out := parser.Clone(b)
	out.Left = left.Left
	out.OpPre = left.OpPre
	return out, true
}

// checksNotNull reports whether n is "x != null" or "null != x". An x
// with side effects is evaluated twice by the check and the call, so it
// never matches.
func checksNotNull(n parser.Node, x parser.Node) bool {
	b, ok := n.(*parser.Binary)
	if !ok || b.Op != "!=" {
		return false
	}
	if effects, ok := sideEffects(x); !ok || len(effects) > 0 {
		return false
	}
	switch {
	case isNull(b.Right):
		return parser.Equal(b.Left, x)
	case isNull(b.Left):
		return parser.Equal(b.Right, x)
	}
	return false
}

func isNull(n parser.Node) bool {
	lit, ok := n.(*parser.Literal)
	return ok && lit.Kind == parser.LitNull
}
