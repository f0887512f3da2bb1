package whitespace

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// TypecastParenPadOptions configures TypecastParenPad.
type TypecastParenPadOptions struct {
	Option config.PadPolicy `prop:"option"`
}

// TypecastParenPad fixes the padding inside the parentheses of a cast.
// Line breaks are left alone.
type TypecastParenPad struct {
	opts TypecastParenPadOptions
}

// NewTypecastParenPad builds a TypecastParenPad fixer from m.
func NewTypecastParenPad(m config.Module) (*TypecastParenPad, error) {
	opts := TypecastParenPadOptions{Option: config.NoSpace}
	if err := config.DecodeModule("TypecastParenPad", m, &opts, nil, config.TokenSet{}); err != nil {
		return nil, err
	}
	return &TypecastParenPad{opts: opts}, nil
}

// Name returns the module name.
func (*TypecastParenPad) Name() string { return "TypecastParenPad" }

// Fix implements formatter.Fixer.
func (f *TypecastParenPad) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	want := padding(f.opts.Option)
	return parser.Rewrite(cu, func(_ *parser.Cursor, n parser.Node) parser.Node {
		x, ok := n.(*parser.TypeCast)
		if !ok {
			return n
		}
		var e edit
		out := *x
		prefix(&e, &out.Type.Node, want, true)
		e.space(&out.Type.After, want, true)
		if !e.changed {
			return n
		}
		return &out
	})
}
