package whitespace

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// EmptyForInitializerPadOptions configures EmptyForInitializerPad.
type EmptyForInitializerPadOptions struct {
	Option config.PadPolicy `prop:"option"`
}

// EmptyForInitializerPad fixes the padding of an empty for-loop
// initializer, the space between "(" and the first ";". An initializer
// that starts on a new line is left alone.
type EmptyForInitializerPad struct {
	opts EmptyForInitializerPadOptions
}

// NewEmptyForInitializerPad builds an EmptyForInitializerPad fixer from m.
func NewEmptyForInitializerPad(m config.Module) (*EmptyForInitializerPad, error) {
	opts := EmptyForInitializerPadOptions{Option: config.NoSpace}
	if err := config.DecodeModule("EmptyForInitializerPad", m, &opts, nil, config.TokenSet{}); err != nil {
		return nil, err
	}
	return &EmptyForInitializerPad{opts: opts}, nil
}

// Name returns the module name.
func (*EmptyForInitializerPad) Name() string { return "EmptyForInitializerPad" }

// Fix implements formatter.Fixer.
func (f *EmptyForInitializerPad) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	want := padding(f.opts.Option)
	return parser.Rewrite(cu, func(_ *parser.Cursor, n parser.Node) parser.Node {
		x, ok := n.(*parser.ForControl)
		if !ok || len(x.Init) != 1 || !isEmpty(x.Init[0].Node) {
			return n
		}
		var e edit
		y := *x
		y.Init = elems(x.Init)
		prefix(&e, &y.Init[0].Node, want, true)
		if !e.changed {
			return n
		}
		return &y
	})
}
