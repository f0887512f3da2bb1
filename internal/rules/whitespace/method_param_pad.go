package whitespace

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// MethodParamPadOptions configures MethodParamPad.
type MethodParamPadOptions struct {
	Option          config.PadPolicy `prop:"option"`
	AllowLineBreaks bool             `prop:"allowLineBreaks"`
	Tokens          config.TokenSet  `prop:"tokens"`
}

var methodParamPadTokens = config.Tokens(
	"CTOR_DEF", "LITERAL_NEW", "METHOD_CALL", "METHOD_DEF", "SUPER_CTOR_CALL", "ENUM_CONSTANT_DEF",
)

// MethodParamPad fixes the space between a method or constructor name and
// the parenthesis that opens its parameter or argument list.
type MethodParamPad struct {
	opts MethodParamPadOptions
}

// NewMethodParamPad builds a MethodParamPad fixer from m.
func NewMethodParamPad(m config.Module) (*MethodParamPad, error) {
	opts := MethodParamPadOptions{Option: config.NoSpace, Tokens: methodParamPadTokens}
	if err := config.DecodeModule("MethodParamPad", m, &opts, &opts.Tokens, methodParamPadTokens); err != nil {
		return nil, err
	}
	return &MethodParamPad{opts: opts}, nil
}

// Name returns the module name.
func (*MethodParamPad) Name() string { return "MethodParamPad" }

// Fix implements formatter.Fixer.
func (f *MethodParamPad) Fix(cu *parser.CompilationUnit, _ *scope.Unit) *parser.CompilationUnit {
	return parser.Rewrite(cu, func(_ *parser.Cursor, n parser.Node) parser.Node {
		switch x := n.(type) {
		case *parser.MethodDecl:
			token := "METHOD_DEF"
			if x.ReturnType == nil {
				token = "CTOR_DEF"
			}
			if args := f.pad(token, x.Params); args != x.Params {
				out := *x
				out.Params = args
				return &out
			}
		case *parser.MethodInvocation:
			token := "METHOD_CALL"
			if x.Target == nil && x.Name.Name == "super" {
				token = "SUPER_CTOR_CALL"
			}
			if args := f.pad(token, x.Args); args != x.Args {
				out := *x
				out.Args = args
				return &out
			}
		case *parser.NewClass:
			if args := f.pad("LITERAL_NEW", x.Args); args != x.Args {
				out := *x
				out.Args = args
				return &out
			}
		case *parser.EnumValue:
			if args := f.pad("ENUM_CONSTANT_DEF", x.Args); args != x.Args {
				out := *x
				out.Args = args
				return &out
			}
		}
		return n
	})
}

func (f *MethodParamPad) pad(token string, a *parser.Args) *parser.Args {
	if a == nil || !f.opts.Tokens.Has(token) {
		return a
	}
	return parser.WithPrefix(a, set(a.Prefix, padding(f.opts.Option), f.opts.AllowLineBreaks))
}
