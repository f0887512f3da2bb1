package formatter

import (
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// Fixer removes the violations of one style rule. Fixers are applied in
// registered order.
type Fixer interface {
	// Name returns the module name that configures this fixer (e.g.,
	// "NeedBraces").
	Name() string

	// Fix receives the full tree and the resolution unit it belongs to and
	// returns the fixed tree. Fixers must not mutate the input; unchanged
	// input is returned as the same pointer. A fixer that cannot rewrite a
	// node safely leaves it alone.
	Fix(cu *parser.CompilationUnit, unit *scope.Unit) *parser.CompilationUnit
}

// Result is the outcome of applying one or more fixers.
type Result struct {
	Tree    *parser.CompilationUnit
	Changed bool
}

// Apply runs a single fixer over cu.
func Apply(f Fixer, cu *parser.CompilationUnit, unit *scope.Unit) Result {
	out := f.Fix(cu, scope.For(unit, cu))
	if out == nil {
		out = cu
	}
	return Result{Tree: out, Changed: out != cu && Write(out) != Write(cu)}
}
