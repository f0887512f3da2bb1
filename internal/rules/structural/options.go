package structural

import (
	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
)

// decode resolves the properties of m into opts and checks the selected
// tokens, if any, against allowed.
func decode(name string, m config.Module, opts any, tokens *config.TokenSet, allowed config.TokenSet) error {
	return config.DecodeModule(name, m, opts, tokens, allowed)
}

// isClassBody reports whether the block at c is the body of a class,
// anonymous class or enum constant.
func isClassBody(c *parser.Cursor) bool {
	switch c.ParentNode().(type) {
	case *parser.ClassDecl, *parser.NewClass, *parser.EnumValue:
		return true
	}
	return false
}

// stmtIndent returns the indentation of statement n found in the list
// owned by c.
func stmtIndent(c *parser.Cursor, n parser.Node, unit string) string {
	if pre := parser.Prefix(n); pre.HasNewline() {
		return pre.Indent()
	}
	return parser.IndentOf(c) + unit
}
