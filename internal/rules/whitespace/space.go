// Package whitespace implements fixers that only adjust the whitespace next
// to tokens. They never change the shape of the syntax tree.
package whitespace

import (
	"slices"
	"strings"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/parser"
)

// set returns want in place of s. A space holding a comment is kept, and so
// is a line break when keepBreaks is set.
func set(s, want parser.Space, keepBreaks bool) parser.Space {
	if s.HasComment() || (keepBreaks && s.HasNewline()) {
		return s
	}
	return want
}

// padding returns the space a pad policy asks for.
func padding(p config.PadPolicy) parser.Space {
	if p == config.Space {
		return " "
	}
	return ""
}

// edit records whether any space of a copied node was changed, so that a
// callback can return the original node when nothing moved.
type edit struct {
	changed bool
}

func (e *edit) space(s *parser.Space, want parser.Space, keepBreaks bool) {
	if out := set(*s, want, keepBreaks); out != *s {
		*s = out
		e.changed = true
	}
}

// prefix sets the prefix of the node held by n.
func prefix[T parser.Node](e *edit, n *T, want parser.Space, keepBreaks bool) {
	s := parser.Prefix(*n)
	if out := set(s, want, keepBreaks); out != s {
		*n = parser.WithPrefix(*n, out)
		e.changed = true
	}
}

// elems returns a copy of es that may be edited in place.
func elems(es []parser.Elem) []parser.Elem {
	return slices.Clone(es)
}

// indentBy indents every line of n after its first by add.
func indentBy(n parser.Node, add string) parser.Node {
	return parser.MapSpaces(n, func(s parser.Space) parser.Space {
		if !s.HasNewline() {
			return s
		}
		lines := strings.Split(string(s), "\n")
		for i := 1; i < len(lines); i++ {
			if lines[i] != "" || i == len(lines)-1 {
				lines[i] = add + lines[i]
			}
		}
		return parser.Space(strings.Join(lines, "\n"))
	})
}
