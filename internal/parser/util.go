package parser

import (
	"reflect"
	"strings"
)

// Equal reports whether a and b are structurally identical, ignoring all
// whitespace and comments.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	blank := func(Space) Space { return "" }
	return reflect.DeepEqual(mapSpaces(a, RoleNone, blank), mapSpaces(b, RoleNone, blank))
}

// SpansMultipleLines reports whether n contains a line break after its first
// token.
func SpansMultipleLines(n Node) bool {
	found := false
	mapChildren(n, RoleNone, func(child Node, r Role) Node {
		mapSpaces(child, r, func(s Space) Space {
			if s.HasNewline() {
				found = true
			}
			return s
		})
		return child
	}, func(s Space) Space {
		if s.HasNewline() {
			found = true
		}
		return s
	})
	if found {
		return true
	}
	Walk(n, func(c *Cursor) bool {
		if lit, ok := c.Node.(*Literal); ok && strings.Contains(lit.Text, "\n") {
			found = true
		}
		return !found
	})
	return found
}

// IndentOf returns the indentation of the line on which the node at c
// starts.
func IndentOf(c *Cursor) string {
	for p := c; p != nil; p = p.Parent {
		if s := Prefix(p.Node); s.HasNewline() {
			return s.Indent()
		}
	}
	return ""
}

// IndentUnit guesses the indentation step used by cu: a tab when any line
// is tab indented, otherwise the smallest indentation found, defaulting to
// four spaces.
func IndentUnit(cu *CompilationUnit) string {
	smallest := ""
	tabs := false
	MapSpaces(cu, func(s Space) Space {
		if !s.HasNewline() {
			return s
		}
		for _, line := range strings.Split(string(s), "\n")[1:] {
			ind := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			if ind == "" || ind != line {
				continue
			}
			if strings.HasPrefix(ind, "\t") {
				tabs = true
			} else if smallest == "" || len(ind) < len(smallest) {
				smallest = ind
			}
		}
		return s
	})
	switch {
	case tabs:
		return "\t"
	case smallest == "":
		return "    "
	}
	return smallest
}
