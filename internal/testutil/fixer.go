package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stylefix/internal/formatter"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// Java strips the common indentation of a raw string literal and the blank
// first line, so that Java sources can be written indented in Go tests.
func Java(src string) string {
	src = strings.TrimPrefix(src, "\n")
	lines := strings.Split(src, "\n")
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ind := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || ind < common {
			common = ind
		}
	}
	for i, line := range lines {
		if len(line) >= common && common > 0 {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \t")
}

// Parse parses src and fails the test on error.
func Parse(t *testing.T, src string) *parser.CompilationUnit {
	t.Helper()
	cu, err := parser.Parse(src)
	require.NoError(t, err, "parsing:\n%s", src)
	return cu
}

// Fix parses src, applies f and returns the printed result. Sources in
// deps join the resolution unit so that supertypes declared there resolve.
func Fix(t *testing.T, f formatter.Fixer, src string, deps ...string) string {
	t.Helper()
	cu := Parse(t, src)
	unit := unitOf(t, cu, deps)
	return formatter.Write(formatter.Apply(f, cu, unit).Tree)
}

func unitOf(t *testing.T, cu *parser.CompilationUnit, deps []string) *scope.Unit {
	t.Helper()
	files := []*parser.CompilationUnit{cu}
	for _, d := range deps {
		files = append(files, Parse(t, Java(d)))
	}
	return scope.NewUnit(files...)
}

// AssertFix checks that f turns before into after, that the result still
// parses and that a second application changes nothing.
func AssertFix(t *testing.T, f formatter.Fixer, before, after string, deps ...string) {
	t.Helper()
	before, after = Java(before), Java(after)

	got := Fix(t, f, before, deps...)
	assert.Equal(t, after, got)

	cu, err := parser.Parse(got)
	require.NoError(t, err, "fixed output does not parse:\n%s", got)
	again := formatter.Apply(f, cu, unitOf(t, cu, deps))
	assert.Equal(t, got, formatter.Write(again.Tree), "fixer is not idempotent")
}

// AssertUnchanged checks that f returns its input tree untouched.
func AssertUnchanged(t *testing.T, f formatter.Fixer, src string, deps ...string) {
	t.Helper()
	src = Java(src)
	cu := Parse(t, src)
	r := formatter.Apply(f, cu, unitOf(t, cu, deps))
	assert.False(t, r.Changed, "unexpected change:\n%s", formatter.Write(r.Tree))
	assert.Equal(t, src, formatter.Write(r.Tree))
}
