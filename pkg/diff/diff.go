// Package diff renders line-based unified diffs, optionally coloured for a
// terminal.
package diff

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

// Op is the kind of a diff line; its value is the line's marker.
type Op byte

// Diff line kinds.
const (
	Keep   Op = ' '
	Delete Op = '-'
	Insert Op = '+'
)

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
	// NoEOL marks the last line of a text that does not end in a newline.
	NoEOL bool
}

// Hunk is a run of changed lines with their surrounding context. Starts
// are 1-based line numbers.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Header returns the "@@ -a,b +c,d @@" line of h.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", span(h.OldStart, h.OldLines), span(h.NewStart, h.NewLines))
}

func span(start, n int) string {
	if n == 1 {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d,%d", start, n)
}

// Hunks compares oldText and newText line by line. Identical texts have
// no hunks.
func Hunks(oldText, newText string) []Hunk {
	if oldText == newText {
		return nil
	}
	a, b := splitLines(oldText), splitLines(newText)
	return group(script(a, b), a, b)
}

// Unified returns the plain unified diff of the file at path, or "" when
// the texts are identical.
func Unified(path, oldText, newText string) string {
	var b strings.Builder
	_, _ = NewPrinter(false).Fprint(&b, path, oldText, newText)
	return b.String()
}

// Printer writes unified diffs.
type Printer struct {
	file, hunk, del, ins *color.Color
}

// NewPrinter returns a Printer that colours its output when colored is
// set, regardless of the global color settings.
func NewPrinter(colored bool) *Printer {
	p := &Printer{
		file: color.New(color.Bold),
		hunk: color.New(color.FgCyan),
		del:  color.New(color.FgRed),
		ins:  color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.file, p.hunk, p.del, p.ins} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Fprint writes the diff of the file at path to w and reports whether the
// texts differ.
func (p *Printer) Fprint(w io.Writer, path, oldText, newText string) (bool, error) {
	hunks := Hunks(oldText, newText)
	if len(hunks) == 0 {
		return false, nil
	}
	var b strings.Builder
	b.WriteString(p.file.Sprint("--- a/"+path) + "\n")
	b.WriteString(p.file.Sprint("+++ b/"+path) + "\n")
	for _, h := range hunks {
		b.WriteString(p.hunk.Sprint(h.Header()) + "\n")
		for _, l := range h.Lines {
			text := string(l.Op) + l.Text
			switch l.Op {
			case Delete:
				text = p.del.Sprint(text)
			case Insert:
				text = p.ins.Sprint(text)
			}
			b.WriteString(text + "\n")
			if l.NoEOL {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return true, err
}

// splitLines splits s into lines without their newlines. The last line
// keeps a trailing "\r" if any; an empty string has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		// Mark the unterminated last line so that it never equals a
		// terminated one.
		lines[len(lines)-1] += noEOL
	}
	return lines
}

// noEOL cannot occur inside a line of text.
const noEOL = "\n"

// step is one operation of an edit script. a and b index the old and new
// lines; the index of the side a step does not touch is -1.
type step struct {
	op   Op
	a, b int
}

// script returns a shortest edit script turning a into b, following
// Myers' O(ND) algorithm.
func script(a, b []string) []step {
	n, m := len(a), len(b)
	limit := n + m
	off := limit + 1
	v := make([]int, 2*limit+3)
	var trace [][]int

	for d := 0; d <= limit; d++ {
		trace = append(trace, slices.Clone(v))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[off+k-1] < v[off+k+1]) {
				x = v[off+k+1]
			} else {
				x = v[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[off+k] = x
			if x >= n && y >= m {
				return walkBack(trace, n, m, off)
			}
		}
	}
	return nil
}

// walkBack rebuilds the edit script from the saved frontiers. trace[d]
// holds the frontier reached after d-1 edits.
func walkBack(trace [][]int, n, m, off int) []step {
	x, y := n, m
	var out []step
	for d := len(trace) - 1; d > 0; d-- {
		v := trace[d]
		k := x - y
		down := k == -d || (k != d && v[off+k-1] < v[off+k+1])
		prevK := k - 1
		if down {
			prevK = k + 1
		}
		px := v[off+prevK]
		py := px - prevK
		for x > px && y > py {
			x--
			y--
			out = append(out, step{op: Keep, a: x, b: y})
		}
		if down {
			y--
			out = append(out, step{op: Insert, a: -1, b: y})
		} else {
			x--
			out = append(out, step{op: Delete, a: x, b: -1})
		}
	}
	for x > 0 && y > 0 {
		x--
		y--
		out = append(out, step{op: Keep, a: x, b: y})
	}
	slices.Reverse(out)
	return out
}

// group cuts the script into hunks. Changes separated by no more than
// twice the context share a hunk.
func group(steps []step, a, b []string) []Hunk {
	var hunks []Hunk
	for i := 0; i < len(steps); {
		if steps[i].op == Keep {
			i++
			continue
		}
		last := i
		for j := i + 1; j < len(steps) && j-last <= 2*Context+1; j++ {
			if steps[j].op != Keep {
				last = j
			}
		}
		start := max(i-Context, 0)
		stop := min(last+Context+1, len(steps))
		hunks = append(hunks, hunk(steps, start, stop, a, b))
		i = stop
	}
	return hunks
}

func hunk(steps []step, start, stop int, a, b []string) Hunk {
	var h Hunk
	for _, s := range steps[start:stop] {
		var text string
		switch s.op {
		case Keep:
			h.OldLines++
			h.NewLines++
			text = a[s.a]
		case Delete:
			h.OldLines++
			text = a[s.a]
		case Insert:
			h.NewLines++
			text = b[s.b]
		}
		line := Line{Op: s.op, Text: strings.TrimSuffix(text, noEOL)}
		line.NoEOL = line.Text != text
		h.Lines = append(h.Lines, line)
	}
	h.OldStart = position(steps, start, func(s step) int { return s.a }, len(a))
	h.NewStart = position(steps, start, func(s step) int { return s.b }, len(b))
	if h.OldLines > 0 {
		h.OldStart++
	}
	if h.NewLines > 0 {
		h.NewStart++
	}
	return h
}

// position returns the 0-based index, on one side, of the first line at or
// after steps[from] that exists on that side.
func position(steps []step, from int, side func(step) int, total int) int {
	for _, s := range steps[from:] {
		if i := side(s); i >= 0 {
			return i
		}
	}
	return total
}
