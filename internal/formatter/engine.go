package formatter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/scope"
)

// DefaultMaxPasses bounds the number of full passes Run makes.
const DefaultMaxPasses = 3

// Options configures Run.
type Options struct {
	// MaxPasses caps the number of passes over the fixer list. Zero means
	// DefaultMaxPasses.
	MaxPasses int

	// Verify prints and re-parses the tree after every fixer and throws
	// away output that no longer parses.
	Verify bool

	// Logger receives per-fixer decisions. Nil discards them.
	Logger logrus.FieldLogger
}

// Run applies each fixer in order, piping the output of one as input to the
// next, and repeats the sequence until a pass changes nothing or MaxPasses
// is reached. unit is the resolution unit cu belongs to; nil means cu alone.
func Run(cu *parser.CompilationUnit, unit *scope.Unit, fixers []Fixer, opts Options) (Result, error) {
	if cu == nil {
		return Result{}, fmt.Errorf("formatter: nil tree")
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	passes := opts.MaxPasses
	if passes <= 0 {
		passes = DefaultMaxPasses
	}

	unit = scope.For(unit, cu)
	result := Result{Tree: cu}
	for pass := 1; pass <= passes; pass++ {
		changed := false
		for _, f := range fixers {
			before := result.Tree
			r := Apply(f, before, unit)
			if !r.Changed {
				continue
			}
			if opts.Verify {
				if _, err := parser.Parse(Write(r.Tree)); err != nil {
					log.WithFields(logrus.Fields{
						"fixer": f.Name(),
						"pass":  pass,
					}).WithError(err).Warn("discarding fixer output that does not parse")
					continue
				}
			}
			log.WithFields(logrus.Fields{
				"fixer": f.Name(),
				"pass":  pass,
			}).Debug("fixer changed tree")
			unit = unit.Replace(before, r.Tree)
			result.Tree = r.Tree
			changed = true
		}
		if !changed {
			return result, nil
		}
		result.Changed = true
	}
	return result, nil
}
