// Package runner orchestrates the discover -> parse -> fix -> output
// pipeline over a set of Java files.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/formatter"
	"github.com/donaldgifford/stylefix/internal/parser"
	"github.com/donaldgifford/stylefix/internal/rules"
	"github.com/donaldgifford/stylefix/internal/scope"
	"github.com/donaldgifford/stylefix/pkg/diff"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// Color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// stdinName labels standard input in diffs and messages.
const stdinName = "<stdin>"

// Options configures the runner behavior.
type Options struct {
	// Paths are files or directories; directories are searched
	// recursively for .java files. No paths means standard input.
	Paths []string
	Check bool
	Diff  bool
	// Write rewrites changed files in place. It is implied for paths
	// unless Check or Diff is set, and combines with either of them.
	Write bool

	ConfigPath string
	Quiet      bool

	// Workers overrides the configured worker count when positive.
	Workers int
	// Exclude adds doublestar globs to the configured ones.
	Exclude []string
	// Color is one of ColorAuto, ColorOn or ColorOff; empty means auto.
	Color string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger logrus.FieldLogger
}

// file is one input of a run.
type file struct {
	path string
	src  string
	cu   *parser.CompilationUnit
	out  string
	err  error
}

// Run executes the fix pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(opts.Stderr)
		opts.Logger = l
	}

	colored, err := colorEnabled(opts.Color, opts.Stdout)
	if err != nil {
		writeErr(opts.Stderr, "stylefix: %v\n", err)
		return ExitError
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "stylefix: %v\n", err)
		return ExitError
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	cfg.Exclude = append(cfg.Exclude, opts.Exclude...)
	if cfg.ConfigFile != "" {
		opts.Logger.WithField("config", cfg.ConfigFile).Debug("loaded configuration")
	}

	fixers, err := rules.Build(cfg, opts.Logger)
	if err != nil {
		writeErr(opts.Stderr, "stylefix: %v\n", err)
		return ExitError
	}

	r := &run{opts: opts, cfg: cfg, fixers: fixers, printer: diff.NewPrinter(colored)}
	if len(opts.Paths) == 0 {
		return r.stdin()
	}
	return r.files(ctx)
}

type run struct {
	opts    *Options
	cfg     *config.Config
	fixers  []formatter.Fixer
	printer *diff.Printer
}

func (r *run) stdin() int {
	src, err := io.ReadAll(r.opts.Stdin)
	if err != nil {
		writeErr(r.opts.Stderr, "stylefix: reading stdin: %v\n", err)
		return ExitError
	}
	f := &file{path: stdinName, src: string(src)}
	f.cu, f.err = parser.Parse(f.src)
	if f.err == nil {
		r.fix(f, nil)
	}
	if f.err != nil {
		writeErr(r.opts.Stderr, "stylefix: %s: %v\n", f.path, f.err)
		return ExitError
	}

	if r.opts.Check || r.opts.Diff {
		return r.report(f)
	}
	writeOut(r.opts.Stdout, f.out)
	return ExitOK
}

func (r *run) files(ctx context.Context) int {
	exitCode := ExitOK
	paths, errs := discover(r.opts.Paths, r.cfg.Exclude)
	for _, err := range errs {
		writeErr(r.opts.Stderr, "stylefix: %v\n", err)
		exitCode = ExitError
	}

	files := make([]*file, len(paths))
	for i, p := range paths {
		files[i] = &file{path: p}
	}

	// Every file is parsed before any is fixed: the whole run is one
	// resolution unit.
	if err := r.each(ctx, files, r.parse); err != nil {
		writeErr(r.opts.Stderr, "stylefix: %v\n", err)
		return ExitError
	}
	var cus []*parser.CompilationUnit
	for _, f := range files {
		if f.err == nil {
			cus = append(cus, f.cu)
		}
	}
	unit := scope.NewUnit(cus...)

	err := r.each(ctx, files, func(f *file) {
		if f.err == nil {
			r.fix(f, unit)
		}
	})
	if err != nil {
		writeErr(r.opts.Stderr, "stylefix: %v\n", err)
		return ExitError
	}

	for _, f := range files {
		code := r.finish(f)
		if code > exitCode {
			exitCode = code
		}
	}
	return exitCode
}

// each calls fn on every file with at most the configured number of
// goroutines. fn records failures on the file itself.
func (r *run) each(ctx context.Context, files []*file, fn func(*file)) error {
	g, ctx := errgroup.WithContext(ctx)
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)
	for _, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(f)
			return nil
		})
	}
	return g.Wait()
}

func (r *run) parse(f *file) {
	src, err := os.ReadFile(f.path)
	if err != nil {
		f.err = err
		return
	}
	f.src = string(src)
	f.cu, err = parser.Parse(f.src)
	if err != nil {
		f.err = fmt.Errorf("%s: %w", f.path, err)
	}
}

func (r *run) fix(f *file, unit *scope.Unit) {
	log := r.opts.Logger.WithField("file", f.path)
	res, err := formatter.Run(f.cu, unit, r.fixers, formatter.Options{
		MaxPasses: r.cfg.MaxPasses,
		Verify:    r.cfg.Verify,
		Logger:    log,
	})
	if err != nil {
		f.err = fmt.Errorf("fixing %s: %w", f.path, err)
		return
	}
	f.out = formatter.Write(res.Tree)
	log.WithField("changed", f.out != f.src).Debug("processed file")
}

// finish reports or writes the outcome of one file.
func (r *run) finish(f *file) int {
	if f.err != nil {
		writeErr(r.opts.Stderr, "stylefix: %v\n", f.err)
		return ExitError
	}
	code := ExitOK
	if r.opts.Check || r.opts.Diff {
		code = r.report(f)
		if !r.opts.Write {
			return code
		}
	}
	if f.src == f.out {
		return code
	}
	info, err := os.Stat(f.path)
	if err != nil {
		writeErr(r.opts.Stderr, "stylefix: %v\n", err)
		return ExitError
	}
	if err := os.WriteFile(f.path, []byte(f.out), info.Mode().Perm()); err != nil {
		writeErr(r.opts.Stderr, "stylefix: writing %s: %v\n", f.path, err)
		return ExitError
	}
	return code
}

// report handles check and diff mode.
func (r *run) report(f *file) int {
	if f.src == f.out {
		return ExitOK
	}
	if r.opts.Diff {
		if _, err := r.printer.Fprint(r.opts.Stdout, filepath.ToSlash(f.path), f.src, f.out); err != nil {
			writeErr(r.opts.Stderr, "stylefix: %v\n", err)
			return ExitError
		}
	} else if !r.opts.Quiet {
		writeErr(r.opts.Stderr, "%s\n", f.path)
	}
	return ExitFormatDiff
}

// discover expands paths into a sorted, de-duplicated list of files.
// Directories contribute their .java files; explicit files are taken
// as given. Paths matching an exclude glob are skipped in both cases.
func discover(paths, exclude []string) ([]string, []error) {
	var (
		out  []string
		errs []error
	)
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !info.IsDir() {
			if !excluded(root, "", exclude) {
				out = append(out, root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && excluded(path, root, exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && strings.HasSuffix(path, ".java") {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("walking %s: %w", root, err))
		}
	}
	slices.Sort(out)
	return slices.Compact(out), errs
}

// excluded matches path, and path relative to root, against the globs.
func excluded(path, root string, globs []string) bool {
	candidates := []string{filepath.ToSlash(filepath.Clean(path))}
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	for _, g := range globs {
		for _, c := range candidates {
			if ok, err := doublestar.Match(g, c); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case ColorOn:
		return true, nil
	case ColorOff:
		return false, nil
	case "", ColorAuto:
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, errors.New("--color must be auto, on or off")
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
