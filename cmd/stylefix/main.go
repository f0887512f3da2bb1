// Package main is the entry point for stylefix.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/donaldgifford/stylefix/internal/rules" // Register fixers via init().
	"github.com/donaldgifford/stylefix/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs the root command with args and returns the exit code.
func execute(ctx context.Context, args []string) int {
	code := runner.ExitOK
	opts := &runner.Options{}
	var verbose bool

	cmd := &cobra.Command{
		Use:   "stylefix [flags] [paths...]",
		Short: "Fix Java style violations in place",
		Long: `stylefix rewrites Java sources so that they satisfy the configured
checkstyle modules. Directories are searched for .java files. With no
paths, stylefix reads standard input and writes the result to standard
output.`,
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			log.SetLevel(logrus.WarnLevel)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			opts.Paths = args
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			opts.Logger = log
			code = runner.Run(cmd.Context(), opts)
			return nil
		},
	}
	cmd.SetVersionTemplate("stylefix {{.Version}}\n")

	f := cmd.Flags()
	f.BoolVar(&opts.Check, "check", false, "exit 1 if any file would change")
	f.BoolVar(&opts.Diff, "diff", false, "print a unified diff of the changes")
	f.BoolVarP(&opts.Write, "write", "w", false, "write the result back to each file (default for paths; combines with --check and --diff)")
	f.StringVar(&opts.ConfigPath, "config", "", "path to the config file")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "do not list files in check mode")
	f.BoolVarP(&verbose, "verbose", "v", false, "log each fixer decision")
	f.IntVar(&opts.Workers, "workers", 0, "files fixed in parallel (default: config, then one per CPU)")
	f.StringArrayVar(&opts.Exclude, "exclude", nil, "doublestar glob of paths to skip (repeatable)")
	f.StringVar(&opts.Color, "color", runner.ColorAuto, "colorize diffs (auto|on|off)")

	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "stylefix: %v\n", err)
		return runner.ExitError
	}
	return code
}
