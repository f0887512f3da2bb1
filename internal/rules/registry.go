// Package rules is the fixer catalog: it knows how to build each module
// from its configuration and the order in which the pipeline runs them.
package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/donaldgifford/stylefix/internal/config"
	"github.com/donaldgifford/stylefix/internal/formatter"
)

// Factory builds a fixer from the configuration of its module.
type Factory func(config.Module) (formatter.Fixer, error)

var (
	factories = map[string]Factory{}
	order     []string
)

// Register adds a fixer under the module name. Fixers run in the order they
// are registered.
func Register(name string, f Factory) {
	if _, dup := factories[name]; dup {
		panic(fmt.Sprintf("rules: module %s registered twice", name))
	}
	factories[name] = f
	order = append(order, name)
}

// Names returns the registered module names in execution order.
func Names() []string {
	return slices.Clone(order)
}

// Known reports whether name, compared case-insensitively, is a registered
// module.
func Known(name string) bool {
	return slices.ContainsFunc(order, func(n string) bool {
		return strings.EqualFold(n, name)
	})
}

// Build constructs the fixers cfg enables, in execution order. Configured
// modules that no fixer implements are logged and skipped. The first
// module whose properties do not resolve fails the build.
func Build(cfg *config.Config, log logrus.FieldLogger) ([]formatter.Fixer, error) {
	for _, name := range cfg.ModuleNames() {
		if !Known(name) {
			log.WithField("module", name).Warn("ignoring unknown module")
		}
	}
	var fixers []formatter.Fixer
	for _, name := range order {
		if !cfg.Enabled(name) {
			continue
		}
		f, err := factories[name](cfg.Module(name))
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", name, err)
		}
		fixers = append(fixers, f)
	}
	return fixers, nil
}

// fixer adapts a typed constructor to a Factory.
func fixer[T formatter.Fixer](build func(config.Module) (T, error)) Factory {
	return func(m config.Module) (formatter.Fixer, error) {
		f, err := build(m)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}
