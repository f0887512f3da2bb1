// Package config defines the configuration types and defaults for stylefix
// and resolves per-module properties into typed fixer options.
package config

import (
	"sort"
	"strings"
)

// Config is the top-level configuration.
type Config struct {
	// Modules maps a module name to its raw properties. A nil map enables
	// every module with default options.
	Modules map[string]map[string]string `koanf:"-"`

	// Exclude lists doublestar globs of paths to skip.
	Exclude []string `koanf:"exclude"`

	// Workers bounds the number of files rewritten in parallel; 0 means
	// one per CPU.
	Workers int `koanf:"workers"`

	// MaxPasses caps the number of full pipeline passes per file.
	MaxPasses int `koanf:"max_passes"`

	// Verify re-parses the output of each fixer and discards output that
	// no longer parses.
	Verify bool `koanf:"verify"`

	// ConfigFile is the path of the file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Module is the raw configuration of one fixer.
type Module struct {
	Name  string
	Props map[string]string
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Workers:   0,
		MaxPasses: 3,
		Verify:    true,
	}
}

// Enabled reports whether the named module should run.
func (c *Config) Enabled(name string) bool {
	if c.Modules == nil {
		return true
	}
	_, ok := c.lookup(name)
	return ok
}

// Module returns the properties configured for name. Module names match
// case-insensitively so that environment overrides, which are lower-cased,
// address the same module as the file.
func (c *Config) Module(name string) Module {
	props, _ := c.lookup(name)
	return Module{Name: name, Props: props}
}

func (c *Config) lookup(name string) (map[string]string, bool) {
	// Keys are merged in sorted order, so lower-cased environment keys
	// override the file's spelling.
	keys := make([]string, 0, len(c.Modules))
	for k := range c.Modules {
		if strings.EqualFold(k, name) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, false
	}
	if len(keys) == 1 {
		return c.Modules[keys[0]], true
	}
	sort.Strings(keys)
	merged := map[string]string{}
	for _, k := range keys {
		for p, v := range c.Modules[k] {
			merged[p] = v
		}
	}
	return merged, true
}
