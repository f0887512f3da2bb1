package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// configFileNames is the ordered list of config file names to search for.
var configFileNames = []string{
	"stylefix.yml",
	"stylefix.yaml",
	".stylefix.yml",
	".stylefix.yaml",
	"stylefix.toml",
	".stylefix.toml",
	"checkstyle.xml",
}

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "STYLEFIX_"

// Discover returns the path of the first config file found in dir,
// following the standard search order. It returns an empty string if
// no config file is found.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads and merges the configuration layers: defaults, then the config
// file, then STYLEFIX_* environment variables. If configPath is empty, Load
// searches the current working directory using Discover. If no config file
// is found, the defaults and environment alone are used.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		configPath = Discover(wd)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
		if err := k.Load(file.Provider(configPath), parserFor(configPath)); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	}

	// STYLEFIX_MAX_PASSES -> max_passes
	// STYLEFIX_MODULES__NEEDBRACES__ALLOWSINGLELINE -> modules.needbraces.allowsingleline
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	modules, err := modulesFrom(k.Get("modules"))
	if err != nil {
		return nil, err
	}
	cfg.Modules = modules
	if cfg.MaxPasses < 1 {
		return nil, fmt.Errorf("max_passes must be at least 1, got %d", cfg.MaxPasses)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	cfg.ConfigFile = configPath
	return cfg, nil
}

// LoadFile reads and parses a config from the given path. Unlike Load, it
// does not perform discovery when path is empty.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	return Load(path)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser()
	case ".xml":
		return checkstyleParser{}
	}
	return yamlParser{}
}

var envTopLevelKeys = map[string]bool{
	"modules":    true,
	"exclude":    true,
	"workers":    true,
	"max_passes": true,
	"verify":     true,
}

// envKeyTransform converts environment variable names to config keys. A
// double underscore separates levels; a single underscore stays part of
// the key.
func envKeyTransform(k, v string) (string, any) {
	s := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	s = strings.ReplaceAll(s, "__", ".")
	top, _, _ := strings.Cut(s, ".")
	if !envTopLevelKeys[top] {
		return "", nil
	}
	if s == "exclude" {
		return s, strings.Split(v, ",")
	}
	return s, v
}

// modulesFrom flattens the raw modules table into string properties. A
// module given without properties is enabled with its defaults.
func modulesFrom(raw any) (map[string]map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("modules: want a table, got %T", raw)
	}
	out := make(map[string]map[string]string, len(table))
	for name, v := range table {
		props := map[string]string{}
		switch p := v.(type) {
		case nil:
		case map[string]any:
			for key, val := range p {
				s, err := propString(val)
				if err != nil {
					return nil, &Error{Module: name, Property: key, Err: err}
				}
				props[key] = s
			}
		default:
			return nil, &Error{Module: name, Err: fmt.Errorf("want a table of properties, got %T", v)}
		}
		out[name] = props
	}
	return out, nil
}

// propString renders a scalar or list property value the way the
// checkstyle XML format spells it.
func propString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			s, err := propString(e)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	case []string:
		return strings.Join(x, ","), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}

// ModuleNames returns the configured module names in sorted order.
func (c *Config) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for n := range c.Modules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
