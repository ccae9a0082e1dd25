// Package config loads testrig's own configuration: embedded defaults,
// an optional config file in the working directory, then TESTRIG_*
// environment variables. This is CLI configuration only; run-settings
// documents are handled by pkg/runsettings.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	rigerrors "github.com/testrig-dev/testrig/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Config holds testrig's CLI configuration
type Config struct {
	Adapters AdaptersConfig `koanf:"adapters" toml:"adapters"`
	Run      RunConfig      `koanf:"run" toml:"run"`
}

// AdaptersConfig configures adapter discovery
type AdaptersConfig struct {
	// DefaultPaths is a semicolon-delimited list of adapter directories
	// applied before any command-line flags
	DefaultPaths string `koanf:"default_paths" toml:"default_paths"`
}

// RunConfig configures run defaults
type RunConfig struct {
	// SettingsFile is the run-settings file used when --settings is absent
	SettingsFile string `koanf:"settings_file" toml:"settings_file"`
}

// candidate config files, checked in order; first hit wins
var configFiles = []struct {
	name   string
	parser koanf.Parser
}{
	{".testrig.toml", toml.Parser()},
	{"testrig.toml", toml.Parser()},
	{".testrig.yaml", yaml.Parser()},
	{"testrig.yaml", yaml.Parser()},
}

// Load builds the effective configuration for the given directory.
// Overrides, when non-nil, are applied last (the CLI uses them to push
// flag-level values).
func Load(dir string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, rigerrors.Wrap(err, rigerrors.ErrConfigLoad, "failed to load default configuration")
	}

	// 2. Config file in the working directory, if present
	for _, cf := range configFiles {
		path := filepath.Join(dir, cf.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), cf.parser); err != nil {
			return nil, rigerrors.Wrapf(err, rigerrors.ErrConfigParse, "failed to parse config file %s", path)
		}
		break
	}

	// 3. Environment variables. Double underscore separates nesting so
	// single underscores survive in key names:
	// TESTRIG_ADAPTERS__DEFAULT_PATHS -> adapters.default_paths
	err := k.Load(env.Provider("TESTRIG_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "TESTRIG_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, rigerrors.Wrap(err, rigerrors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Explicit overrides
	if overrides != nil {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, rigerrors.Wrap(err, rigerrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, rigerrors.Wrap(err, rigerrors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
