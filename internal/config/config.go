// Package config loads compiler configuration from file, environment
// variables, and command-line flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "prql.yaml"
	ConfigFileNameAlt = "prql.yml"
)

// Default configuration values.
const (
	DefaultTarget = "sql"
	DefaultOutput = "auto" // Auto-detect: TTY=table, non-TTY=markdown
)

// Config holds all CLI configuration options.
type Config struct {
	// Target is the compilation target: "sql" or "sql.<dialect>".
	Target string `koanf:"target"`

	// Format enables multi-line SQL output.
	Format bool `koanf:"format"`

	// Signature appends the compiler signature comment.
	Signature bool `koanf:"signature"`

	// Database is the SQLite database queried by the query command. Empty
	// means in-memory.
	Database string `koanf:"database"`

	// Output selects how query results render: auto, table, json, csv, md.
	Output string `koanf:"output"`

	Verbose bool `koanf:"verbose"`
}

var configFileUsed string

// GetConfigFileUsed returns the path of the config file consumed by the
// last Load, or empty when none was found.
func GetConfigFileUsed() string {
	return configFileUsed
}

// findConfigFile finds the config file to use.
// Priority: explicit path > prql.yaml > prql.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration. Flags may be nil; only flags that were
// explicitly set take part.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"target":    DefaultTarget,
		"format":    true,
		"signature": true,
		"database":  "",
		"output":    DefaultOutput,
		"verbose":   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables: PRQL_TARGET -> target
	if err := k.Load(env.Provider("PRQL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PRQL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, highest priority
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
