// Package config loads the CLI configuration in layers:
// defaults, then the config file, then NGAUDIT_ environment variables, then
// explicitly set flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	shared "github.com/leapstack-labs/ngaudit/internal/config"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/spf13/pflag"
)

// Config is the shared configuration document.
type Config = shared.Config

// EnvPrefix prefixes environment variables. A double underscore separates
// nested keys: NGAUDIT_ANALYSIS__SEVERITY sets analysis.severity.
const EnvPrefix = "NGAUDIT_"

// loggerKey is used to store the logger in a context.
type loggerKey struct{}

// configKey is used to store the loaded config in a context.
type configKey struct{}

// flagKeys maps flag names to config keys where they differ from the
// snake_case form of the flag.
var flagKeys = map[string]string{
	"format":         "output.formats",
	"out":            "output.path",
	"analyzers":      "analysis.analyzers",
	"full":           "analysis.full",
	"severity":       "analysis.severity",
	"max-complexity": "analysis.max_complexity",
	"depth":          "analysis.depth",
	"workers":        "analysis.workers",
	"root":           "analysis.root",
}

// LoadConfig loads configuration from defaults, the config file,
// environment variables and flags. Precedence (highest to lowest):
// flags > env vars > config file > defaults.
//
// Without an explicit cfgFile, ngaudit.yaml is searched for upward from the
// working directory. An explicit cfgFile that cannot be read is an error.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(shared.Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := cfgFile
	if used == "" {
		if cwd, err := os.Getwd(); err == nil {
			if root := shared.FindProjectRoot(cwd); root != "" {
				used = shared.FindConfigFile(root)
			}
		}
	}
	if used != "" {
		if err := shared.LoadFile(k, used); err != nil {
			return nil, err
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, core.NewConfigError("env", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return FlagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, core.NewConfigError("flags", err)
		}
	}

	cfg, err := shared.Unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = used
	return cfg, nil
}

// envKey transforms NGAUDIT_ANALYSIS__SEVERITY into analysis.severity.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// EnvVar returns the environment variable that sets a config key:
// analysis.severity becomes NGAUDIT_ANALYSIS__SEVERITY.
func EnvVar(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// FlagKey returns the config key a flag writes to.
func FlagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context. Without one it
// returns the defaults.
func GetConfig(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return shared.Default()
}
