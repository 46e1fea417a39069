package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "ngaudit.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "ngaudit.yml"

// maxUpwardSearchLevels limits how far up the directory tree FindProjectRoot
// looks.
const maxUpwardSearchLevels = 10

// LoadFromDir loads the config file found in dir over the defaults.
// Without a config file the defaults are returned.
func LoadFromDir(dir string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := FindConfigFile(dir)
	if path != "" {
		if err := LoadFile(k, path); err != nil {
			return nil, err
		}
	}

	cfg, err := Unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = path
	return cfg, nil
}

// LoadFile loads a YAML or JSON config document into k. An unreadable or
// malformed document is a configuration error.
func LoadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return core.NewConfigError(path, err)
	}
	return nil
}

// Unmarshal decodes and validates the merged configuration in k.
func Unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, core.NewConfigError("decode", err)
	}
	for name, p := range cfg.Profiles {
		p.Name = name
		cfg.Profiles[name] = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfigFile returns the config file in dir, or "" if there is none.
func FindConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir to the first directory holding a
// config file. It returns "" if none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if FindConfigFile(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
