package linter

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// configFile accepts both supported on-disk shapes: the native form
// (local_only / rules / fix) and the exported form produced by the rule
// configuration UI (version / enabledRules / customTemplates). YAML and
// JSON are both accepted since every JSON config is valid YAML.
type configFile struct {
	LocalOnly *bool    `yaml:"local_only"`
	Rules     []string `yaml:"rules"`
	Fix       *bool    `yaml:"fix"`

	Version         string            `yaml:"version"`
	EnabledRules    []string          `yaml:"enabledRules"`
	CustomTemplates map[string]string `yaml:"customTemplates"`
}

// LoadConfig reads a configuration file. Missing fields fall back to
// DefaultConfig; unreadable or malformed files yield a *ConfigError.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

func parseConfig(data []byte) (Config, error) {
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if file.LocalOnly != nil {
		cfg.LocalOnly = *file.LocalOnly
	}
	if file.Fix != nil {
		cfg.Fix = *file.Fix
	}
	switch {
	case file.Rules != nil:
		cfg.Rules = file.Rules
	case file.EnabledRules != nil:
		cfg.Rules = file.EnabledRules
	}

	if len(file.CustomTemplates) > 0 {
		// Template overrides only exist in the hosted product.
		log.Debug("ignoring customTemplates in config")
	}
	if file.Version != "" {
		log.WithField("version", file.Version).Debug("loaded exported rule config")
	}
	return cfg, nil
}
