// Package config loads the toolkit's optional YAML config file and
// layers CLI flag overrides on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a user would otherwise have to repeat on
// every invocation: the lookup node address and the dashboard's default
// display filters.
type Config struct {
	LookupHost           string `yaml:"lookup_host"`
	LookupPort           int    `yaml:"lookup_port"`
	MetricsAddr          string `yaml:"metrics_addr"`
	DefaultHideHosts     bool   `yaml:"default_hide_hosts"`
	DefaultHideZeroDepth bool   `yaml:"default_hide_zero_depth"`
}

// Default returns the built-in fallback used when no config file exists
// and no flags were supplied.
func Default() Config {
	return Config{
		LookupHost:  "127.0.0.1",
		LookupPort:  4161,
		MetricsAddr: "",
	}
}

// DefaultPath returns ~/.config/nsq/config.yaml, the path checked when
// --config isn't given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "nsq", "config.yaml")
}

// Load reads path and merges it over Default(). A missing file at path
// is not an error when path is the default location — it simply means
// the user never created one; an explicitly named --config file that's
// missing is a config error.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
