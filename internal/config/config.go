// Package config provides configuration management for familytree.
//
// Values are layered: defaults, then the config file, then FAMILYTREE_*
// environment variables. Command-line flags are applied last by the CLI.
//
// Config file locations (priority order):
//  1. $FAMILYTREE_CONFIG
//  2. ./familytree.yaml
//  3. $XDG_CONFIG_HOME/familytree/config.yaml
//  4. ~/.config/familytree/config.yaml
//  5. /etc/familytree/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultAddr     = ":3000"
	defaultDebounce = 500 * time.Millisecond
)

var validate = validator.New()

// Load resolves the config file (explicit path first, then FindConfigPath),
// applies environment overrides and validates the result.
// The returned path is empty when no file was used.
func Load(explicitPath string) (*Config, string, error) {
	path := explicitPath
	if path == "" {
		path = FindConfigPath()
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, _, err := LoadFromPath(path)
		if err != nil {
			return nil, path, err
		}
		cfg = loaded
	}

	if err := env.Parse(cfg); err != nil {
		return nil, path, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server:  ServerConfig{Addr: defaultAddr},
		Watch:   WatchConfig{Debounce: Duration(defaultDebounce)},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(defaultDebounce)
	}
}

// Validate checks the config for values the CLI cannot run with
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	seed := c.Seed
	if seed == "" {
		seed = "built-in"
	}
	snapshot := c.Snapshot.Path
	if snapshot == "" {
		snapshot = "disabled"
	}
	return fmt.Sprintf("Seed: %s, Addr: %s, Snapshot: %s, Debounce: %s, Verbose: %v",
		seed, c.Server.Addr, snapshot, c.Watch.Debounce.Duration(), c.Log.Verbose)
}
