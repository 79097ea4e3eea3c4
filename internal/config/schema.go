package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Seed     string         `yaml:"seed,omitempty" env:"FAMILYTREE_SEED"`
	Server   ServerConfig   `yaml:"server"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Watch    WatchConfig    `yaml:"watch"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr" env:"FAMILYTREE_ADDR" validate:"required"`
}

// SnapshotConfig holds SQLite snapshot settings.
// An empty path disables snapshots.
type SnapshotConfig struct {
	Path string `yaml:"path,omitempty" env:"FAMILYTREE_SNAPSHOT"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce Duration `yaml:"debounce" env:"FAMILYTREE_WATCH_DEBOUNCE" validate:"gt=0"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Verbose bool `yaml:"verbose" env:"FAMILYTREE_VERBOSE"`
}

// Duration wraps time.Duration for YAML and environment parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
