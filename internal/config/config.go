// Package config provides reading and writing of mpdtags configuration.
// Supports both global (~/.mpdtags/config.yaml) and local (.mpdtags/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.mpdtags/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is library-specific config in .mpdtags/config.yaml
	ScopeLocal
)

// MPD holds the daemon connection settings.
type MPD struct {
	Host     string `yaml:"host,omitempty"`
	Port     *int   `yaml:"port,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Tags holds the comma-separated category lists.
type Tags struct {
	List   *string `yaml:"list,omitempty"`
	Search *string `yaml:"search,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxValues *int `yaml:"max_values,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultHost       = "localhost"
	DefaultPort       = 6600
	DefaultTagList    = "Artist,Album,AlbumArtist,Title,Track,Genre,Date"
	DefaultSearchList = "Artist,Album,AlbumArtist,Title,Genre,Composer,Performer"
	DefaultMaxValues  = 512
)

// Validation bounds for configuration values.
const (
	MinPort      = 1
	MaxPort      = 65535
	MinMaxValues = 0 // 0 disables the cap
	MaxMaxValues = 1 << 16
)

// Config contains configuration for mpdtags.
type Config struct {
	MPD    MPD    `yaml:"mpd,omitempty"`
	Tags   Tags   `yaml:"tags,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.MPD.Port != nil {
		v := *c.MPD.Port
		if v < MinPort || v > MaxPort {
			return fmt.Errorf("%w: mpd.port must be between %d and %d, got %d",
				ErrInvalidValue, MinPort, MaxPort, v)
		}
	}
	if c.Limits.MaxValues != nil {
		v := *c.Limits.MaxValues
		if v < MinMaxValues || v > MaxMaxValues {
			return fmt.Errorf("%w: max_values must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxValues, MaxMaxValues, v)
		}
	}
	return nil
}

// Host returns the daemon host (defaults to localhost).
func (c *Config) Host() string {
	if c.MPD.Host == "" {
		return DefaultHost
	}
	return c.MPD.Host
}

// Port returns the daemon port (defaults to 6600).
func (c *Config) Port() int {
	if c.MPD.Port == nil {
		return DefaultPort
	}
	return *c.MPD.Port
}

// Addr returns the dial address. A host starting with "/" is a unix socket
// path and is returned unchanged.
func (c *Config) Addr() string {
	h := c.Host()
	if filepath.IsAbs(h) {
		return h
	}
	return net.JoinHostPort(h, strconv.Itoa(c.Port()))
}

// TagList returns the enabled tag list.
func (c *Config) TagList() string {
	if c.Tags.List == nil {
		return DefaultTagList
	}
	return *c.Tags.List
}

// SearchList returns the searchable tag list.
func (c *Config) SearchList() string {
	if c.Tags.Search == nil {
		return DefaultSearchList
	}
	return *c.Tags.Search
}

// MaxValues returns the per-category value cap (defaults to 512).
// Zero means unlimited.
func (c *Config) MaxValues() int {
	if c.Limits.MaxValues == nil {
		return DefaultMaxValues
	}
	return *c.Limits.MaxValues
}

// LocalPath returns the path to the local (library) config file.
func LocalPath() string {
	return filepath.Join(".mpdtags", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.mpdtags/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mpdtags", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadPath(path, scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	// The file may hold the daemon password.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
