// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go handles YAML structure and loading; this file
// serves the CLI and MCP, where settings are addressed by string keys
// (e.g., "tags.list").
//
// Design: Pointers are used for optional fields so "not set" (nil) differs
// from "explicitly set to zero/empty". tags.list set to "" disables every
// tag, which is not the same as falling back to the default list.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"mpd.host", "mpd.port", "mpd.password",
		"tags.list", "tags.search",
		"limits.max_values",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "mpd.host":
		return c.Host(), nil
	case "mpd.port":
		return strconv.Itoa(c.Port()), nil
	case "mpd.password":
		return c.MPD.Password, nil
	case "tags.list":
		return c.TagList(), nil
	case "tags.search":
		return c.SearchList(), nil
	case "limits.max_values":
		return strconv.Itoa(c.MaxValues()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "mpd.host":
		c.MPD.Host = value
	case "mpd.port":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinPort || n > MaxPort {
			return fmt.Errorf("%w: mpd.port must be between %d and %d", ErrInvalidValue, MinPort, MaxPort)
		}
		c.MPD.Port = &n
	case "mpd.password":
		c.MPD.Password = value
	case "tags.list":
		c.Tags.List = &value
	case "tags.search":
		c.Tags.Search = &value
	case "limits.max_values":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxValues || n > MaxMaxValues {
			return fmt.Errorf("%w: limits.max_values must be between %d and %d", ErrInvalidValue, MinMaxValues, MaxMaxValues)
		}
		c.Limits.MaxValues = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map. The password is masked.
func (c *Config) All() map[string]string {
	pw := ""
	if c.MPD.Password != "" {
		pw = "********"
	}
	return map[string]string{
		"mpd.host":          c.Host(),
		"mpd.port":          strconv.Itoa(c.Port()),
		"mpd.password":      pw,
		"tags.list":         c.TagList(),
		"tags.search":       c.SearchList(),
		"limits.max_values": strconv.Itoa(c.MaxValues()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "mpd.host":
		return c.MPD.Host != ""
	case "mpd.port":
		return c.MPD.Port != nil
	case "mpd.password":
		return c.MPD.Password != ""
	case "tags.list":
		return c.Tags.List != nil
	case "tags.search":
		return c.Tags.Search != nil
	case "limits.max_values":
		return c.Limits.MaxValues != nil
	default:
		return false
	}
}
