// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the JSON settings file and exposes dotted-path
// lookups with caller-supplied defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config wraps a settings document loaded once per run. Lookups never fail:
// a missing key or a value of the wrong type yields the caller's default.
// The only mutation is Set, used for CLI-argument overrides before first use.
type Config struct {
	v *viper.Viper
}

// Load reads the settings file at path. A missing or malformed file is an
// error; callers treat it as fatal at startup.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return &Config{v: v}, nil
}

// Set overrides a key. CLI flags go through here before the value is read.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// String returns the string at the dotted key, or def when the key is
// absent or not a string-like value.
func (c *Config) String(key, def string) string {
	if !c.v.IsSet(key) {
		return def
	}
	s, err := cast.ToStringE(c.v.Get(key))
	if err != nil {
		return def
	}
	return s
}

// Int returns the integer at the dotted key, or def.
func (c *Config) Int(key string, def int) int {
	if !c.v.IsSet(key) {
		return def
	}
	n, err := cast.ToIntE(c.v.Get(key))
	if err != nil {
		return def
	}
	return n
}

// Float returns the float at the dotted key, or def.
func (c *Config) Float(key string, def float64) float64 {
	if !c.v.IsSet(key) {
		return def
	}
	f, err := cast.ToFloat64E(c.v.Get(key))
	if err != nil {
		return def
	}
	return f
}

// Bool returns the boolean at the dotted key, or def.
func (c *Config) Bool(key string, def bool) bool {
	if !c.v.IsSet(key) {
		return def
	}
	b, err := cast.ToBoolE(c.v.Get(key))
	if err != nil {
		return def
	}
	return b
}

// Strings returns the string slice at the dotted key, or def.
func (c *Config) Strings(key string, def []string) []string {
	if !c.v.IsSet(key) {
		return def
	}
	s, err := cast.ToStringSliceE(c.v.Get(key))
	if err != nil {
		return def
	}
	return s
}

// Seconds reads a float number of seconds at the dotted key and returns it
// as a duration, or def.
func (c *Config) Seconds(key string, def time.Duration) time.Duration {
	if !c.v.IsSet(key) {
		return def
	}
	f, err := cast.ToFloat64E(c.v.Get(key))
	if err != nil {
		return def
	}
	return time.Duration(f * float64(time.Second))
}
