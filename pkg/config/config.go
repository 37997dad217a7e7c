// Package config loads tool configuration from flowgrid.toml files and
// flag overrides.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/graph"
	"github.com/flowgrid/flowgrid/pkg/layout"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// DefaultFileNames are probed in order when no config path is given.
var DefaultFileNames = []string{"flowgrid.toml", ".flowgrid.toml"}

// Config is the full tool configuration. Zero values fall back to the
// defaults from Default().
type Config struct {
	// Style selects the glyph style for text rendering.
	Style string `toml:"style"`
	// Direction, when set, overrides the direction declared in the markup.
	Direction string `toml:"direction"`

	Layout layout.Config `toml:"layout"`
	Cache  CacheConfig   `toml:"cache"`
	Server ServerConfig  `toml:"server"`
}

// CacheConfig selects where pipeline results are cached.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the file backend's directory. Empty means the user cache dir.
	Dir string `toml:"dir"`
	// RedisURL is the redis backend's connection URL.
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures the HTTP rendering server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Style:  string(render.DefaultStyle),
		Layout: layout.DefaultConfig(),
		Cache:  CacheConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads one TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, flowerrors.Wrap(flowerrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, flowerrors.Wrap(flowerrors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, flowerrors.Wrap(flowerrors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Discover probes the working directory for a config file and loads the
// first one found. Without one it returns the defaults.
func Discover() (Config, error) {
	for _, name := range DefaultFileNames {
		if _, err := os.Stat(name); err == nil {
			return Load(name)
		}
	}
	return Default(), nil
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	if _, err := render.ParseStyle(c.Style); err != nil {
		return err
	}
	if c.Direction != "" {
		if _, ok := graph.ParseDirection(c.Direction); !ok {
			return flowerrors.New(flowerrors.ErrCodeInvalidDirection,
				"unknown direction %q", c.Direction)
		}
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return flowerrors.New(flowerrors.ErrCodeInvalidConfig,
			"unknown cache backend %q (valid: file, redis, none)", c.Cache.Backend)
	}
	return nil
}
