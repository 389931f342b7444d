// Package config loads omara's settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Config is the complete configuration.
type Config struct {
	Backend string         `yaml:"backend"`
	DB      string         `yaml:"db"`
	Addr    string         `yaml:"addr"`
	Log     string         `yaml:"log"`
	Outfits OutfitOptions  `yaml:"outfits"`
	Weather WeatherOptions `yaml:"weather"`
}

// OutfitOptions configure outfit suggestions.
type OutfitOptions struct {
	Count int `yaml:"count"`
}

// WeatherOptions configure the weather provider.
type WeatherOptions struct {
	Location string `yaml:"location"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Backend: BackendSQLite,
		Addr:    ":8080",
		Outfits: OutfitOptions{Count: 3},
		Weather: WeatherOptions{Location: "San Francisco, CA"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.merge(&loaded)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// merge copies every non-zero value of loaded into c.
func (c *Config) merge(loaded *Config) {
	if loaded.Backend != "" {
		c.Backend = loaded.Backend
	}
	if loaded.DB != "" {
		c.DB = loaded.DB
	}
	if loaded.Addr != "" {
		c.Addr = loaded.Addr
	}
	if loaded.Log != "" {
		c.Log = loaded.Log
	}
	if loaded.Outfits.Count != 0 {
		c.Outfits.Count = loaded.Outfits.Count
	}
	if loaded.Weather.Location != "" {
		c.Weather.Location = loaded.Weather.Location
	}
}

// DBPath returns the database path, falling back to a file named after the
// backend when none is configured. It is empty for the memory backend.
func (c *Config) DBPath() string {
	if c.DB != "" || c.Backend == BackendMemory {
		return c.DB
	}
	switch c.Backend {
	case BackendBolt:
		return "omara.bolt"
	default:
		return "omara.sqlite3"
	}
}

// Validate rejects settings the program cannot run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendBolt, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, bolt or memory)", c.Backend)
	}
	if c.Outfits.Count <= 0 {
		return fmt.Errorf("outfits.count must be positive, got %d", c.Outfits.Count)
	}
	return nil
}
