// Package config loads fetcher configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheConfig selects and configures the cart cache backend
type CacheConfig struct {
	// Backend is "none", "memory" or "redis"
	Backend    string `yaml:"backend"`
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// LogConfig selects the logger implementation
type LogConfig struct {
	// Type is "stdout", "file" or "noop"
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// Config holds everything needed to build a fetcher and its collaborators
type Config struct {
	Endpoint       string      `yaml:"endpoint"`
	BackoffSeconds []int       `yaml:"backoff_seconds"`
	Cache          CacheConfig `yaml:"cache"`
	Log            LogConfig   `yaml:"log"`
}

// Default returns the configuration used when no file is provided: the
// CodeLab's local endpoint with a 1s/10s/60s backoff schedule and no cache.
func Default() *Config {
	return &Config{
		Endpoint:       "http://localhost:8080/cart",
		BackoffSeconds: []int{1, 10, 60},
		Cache: CacheConfig{
			Backend:    "none",
			TTLSeconds: 60,
		},
		Log: LogConfig{
			Type: "stdout",
		},
	}
}

// Load reads and validates a YAML config file. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks invariants the rest of the system relies on
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must be set")
	}

	for i, seconds := range c.BackoffSeconds {
		if seconds < 0 {
			return fmt.Errorf("backoff_seconds[%d] is negative: %d", i, seconds)
		}
	}

	switch c.Cache.Backend {
	case "", "none", "memory":
	case "redis":
		if c.Cache.Addr == "" {
			return fmt.Errorf("cache.addr must be set for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds is negative: %d", c.Cache.TTLSeconds)
	}

	switch c.Log.Type {
	case "", "stdout", "noop":
	case "file":
		if c.Log.Path == "" {
			return fmt.Errorf("log.path must be set for the file logger")
		}
	default:
		return fmt.Errorf("unknown log type %q", c.Log.Type)
	}

	return nil
}

// Schedule converts the configured backoff seconds into wait durations
func (c *Config) Schedule() []time.Duration {
	schedule := make([]time.Duration, len(c.BackoffSeconds))
	for i, seconds := range c.BackoffSeconds {
		schedule[i] = time.Duration(seconds) * time.Second
	}
	return schedule
}

// CacheTTL returns the configured cache entry lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
