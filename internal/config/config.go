// Package config loads service configuration from an optional YAML file
// with environment-variable overrides for the deployment basics.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr    string `yaml:"http_addr"`
	LogLevel    string `yaml:"log_level"`
	DatabaseURL string `yaml:"database_url"`

	Layout LayoutConfig `yaml:"layout"`
	Poller PollerConfig `yaml:"poller"`
	Naming NamingConfig `yaml:"naming"`
}

// LayoutConfig describes the external layout tool deployment: binary per
// graphviz program when not on PATH, temp directory, and run timeout.
type LayoutConfig struct {
	Programs       map[string]string `yaml:"programs"`
	TempDir        string            `yaml:"temp_dir"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

func (c LayoutConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type PollerConfig struct {
	Enabled         bool   `yaml:"enabled"`
	IntervalSeconds int    `yaml:"interval_seconds"`
	Workers         int    `yaml:"workers"`
	Community       string `yaml:"community"`
	Port            uint16 `yaml:"port"`
	TimeoutMillis   int    `yaml:"timeout_ms"`
	Retries         int    `yaml:"retries"`
}

func (c PollerConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

func (c PollerConfig) Timeout() time.Duration {
	if c.TimeoutMillis <= 0 {
		return 900 * time.Millisecond
	}
	return time.Duration(c.TimeoutMillis) * time.Millisecond
}

type NamingConfig struct {
	ResolverAddr  string `yaml:"resolver_addr"`
	TimeoutMillis int    `yaml:"timeout_ms"`
}

func (c NamingConfig) Timeout() time.Duration {
	if c.TimeoutMillis <= 0 {
		return time.Second
	}
	return time.Duration(c.TimeoutMillis) * time.Millisecond
}

// Load reads the YAML file at path (skipped when empty or absent) and
// applies env overrides for HTTP_ADDR, LOG_LEVEL and DATABASE_URL.
func Load(path string) (Config, error) {
	cfg := Config{
		HTTPAddr: ":8081",
		LogLevel: "info",
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Config file is optional.
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}

	return cfg, nil
}
