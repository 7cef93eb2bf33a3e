// Package config loads server settings from defaults, an optional YAML file,
// and MEALPLANNER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// DBPath enables snapshot persistence when non-empty.
	DBPath string `yaml:"db_path"`

	// Seed loads the sample recipes and plan when no snapshot exists.
	Seed bool `yaml:"seed"`

	// AllowedOrigins restricts websocket origins. Empty accepts any.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func Default() *Config {
	return &Config{
		Port:      "8080",
		LogLevel:  "info",
		LogFormat: "text",
		Seed:      true,
	}
}

// Load builds a Config. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("MEALPLANNER_PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("MEALPLANNER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MEALPLANNER_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v, ok := os.LookupEnv("MEALPLANNER_DB_PATH"); ok {
		c.DBPath = v
	}
	if v := os.Getenv("MEALPLANNER_SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse MEALPLANNER_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("MEALPLANNER_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
	return nil
}

// Validate checks values that would otherwise fail at startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	} else if n, err := strconv.Atoi(c.Port); err != nil || n < 1 || n > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log_format %q (want text or json)", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
