package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML overlay. Unset fields keep their current value.
type fileConfig struct {
	LogLevel string `yaml:"log_level"`
	Jobs     struct {
		BaseURL  string `yaml:"base_url"`
		PageSize int    `yaml:"page_size"`
	} `yaml:"jobs"`
	Fetch struct {
		MaxRetries        int     `yaml:"max_retries"`
		RetryDelay        string  `yaml:"retry_delay"`
		JitterMin         string  `yaml:"jitter_min"`
		JitterMax         string  `yaml:"jitter_max"`
		Concurrency       int     `yaml:"concurrency"`
		RequestTimeout    string  `yaml:"request_timeout"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"fetch"`
	Mongo struct {
		Database   string `yaml:"database"`
		Collection string `yaml:"collection"`
		UserField  string `yaml:"user_field"`
	} `yaml:"mongo"`
}

func applyFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse yaml %s: %w", path, err)
	}

	return fc.apply(cfg)
}

func (fc fileConfig) apply(cfg *Config) error {
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.Jobs.BaseURL != "" {
		cfg.Jobs.BaseURL = fc.Jobs.BaseURL
	}
	if fc.Jobs.PageSize != 0 {
		cfg.Jobs.PageSize = fc.Jobs.PageSize
	}

	if fc.Fetch.MaxRetries != 0 {
		cfg.Fetch.MaxRetries = fc.Fetch.MaxRetries
	}
	if fc.Fetch.Concurrency != 0 {
		cfg.Fetch.Concurrency = fc.Fetch.Concurrency
	}
	if fc.Fetch.RequestsPerSecond != 0 {
		cfg.Fetch.RequestsPerSecond = fc.Fetch.RequestsPerSecond
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"fetch.retry_delay", fc.Fetch.RetryDelay, &cfg.Fetch.RetryDelay},
		{"fetch.jitter_min", fc.Fetch.JitterMin, &cfg.Fetch.JitterMin},
		{"fetch.jitter_max", fc.Fetch.JitterMax, &cfg.Fetch.JitterMax},
		{"fetch.request_timeout", fc.Fetch.RequestTimeout, &cfg.Fetch.RequestTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := parseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.raw, err)
		}
		*d.dst = v
	}

	if fc.Mongo.Database != "" {
		cfg.Mongo.Database = fc.Mongo.Database
	}
	if fc.Mongo.Collection != "" {
		cfg.Mongo.Collection = fc.Mongo.Collection
	}
	if fc.Mongo.UserField != "" {
		cfg.Mongo.UserField = fc.Mongo.UserField
	}

	return nil
}
