package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	Server  Server  `yaml:"server"`
	Paths   Paths   `yaml:"paths"`
	Export  Export  `yaml:"export"`
	Logging Logging `yaml:"logging"`
}

// Server configures the HTTP boundary.
type Server struct {
	Addr string `yaml:"addr,omitempty"`
	// Mode is the gin mode: debug, release or test.
	Mode        string   `yaml:"mode,omitempty"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// Paths locates the data files. Empty schema and municipality paths select
// the built-in files; an empty templates dir disables dedicated templates.
type Paths struct {
	Schema         string `yaml:"schema,omitempty"`
	Municipalities string `yaml:"municipalities,omitempty"`
	Templates      string `yaml:"templates,omitempty"`
	Cases          string `yaml:"cases,omitempty"`
}

// Export configures the PDF converter.
type Export struct {
	Disabled   bool   `yaml:"disabled,omitempty"`
	Binary     string `yaml:"binary,omitempty"`
	TimeoutSec int    `yaml:"timeout_sec,omitempty"`
}

// Timeout returns the conversion timeout.
func (e Export) Timeout() time.Duration {
	return time.Duration(e.TimeoutSec) * time.Second
}

// Logging configures the logger.
type Logging struct {
	Mode  string `yaml:"mode,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// ZapLevel returns the configured level, or InvalidLevel to keep the mode's
// default.
func (l Logging) ZapLevel() (zapcore.Level, error) {
	if l.Level == "" {
		return zapcore.InvalidLevel, nil
	}

	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return zapcore.InvalidLevel, fmt.Errorf("logging.level: %w", err)
	}

	return level, nil
}

// Default returns the configuration used without a file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads path, or starts from the defaults when path is empty, and
// applies the environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		var err error

		cfg, err = LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads and parses a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// an empty file decodes to io.EOF and means all defaults
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}

	if cfg.Paths.Cases == "" {
		cfg.Paths.Cases = "cases"
	}

	if cfg.Export.Binary == "" {
		cfg.Export.Binary = "soffice"
	}

	if cfg.Export.TimeoutSec == 0 {
		cfg.Export.TimeoutSec = 60
	}

	if cfg.Logging.Mode == "" {
		cfg.Logging.Mode = "prod"
	}
}

// applyEnv overrides file values with WZ_* variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)

		return v, ok && v != ""
	}

	if v, ok := get("WZ_ADDR"); ok {
		cfg.Server.Addr = v
	}

	if v, ok := get("WZ_LOG_MODE"); ok {
		cfg.Logging.Mode = v
	}

	if v, ok := get("WZ_SOFFICE"); ok {
		cfg.Export.Binary = v
	}

	if v, ok := get("WZ_EXPORT_TIMEOUT_SEC"); ok {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return fmt.Errorf("WZ_EXPORT_TIMEOUT_SEC: want a positive number of seconds, got %q", v)
		}

		cfg.Export.TimeoutSec = secs
	}

	if v, ok := get("WZ_CASES_DIR"); ok {
		cfg.Paths.Cases = v
	}

	if v, ok := get("WZ_TEMPLATES_DIR"); ok {
		cfg.Paths.Templates = v
	}

	return nil
}

// Validate checks values the loaders cannot default.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode: unknown gin mode %q", c.Server.Mode)
	}

	switch strings.ToLower(c.Logging.Mode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("logging.mode: unknown mode %q", c.Logging.Mode)
	}

	if _, err := c.Logging.ZapLevel(); err != nil {
		return err
	}

	if c.Export.TimeoutSec < 0 {
		return fmt.Errorf("export.timeout_sec: must not be negative")
	}

	return nil
}
