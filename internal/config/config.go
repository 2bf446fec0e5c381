// Package config provides configuration management for the ETL job.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidDriver      = errors.New("storage.driver must be 's3' or 'local'")
	ErrMissingRegion      = errors.New("storage.region is required for the s3 driver")
	ErrMissingLocalRoot   = errors.New("storage.local_root is required for the local driver")
	ErrMissingBucket      = errors.New("storage.bucket is required")
	ErrMissingPrefix      = errors.New("storage.prefixes.source, staging and destination are required")
	ErrPrefixOverlap      = errors.New("staging and destination prefixes must not be inside the source prefix")
	ErrInvalidTimeout     = errors.New("storage.timeout_sec must be non-negative")
	ErrMissingWorkDir     = errors.New("processing.work_dir is required")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidEnvOverride = errors.New("invalid environment override")
)

// Storage drivers.
const (
	DriverS3    = "s3"
	DriverLocal = "local"
)

// Config represents the complete job configuration.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// StorageConfig describes where spreadsheets come from and where CSVs go.
type StorageConfig struct {
	Driver       string       `yaml:"driver"`
	Region       string       `yaml:"region"`
	Endpoint     string       `yaml:"endpoint"`
	LocalRoot    string       `yaml:"local_root"`
	Bucket       string       `yaml:"bucket"`
	Prefixes     PrefixConfig `yaml:"prefixes"`
	TimeoutSec   int          `yaml:"timeout_sec"`
	UsePathStyle bool         `yaml:"use_path_style"`
}

// PrefixConfig holds the three key prefixes inside the bucket.
type PrefixConfig struct {
	Source      string `yaml:"source"`
	Staging     string `yaml:"staging"`
	Destination string `yaml:"destination"`
}

// ProcessingConfig controls local processing.
type ProcessingConfig struct {
	WorkDir         string `yaml:"work_dir"`
	FailOnFileError bool   `yaml:"fail_on_file_error"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// Default returns the configuration the job runs with when nothing is
// overridden.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverS3,
			Region: "us-east-1",
			Bucket: "lighthouse-stage",
			Prefixes: PrefixConfig{
				Source:      "lighthouse-new/excel-files/",
				Staging:     "lighthouse-new/csv-files/",
				Destination: "lighthouse-new/normalized-files/",
			},
			TimeoutSec: 300,
		},
		Processing: ProcessingConfig{
			WorkDir: "temp_processing",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "data_processing.log",
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	cfg, err := readFile(Default(), filepath)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order.
func Load(filepath string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if filepath != "" {
		var err error

		cfg, err = readFile(cfg, filepath)
		if err != nil {
			return nil, err
		}
	}

	if lookup != nil {
		if err := cfg.ApplyEnv(lookup); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile loads variables from a .env file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}

func readFile(cfg *Config, filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from SHEETETL_* variables and AWS_REGION.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	strs := map[string]*string{
		"SHEETETL_STORAGE_DRIVER":     &c.Storage.Driver,
		"AWS_REGION":                  &c.Storage.Region,
		"SHEETETL_S3_ENDPOINT":        &c.Storage.Endpoint,
		"SHEETETL_LOCAL_ROOT":         &c.Storage.LocalRoot,
		"SHEETETL_BUCKET":             &c.Storage.Bucket,
		"SHEETETL_SOURCE_PREFIX":      &c.Storage.Prefixes.Source,
		"SHEETETL_STAGING_PREFIX":     &c.Storage.Prefixes.Staging,
		"SHEETETL_DESTINATION_PREFIX": &c.Storage.Prefixes.Destination,
		"SHEETETL_WORK_DIR":           &c.Processing.WorkDir,
		"SHEETETL_LOG_LEVEL":          &c.Logging.Level,
		"SHEETETL_LOG_FORMAT":         &c.Logging.Format,
		"SHEETETL_LOG_FILE":           &c.Logging.File,
	}

	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("SHEETETL_STORAGE_TIMEOUT_SEC"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SHEETETL_STORAGE_TIMEOUT_SEC=%q", ErrInvalidEnvOverride, v)
		}

		c.Storage.TimeoutSec = n
	}

	bools := map[string]*bool{
		"SHEETETL_S3_PATH_STYLE":       &c.Storage.UsePathStyle,
		"SHEETETL_FAIL_ON_FILE_ERROR": &c.Processing.FailOnFileError,
	}

	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnvOverride, key, v)
		}

		*dst = b
	}

	return nil
}

// OverrideLogLevel replaces logging.level, as a command-line flag would,
// and revalidates. An empty level leaves the config unchanged.
func (c *Config) OverrideLogLevel(level string) error {
	if level == "" {
		return nil
	}

	prev := c.Logging.Level
	c.Logging.Level = level

	if err := c.Validate(); err != nil {
		c.Logging.Level = prev
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverS3:
		if c.Storage.Region == "" {
			return ErrMissingRegion
		}
	case DriverLocal:
		if c.Storage.LocalRoot == "" {
			return ErrMissingLocalRoot
		}
	default:
		return ErrInvalidDriver
	}

	if c.Storage.Bucket == "" {
		return ErrMissingBucket
	}

	p := c.Storage.Prefixes
	if p.Source == "" || p.Staging == "" || p.Destination == "" {
		return ErrMissingPrefix
	}

	// Outputs under the source prefix would be picked up by the next run.
	for _, out := range []string{p.Staging, p.Destination} {
		if strings.HasPrefix(out, p.Source) {
			return fmt.Errorf("%w: %q is inside %q", ErrPrefixOverlap, out, p.Source)
		}
	}

	if c.Storage.TimeoutSec < 0 {
		return ErrInvalidTimeout
	}

	if c.Processing.WorkDir == "" {
		return ErrMissingWorkDir
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Timeout returns the per-call storage timeout; zero disables it.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Storage.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Driver: %s, Bucket: %s, Source: %s, Staging: %s, Destination: %s, WorkDir: %s}",
		c.Storage.Driver,
		c.Storage.Bucket,
		c.Storage.Prefixes.Source,
		c.Storage.Prefixes.Staging,
		c.Storage.Prefixes.Destination,
		c.Processing.WorkDir,
	)
}
