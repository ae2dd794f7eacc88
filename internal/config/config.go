// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override config file values.
const (
	EnvRoot         = "SCORERANK_ROOT"
	EnvTopN         = "SCORERANK_TOP_N"
	EnvLogLevel     = "SCORERANK_LOG_LEVEL"
	EnvLogFormat    = "SCORERANK_LOG_FORMAT"
	EnvSbatchScript = "SCORERANK_SBATCH_SCRIPT"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Ranking
	Root        string `json:"root,omitempty" yaml:"root,omitempty"`
	TopN        int    `json:"top_n,omitempty" yaml:"top_n,omitempty" validate:"gte=0,lte=1000"`
	FilePrefix  string `json:"file_prefix,omitempty" yaml:"file_prefix,omitempty"`
	FileSuffix  string `json:"file_suffix,omitempty" yaml:"file_suffix,omitempty"`
	SummaryJSON string `json:"summary_json,omitempty" yaml:"summary_json,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`

	// Job submission
	SbatchScript  string `json:"sbatch_script,omitempty" yaml:"sbatch_script,omitempty"`
	SbatchCommand string `json:"sbatch_command,omitempty" yaml:"sbatch_command,omitempty"`
	InputGlob     string `json:"input_glob,omitempty" yaml:"input_glob,omitempty"`
	JobLogDir     string `json:"job_log_dir,omitempty" yaml:"job_log_dir,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		TopN:          5,
		FilePrefix:    "score",
		FileSuffix:    ".sc",
		LogLevel:      "info",
		LogFormat:     "text",
		SbatchScript:  "relax_array.sbatch",
		SbatchCommand: "sbatch",
		InputGlob:     "*.pdb",
		JobLogDir:     "logs",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with any SCORERANK_* variables set in the environment.
// getenv is usually os.Getenv; .env files are loaded into the environment by main.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvRoot)); v != "" {
		c.Root = v
	}
	if v := strings.TrimSpace(getenv(EnvTopN)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", EnvTopN, err)
		}
		c.TopN = n
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		c.LogFormat = v
	}
	if v := strings.TrimSpace(getenv(EnvSbatchScript)); v != "" {
		c.SbatchScript = v
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Root != "" {
		info, err := os.Stat(c.Root)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: root directory not found: %s", c.Root)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: root is not a directory: %s", c.Root)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Root == "" {
		result.Root = defaults.Root
	}
	if result.FilePrefix == "" {
		result.FilePrefix = defaults.FilePrefix
	}
	if result.FileSuffix == "" {
		result.FileSuffix = defaults.FileSuffix
	}
	if result.SummaryJSON == "" {
		result.SummaryJSON = defaults.SummaryJSON
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.SbatchScript == "" {
		result.SbatchScript = defaults.SbatchScript
	}
	if result.SbatchCommand == "" {
		result.SbatchCommand = defaults.SbatchCommand
	}
	if result.InputGlob == "" {
		result.InputGlob = defaults.InputGlob
	}
	if result.JobLogDir == "" {
		result.JobLogDir = defaults.JobLogDir
	}

	// Int fields: use default if zero
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}

	return result
}
