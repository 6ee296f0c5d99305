// Package config is the single source of truth for configuration and file
// paths used by the analysis jobs.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/hrpulse.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir     string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DatasetFile string `yaml:"dataset_file" envconfig:"DATASET_FILE" default:"HR_comma_sep.csv"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output"`
}

// configFileName is looked up in the working directory; the file is optional.
const configFileName = "hrpulse.yml"

// Load loads configuration from environment variables and an optional
// config file. Environment variables (HRPULSE_*) provide defaults, the
// config file overlays them when present.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("HRPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if _, err := os.Stat(configFileName); err == nil {
		data, err := os.ReadFile(configFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if cfg.Paths.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		cfg.Paths.BaseDir = wd
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied and the base
// directory pinned to dir. Used by jobs when Load fails or in tests.
func Default(dir string) *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/hrpulse.log",
		},
		Paths: PathsConfig{
			BaseDir:     dir,
			DatasetFile: "HR_comma_sep.csv",
			OutputDir:   "output",
		},
	}
}
