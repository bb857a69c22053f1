package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/pipeline.log"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	// BaseDir roots the data/reports/logs layout. Empty means the
	// working directory of the invoked stage.
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
}

// CleaningConfig tunes the cleaner's lookup behavior.
type CleaningConfig struct {
	// PaybandSeniority selects which seniority row of the payband
	// table target cash is read from.
	PaybandSeniority string `yaml:"payband_seniority" envconfig:"PAYBAND_SENIORITY" default:"Seasoned"`

	// VarianceTolerance is the float comparison tolerance used when
	// deciding whether a stored target differs from a recomputed one.
	VarianceTolerance float64 `yaml:"variance_tolerance" envconfig:"VARIANCE_TOLERANCE" default:"0.01"`
}

// Load reads configuration from the environment and, when present, the
// peoplecli.yaml file in the base directory. File values fill in
// anything the environment left at its default.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath(cfg.Paths.BaseDir)
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &cfg, nil
}

// mergeConfigs overlays env-provided values on top of file values.
// Environment wins for every field it explicitly set.
func mergeConfigs(file, env Config) Config {
	merged := file

	if env.Logging.Level != "" && env.Logging.Level != "info" {
		merged.Logging.Level = env.Logging.Level
	}
	if merged.Logging.Level == "" {
		merged.Logging.Level = env.Logging.Level
	}
	if env.Logging.Format != "" && env.Logging.Format != "json" {
		merged.Logging.Format = env.Logging.Format
	}
	if merged.Logging.Format == "" {
		merged.Logging.Format = env.Logging.Format
	}
	if env.Logging.Output != "" && env.Logging.Output != "console" {
		merged.Logging.Output = env.Logging.Output
	}
	if merged.Logging.Output == "" {
		merged.Logging.Output = env.Logging.Output
	}
	if merged.Logging.FilePath == "" {
		merged.Logging.FilePath = env.Logging.FilePath
	}
	if env.Paths.BaseDir != "" {
		merged.Paths.BaseDir = env.Paths.BaseDir
	}
	if merged.Cleaning.PaybandSeniority == "" {
		merged.Cleaning.PaybandSeniority = env.Cleaning.PaybandSeniority
	}
	if merged.Cleaning.VarianceTolerance == 0 {
		merged.Cleaning.VarianceTolerance = env.Cleaning.VarianceTolerance
	}

	return merged
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	switch c.Cleaning.PaybandSeniority {
	case SeniorityNames[0], SeniorityNames[1], SeniorityNames[2]:
	default:
		return fmt.Errorf("invalid payband seniority: %s", c.Cleaning.PaybandSeniority)
	}

	if c.Cleaning.VarianceTolerance <= 0 {
		return fmt.Errorf("variance tolerance must be positive, got %v", c.Cleaning.VarianceTolerance)
	}

	return nil
}

// SeniorityNames mirrors the payband table's seniority rows in order.
var SeniorityNames = [3]string{"Early", "Seasoned", "Veteran"}

// getConfigFilePath returns the path of the optional YAML config file.
func getConfigFilePath(baseDir string) string {
	if baseDir == "" {
		baseDir = os.Getenv(EnvPrefix + "_BASE_DIR")
	}
	if baseDir == "" {
		baseDir, _ = os.Getwd()
	}
	return filepath.Join(baseDir, ConfigFileName)
}
