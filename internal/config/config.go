package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
}

// ExtractionConfig contains extraction pipeline configuration
type ExtractionConfig struct {
	DatasetVersion string `yaml:"dataset_version" envconfig:"DATASET_VERSION" default:"v2"`
	Workers        int    `yaml:"workers" envconfig:"WORKERS" default:"1"`
	OutputFile     string `yaml:"output_file" envconfig:"OUTPUT_FILE" default:"mrt_data.json"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/extractor.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	CleanedDir    string `yaml:"cleaned_dir" envconfig:"CLEANED_DIR" default:"cleaned"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("MRT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Resolve relative paths
	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Extraction.DatasetVersion == "" {
		envConfig.Extraction.DatasetVersion = fileConfig.Extraction.DatasetVersion
	}
	if envConfig.Extraction.Workers == 0 {
		envConfig.Extraction.Workers = fileConfig.Extraction.Workers
	}
	if envConfig.Extraction.OutputFile == "" {
		envConfig.Extraction.OutputFile = fileConfig.Extraction.OutputFile
	}

	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	if envConfig.Paths.DataDir == "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Paths.CleanedDir == "" {
		envConfig.Paths.CleanedDir = fileConfig.Paths.CleanedDir
	}
	if envConfig.Paths.LogsDir == "" {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}

	return envConfig
}

// resolvePaths sets up the executable directory from the centralized paths system
func (c *Config) resolvePaths() error {
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	c.Paths.ExecutableDir = paths.ExecutableDir

	return nil
}

// BuildPaths materializes the directory layout this configuration
// describes. Relative directories resolve against the executable directory;
// absolute ones are kept as-is, which lets flags and environment variables
// point the pipeline at arbitrary locations.
func (c *Config) BuildPaths() (*Paths, error) {
	exeDir := c.Paths.ExecutableDir
	if exeDir == "" {
		paths, err := GetPaths()
		if err != nil {
			return nil, fmt.Errorf("failed to get paths: %w", err)
		}
		exeDir = paths.ExecutableDir
	}

	resolve := func(dir, fallback string) string {
		if dir == "" {
			dir = fallback
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(exeDir, dir)
	}

	output := c.Extraction.OutputFile
	if output == "" {
		output = DatasetFileName
	}

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       resolve(c.Paths.DataDir, DefaultDataDir),
		CleanedDir:    resolve(c.Paths.CleanedDir, DefaultCleanedDir),
		LogsDir:       resolve(c.Paths.LogsDir, DefaultLogsDir),
	}
	paths.DatasetJSON = filepath.Join(paths.CleanedDir, output)

	return paths, nil
}

// EnsureDirectories creates the directories the pipeline writes to
func (c *Config) EnsureDirectories() error {
	paths, err := c.BuildPaths()
	if err != nil {
		return err
	}

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	paths.LogPathResolution()

	return nil
}

// GetDataDir returns the resolved input directory path
func (c *Config) GetDataDir() string {
	paths, err := c.BuildPaths()
	if err != nil {
		// Fallback to config-based resolution if paths system fails
		if filepath.IsAbs(c.Paths.DataDir) {
			return c.Paths.DataDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.DataDir)
	}
	return paths.DataDir
}

// GetCleanedDir returns the resolved output directory path
func (c *Config) GetCleanedDir() string {
	paths, err := c.BuildPaths()
	if err != nil {
		if filepath.IsAbs(c.Paths.CleanedDir) {
			return c.Paths.CleanedDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.CleanedDir)
	}
	return paths.CleanedDir
}

// GetLogsDir returns the resolved logs directory path
func (c *Config) GetLogsDir() string {
	paths, err := c.BuildPaths()
	if err != nil {
		if filepath.IsAbs(c.Paths.LogsDir) {
			return c.Paths.LogsDir
		}
		return filepath.Join(c.Paths.ExecutableDir, c.Paths.LogsDir)
	}
	return paths.LogsDir
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Extraction.DatasetVersion != DatasetVersionV1 && c.Extraction.DatasetVersion != DatasetVersionV2 {
		return fmt.Errorf("invalid dataset version: %q", c.Extraction.DatasetVersion)
	}

	if c.Extraction.Workers < 1 {
		c.Extraction.Workers = 1
	}

	if c.Extraction.OutputFile == "" {
		c.Extraction.OutputFile = DatasetFileName
	}

	// Logging is always JSON with dual output
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/extractor.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			DatasetVersion: DatasetVersionV2,
			Workers:        1,
			OutputFile:     DatasetFileName,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/extractor.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			CleanedDir: "cleaned",
			LogsDir:    "logs",
		},
	}
}
