// Package config loads application configuration from environment variables
// and an optional YAML file, with environment taking precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Ingest  IngestConfig  `yaml:"ingest" envconfig:"INGEST"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR" validate:"required"`
}

// IngestConfig bounds the ingestion pipeline. The size and row caps are the
// only resource-exhaustion guards the pipeline enforces.
type IngestConfig struct {
	MaxFileSizeMB int     `yaml:"max_file_size_mb" envconfig:"MAX_FILE_SIZE_MB" validate:"min=1"`
	MaxSheetRows  int     `yaml:"max_sheet_rows" envconfig:"MAX_SHEET_ROWS" validate:"min=1"`
	UploadRPS     float64 `yaml:"upload_rps" envconfig:"UPLOAD_RPS"`
	UploadBurst   int     `yaml:"upload_burst" envconfig:"UPLOAD_BURST"`
}

// MaxFileSizeBytes returns the per-file ceiling in bytes.
func (c IngestConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// Load builds the configuration in three layers: compiled-in defaults, an
// optional YAML file, then environment variables. Later layers win; an env
// var that is not set leaves the field untouched.
func Load() (*Config, error) {
	cfg := *Default()

	if path := configFilePath(); path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		overlay(&cfg, fileCfg)
	}

	if err := envconfig.Process("LINKPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the default configuration without touching the
// environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:   "data/datasets",
			ExportDir: "data/exports",
		},
		Ingest: IngestConfig{
			MaxFileSizeMB: 50,
			MaxSheetRows:  100_000,
			UploadRPS:     2,
			UploadBurst:   4,
		},
	}
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overlay copies every non-zero field of src onto dst.
func overlay(dst, src *Config) {
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.ReadTimeout != 0 {
		dst.Server.ReadTimeout = src.Server.ReadTimeout
	}
	if src.Server.WriteTimeout != 0 {
		dst.Server.WriteTimeout = src.Server.WriteTimeout
	}
	if src.Server.IdleTimeout != 0 {
		dst.Server.IdleTimeout = src.Server.IdleTimeout
	}
	if src.Server.ShutdownTimeout != 0 {
		dst.Server.ShutdownTimeout = src.Server.ShutdownTimeout
	}
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Output != "" {
		dst.Logging.Output = src.Logging.Output
	}
	if src.Logging.FilePath != "" {
		dst.Logging.FilePath = src.Logging.FilePath
	}
	if src.Paths.DataDir != "" {
		dst.Paths.DataDir = src.Paths.DataDir
	}
	if src.Paths.ExportDir != "" {
		dst.Paths.ExportDir = src.Paths.ExportDir
	}
	if src.Ingest.MaxFileSizeMB != 0 {
		dst.Ingest.MaxFileSizeMB = src.Ingest.MaxFileSizeMB
	}
	if src.Ingest.MaxSheetRows != 0 {
		dst.Ingest.MaxSheetRows = src.Ingest.MaxSheetRows
	}
	if src.Ingest.UploadRPS != 0 {
		dst.Ingest.UploadRPS = src.Ingest.UploadRPS
	}
	if src.Ingest.UploadBurst != 0 {
		dst.Ingest.UploadBurst = src.Ingest.UploadBurst
	}
}

func configFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
