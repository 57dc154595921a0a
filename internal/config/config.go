package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the tempo application
type Config struct {
	Storage     StorageConfig     `mapstructure:"storage"`
	Defaults    DefaultsConfig    `mapstructure:"defaults"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Display     DisplayConfig     `mapstructure:"display"`
	Application ApplicationConfig `mapstructure:"application"`
	Suggest     SuggestConfig     `mapstructure:"suggest"`
	Export      ExportConfig      `mapstructure:"export"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	Dir            string        `mapstructure:"dir"`
	Filename       string        `mapstructure:"filename"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	DirPermissions uint32        `mapstructure:"dir_permissions"`
}

// DefaultsConfig seeds a fresh state and backfills old documents
type DefaultsConfig struct {
	HourlyRate float64 `mapstructure:"hourly_rate"`
	Currency   string  `mapstructure:"currency"`
}

// ValidationConfig holds validation limits
type ValidationConfig struct {
	ProjectNameMaxLength int `mapstructure:"project_name_max_length"`
	DescriptionMaxLength int `mapstructure:"description_max_length"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat    string `mapstructure:"time_format"`
	RunningStatus string `mapstructure:"running_status"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Verbose     bool          `mapstructure:"verbose"`
	Environment string        `mapstructure:"env"`
}

// SuggestConfig configures the description suggestion service
type SuggestConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MinLength int           `mapstructure:"min_length"`
}

// ExportConfig holds report export defaults
type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Dir:            filepath.Join(homeDir, ".tempo"),
			Filename:       "tempo.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Defaults: DefaultsConfig{
			HourlyRate: 50,
			Currency:   "USD",
		},
		Validation: ValidationConfig{
			ProjectNameMaxLength: 100,
			DescriptionMaxLength: 500,
		},
		Display: DisplayConfig{
			TimeFormat:    "15:04",
			RunningStatus: "Tracking",
		},
		Application: ApplicationConfig{
			Timeout:     60 * time.Second,
			Verbose:     false,
			Environment: string(Production),
		},
		Suggest: SuggestConfig{
			Model:     "gemini-2.0-flash",
			Timeout:   15 * time.Second,
			MinLength: 5,
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "pdf",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the storage query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetWriteTimeout returns the storage write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Defaults.HourlyRate < 0 || c.Defaults.HourlyRate != c.Defaults.HourlyRate {
		return &ConfigError{Field: "defaults.hourly_rate", Message: "default hourly rate must be a non-negative number"}
	}
	if len(c.Defaults.Currency) != 3 {
		return &ConfigError{Field: "defaults.currency", Message: "default currency must be a three letter code"}
	}

	if c.Validation.ProjectNameMaxLength < 1 {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	if c.Display.RunningStatus == "" {
		return &ConfigError{Field: "display.running_status", Message: "running status text cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	if c.Suggest.Timeout <= 0 {
		return &ConfigError{Field: "suggest.timeout", Message: "suggestion timeout must be positive"}
	}

	switch c.Export.Format {
	case "pdf", "csv", "json":
	default:
		return &ConfigError{Field: "export.format", Message: "export format must be one of pdf, csv, json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
