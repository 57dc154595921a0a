package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TEMPO_STORAGE_DIR.
const EnvPrefix = "TEMPO"

// FlagBindings maps persistent flag names to configuration keys.
var FlagBindings = map[string]string{
	"data-dir":      "storage.dir",
	"db-filename":   "storage.filename",
	"app-timeout":   "application.timeout",
	"verbose":       "application.verbose",
	"export-dir":    "export.dir",
	"suggest-model": "suggest.model",
}

// Loader handles loading configuration from multiple sources
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader seeded with defaults
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, NewConfig())

	return &Loader{v: v}
}

// SetConfigFile sets an explicit YAML file to read
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// BindFlags binds the known persistent flags present in flags
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range FlagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load loads configuration using the cascading strategy:
// defaults < config file < environment < flags
func (l *Loader) Load() (*Config, error) {
	if err := l.readConfigFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) readConfigFile() error {
	path := l.configFile
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = filepath.Join(l.v.GetString("storage.dir"), "config.yaml")
	}

	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.filename", cfg.Storage.Filename)
	v.SetDefault("storage.query_timeout", cfg.Storage.QueryTimeout)
	v.SetDefault("storage.write_timeout", cfg.Storage.WriteTimeout)
	v.SetDefault("storage.dir_permissions", cfg.Storage.DirPermissions)

	v.SetDefault("defaults.hourly_rate", cfg.Defaults.HourlyRate)
	v.SetDefault("defaults.currency", cfg.Defaults.Currency)

	v.SetDefault("validation.project_name_max_length", cfg.Validation.ProjectNameMaxLength)
	v.SetDefault("validation.description_max_length", cfg.Validation.DescriptionMaxLength)

	v.SetDefault("display.time_format", cfg.Display.TimeFormat)
	v.SetDefault("display.running_status", cfg.Display.RunningStatus)

	v.SetDefault("application.timeout", cfg.Application.Timeout)
	v.SetDefault("application.verbose", cfg.Application.Verbose)
	v.SetDefault("application.env", cfg.Application.Environment)

	v.SetDefault("suggest.api_key", cfg.Suggest.APIKey)
	v.SetDefault("suggest.model", cfg.Suggest.Model)
	v.SetDefault("suggest.endpoint", cfg.Suggest.Endpoint)
	v.SetDefault("suggest.timeout", cfg.Suggest.Timeout)
	v.SetDefault("suggest.min_length", cfg.Suggest.MinLength)

	v.SetDefault("export.dir", cfg.Export.Dir)
	v.SetDefault("export.format", cfg.Export.Format)
}
