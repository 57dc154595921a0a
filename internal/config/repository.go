package config

import (
	"fmt"
	"os"

	"tempo-tracker/internal/repository/sqlite"
)

// StorageOptions translates the configuration into repository options
func (c *Config) StorageOptions() sqlite.Options {
	return sqlite.Options{
		Defaults: sqlite.DocumentDefaults{
			HourlyRate: c.Defaults.HourlyRate,
			Currency:   c.Defaults.Currency,
			ThemeMode:  "system",
		},
		QueryTimeout:   c.Storage.QueryTimeout,
		WriteTimeout:   c.Storage.WriteTimeout,
		DirPermissions: os.FileMode(c.Storage.DirPermissions),
	}
}

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	var dbPath string
	switch ParseEnvironment(config.Application.Environment) {
	case Development:
		dbPath = config.Storage.Filename
	case Testing:
		dbPath = sqlite.MemoryPath
	default:
		dbPath = config.GetDatabasePath()
	}

	repo, err := sqlite.NewWithOptions(dbPath, config.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.NewWithOptions(sqlite.MemoryPath, NewConfig().StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
