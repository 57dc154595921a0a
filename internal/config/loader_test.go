package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Defaults(t *testing.T) {
	t.Setenv("TEMPO_STORAGE_DIR", t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "tempo.db", cfg.Storage.Filename)
	assert.Equal(t, 50.0, cfg.Defaults.HourlyRate)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
}

func TestLoader_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TEMPO_STORAGE_DIR", t.TempDir())
	t.Setenv("TEMPO_DEFAULTS_HOURLY_RATE", "95.5")
	t.Setenv("TEMPO_DEFAULTS_CURRENCY", "IRT")
	t.Setenv("TEMPO_APPLICATION_TIMEOUT", "5s")
	t.Setenv("TEMPO_SUGGEST_API_KEY", "secret")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 95.5, cfg.Defaults.HourlyRate)
	assert.Equal(t, "IRT", cfg.Defaults.Currency)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
	assert.Equal(t, "secret", cfg.Suggest.APIKey)
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEMPO_STORAGE_DIR", dir)

	content := "defaults:\n  hourly_rate: 120\n  currency: EUR\nexport:\n  format: csv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 120.0, cfg.Defaults.HourlyRate)
	assert.Equal(t, "EUR", cfg.Defaults.Currency)
	assert.Equal(t, "csv", cfg.Export.Format)
}

func TestLoader_EnvironmentBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEMPO_STORAGE_DIR", dir)
	t.Setenv("TEMPO_EXPORT_FORMAT", "json")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("export:\n  format: csv\n"), 0644))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Export.Format)
}

func TestLoader_ExplicitConfigFile(t *testing.T) {
	t.Setenv("TEMPO_STORAGE_DIR", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  running_status: Working\n"), 0644))

	loader := NewLoader()
	loader.SetConfigFile(path)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "Working", cfg.Display.RunningStatus)
}

func TestLoader_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEMPO_STORAGE_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("defaults: [unclosed"), 0644))

	_, err := NewLoader().Load()
	assert.Error(t, err)
}

func TestLoader_InvalidValues(t *testing.T) {
	t.Setenv("TEMPO_STORAGE_DIR", t.TempDir())
	t.Setenv("TEMPO_EXPORT_FORMAT", "docx")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.IsType(t, &ConfigError{}, err)
}

func TestLoader_BindFlags(t *testing.T) {
	t.Setenv("TEMPO_STORAGE_DIR", t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db-filename", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--db-filename=other.db", "--verbose"}))

	loader := NewLoader()
	require.NoError(t, loader.BindFlags(flags))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Storage.Filename)
	assert.True(t, cfg.Application.Verbose)
}
