package config

import (
	"context"
	"path/filepath"
	"testing"

	"tempo-tracker/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRepository(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TEMPO_STORAGE_DIR", tmpDir)
	t.Setenv("TEMPO_APPLICATION_ENV", "production")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.SaveState(ctx, sqlite.StateDocument{PreferredCurrency: "USD"}))

	doc, err := repo.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", doc.PreferredCurrency)
	assert.FileExists(t, filepath.Join(tmpDir, "tempo.db"))
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.SaveState(ctx, sqlite.StateDocument{}))

	doc, err := repo.LoadState(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc.DefaultHourlyRate)
	assert.Equal(t, 50.0, *doc.DefaultHourlyRate)
}

func TestStorageOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Defaults.HourlyRate = 120
	cfg.Defaults.Currency = "EUR"

	opts := cfg.StorageOptions()

	assert.Equal(t, 120.0, opts.Defaults.HourlyRate)
	assert.Equal(t, "EUR", opts.Defaults.Currency)
	assert.Equal(t, cfg.Storage.QueryTimeout, opts.QueryTimeout)
}
