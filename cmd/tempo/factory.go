package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/config"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/export"
	"tempo-tracker/internal/logging"
	"tempo-tracker/internal/suggest"
	"tempo-tracker/internal/validation"
)

// newBusinessAPI wires storage, the suggestion client and the configured
// defaults into a BusinessAPI
func newBusinessAPI(cfg *config.Config, confirmer api.Confirmer) (api.BusinessAPI, func() error, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	reportFormat, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("export.format: %w", err)
	}

	opts := []api.Option{
		api.WithLocation(time.Local),
		api.WithValidator(validation.NewValidatorWithConfig(cfg)),
		api.WithDefaults(cfg.Defaults.HourlyRate, domain.NormalizeCurrency(cfg.Defaults.Currency)),
		api.WithRunningStatus(cfg.Display.RunningStatus),
		api.WithExportDefaults(cfg.Export.Dir, reportFormat),
		api.WithConfirmer(confirmer),
	}

	client, err := suggest.NewClient(context.Background(), suggest.Config{
		APIKey:    cfg.Suggest.APIKey,
		Model:     cfg.Suggest.Model,
		Endpoint:  cfg.Suggest.Endpoint,
		Timeout:   cfg.Suggest.Timeout,
		MinLength: cfg.Suggest.MinLength,
	})
	switch {
	case err == nil:
		opts = append(opts, api.WithSuggester(client))
	case errors.Is(err, suggest.ErrNotConfigured):
		logging.Debugln("suggestion service disabled: no API key")
	default:
		repo.Close()
		return nil, nil, fmt.Errorf("failed to create suggestion client: %w", err)
	}

	return api.NewBusinessAPI(repo, opts...), repo.Close, nil
}
