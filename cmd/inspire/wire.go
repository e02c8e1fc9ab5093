package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fhsinchy/inspire/internal/adapters/clients"
	"github.com/fhsinchy/inspire/internal/adapters/clients/acl"
	"github.com/fhsinchy/inspire/internal/app"
	"github.com/fhsinchy/inspire/internal/platform/config"
	"github.com/fhsinchy/inspire/internal/platform/logging"
)

// loadConfig loads and validates configuration. Invalid config fails fast.
func loadConfig(profile string) (*config.Config, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, w)
}

// newInspirationClient builds the outbound HTTP client and its ACL adapter.
// Both log through the request-scoped logger so outbound lines keep the
// request and correlation IDs.
func newInspirationClient(cfg *config.Config) (*acl.InspirationClient, error) {
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Inspiration.BaseURL,
		ServiceName: cfg.Services.Inspiration.Name,
		Timeout:     cfg.Client.Timeout,
		Transport:   cfg.Client.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	return acl.NewInspirationClient(acl.InspirationClientConfig{
		Client: httpClient,
	}), nil
}

func newQuoteFetcher(source *acl.InspirationClient, logger *slog.Logger) *app.QuoteFetcher {
	return app.NewQuoteFetcher(app.QuoteFetcherConfig{
		Source: source,
		Logger: logger,
	})
}
