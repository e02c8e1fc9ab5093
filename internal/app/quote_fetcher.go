// Package app contains the use cases that sit between the HTTP handlers
// and the upstream quote source.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/fhsinchy/inspire/internal/domain"
	"github.com/fhsinchy/inspire/internal/platform/telemetry"
	"github.com/fhsinchy/inspire/internal/ports"
)

// QuoteFetcher turns one upstream quote into the attributed string served by
// the service. It keeps no state between calls: every Fetch is exactly one
// call to the source and nothing is remembered afterwards.
type QuoteFetcher struct {
	source ports.QuoteSource
	logger *slog.Logger
}

// QuoteFetcherConfig contains the fetcher's dependencies.
type QuoteFetcherConfig struct {
	Source ports.QuoteSource
	Logger *slog.Logger
}

// NewQuoteFetcher creates a fetcher. Panics if Source is nil.
func NewQuoteFetcher(cfg QuoteFetcherConfig) *QuoteFetcher {
	if cfg.Source == nil {
		panic("QuoteFetcher: Source is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteFetcher{
		source: cfg.Source,
		logger: logger,
	}
}

// Fetch returns a fresh quote formatted as "<quote> -<author>".
// Upstream failures are returned unchanged; there is no fallback quote.
func (f *QuoteFetcher) Fetch(ctx context.Context) (string, error) {
	quote, err := f.FetchQuote(ctx)
	if err != nil {
		return "", err
	}

	return quote.Format(), nil
}

// FetchQuote returns the structured quote behind Fetch.
func (f *QuoteFetcher) FetchQuote(ctx context.Context) (*domain.Quote, error) {
	start := time.Now()

	quote, err := f.source.RandomQuote(ctx)

	outcome := fetchOutcome(err)
	telemetry.RecordQuoteFetch(outcome)

	if err != nil {
		f.logger.ErrorContext(ctx, "quote fetch failed",
			slog.String("outcome", outcome),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		return nil, err
	}

	f.logger.InfoContext(ctx, "quote fetched",
		slog.String("author", quote.Author),
		slog.Duration("duration", time.Since(start)),
	)

	return quote, nil
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeSuccess
	case domain.IsUpstreamUnavailable(err):
		return telemetry.OutcomeUnavailable
	case domain.IsUpstreamStatus(err):
		return telemetry.OutcomeStatus
	case domain.IsMalformedResponse(err):
		return telemetry.OutcomeMalformed
	default:
		return telemetry.OutcomeError
	}
}
