// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, so the application layer
// depends on abstractions rather than on a concrete quote provider.
//
// Port conventions:
//   - Context is always the first parameter
//   - Return domain types, never external DTOs
//   - Errors are domain errors (ErrUpstreamUnavailable, ErrUpstreamStatus, ErrMalformedResponse)
package ports

import (
	"context"

	"github.com/fhsinchy/inspire/internal/domain"
)

// QuoteSource supplies random quotes from an upstream provider.
//
// Every call must reach the provider: implementations do not cache,
// memoize or substitute a fallback quote.
type QuoteSource interface {
	// RandomQuote fetches one quote.
	// Returns domain.ErrUpstreamUnavailable when the provider cannot be reached,
	// domain.ErrUpstreamStatus on a non-success answer and
	// domain.ErrMalformedResponse when the payload lacks a quote or an author.
	RandomQuote(ctx context.Context) (*domain.Quote, error)
}
