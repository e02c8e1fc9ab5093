package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fhsinchy/inspire/internal/domain"
	"github.com/fhsinchy/inspire/internal/mocks"
	"github.com/fhsinchy/inspire/internal/platform/telemetry"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFetcher(t *testing.T) (*QuoteFetcher, *mocks.MockQuoteSource) {
	t.Helper()

	source := mocks.NewMockQuoteSource(t)

	return NewQuoteFetcher(QuoteFetcherConfig{Source: source, Logger: discardLogger()}), source
}

func TestNewQuoteFetcher_PanicsWithoutSource(t *testing.T) {
	assert.PanicsWithValue(t, "QuoteFetcher: Source is required", func() {
		NewQuoteFetcher(QuoteFetcherConfig{Logger: discardLogger()})
	})
}

func TestNewQuoteFetcher_DefaultsLogger(t *testing.T) {
	f := NewQuoteFetcher(QuoteFetcherConfig{Source: mocks.NewMockQuoteSource(t)})

	require.NotNil(t, f)
	assert.NotNil(t, f.logger)
}

func TestQuoteFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name     string
		quote    *domain.Quote
		err      error
		expected string
		errCheck func(error) bool
	}{
		{
			name:     "formats quote and author",
			quote:    &domain.Quote{Text: "Stay hungry.", Author: "Anon"},
			expected: "Stay hungry. -Anon",
		},
		{
			name:     "empty author keeps trailing separator",
			quote:    &domain.Quote{Text: "Keep going.", Author: ""},
			expected: "Keep going. -",
		},
		{
			name:     "upstream unavailable propagates",
			err:      domain.NewUpstreamUnavailableError("inspiration", "connection reset by peer"),
			errCheck: domain.IsUpstreamUnavailable,
		},
		{
			name:     "upstream status propagates",
			err:      domain.NewUpstreamStatusError("inspiration", 503),
			errCheck: domain.IsUpstreamStatus,
		},
		{
			name:     "malformed response propagates",
			err:      domain.NewMalformedFieldError("inspiration", "author", "is missing"),
			errCheck: domain.IsMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, source := newFetcher(t)
			source.EXPECT().RandomQuote(mock.Anything).Return(tt.quote, tt.err).Once()

			got, err := f.Fetch(context.Background())

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				assert.Same(t, tt.err, err, "errors are not wrapped or replaced")
				assert.Empty(t, got, "no default quote on failure")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQuoteFetcher_NoMemoization(t *testing.T) {
	f, source := newFetcher(t)

	source.EXPECT().RandomQuote(mock.Anything).
		Return(&domain.Quote{Text: "First", Author: "A"}, nil).Once()
	source.EXPECT().RandomQuote(mock.Anything).
		Return(&domain.Quote{Text: "Second", Author: "B"}, nil).Once()

	first, err := f.Fetch(context.Background())
	require.NoError(t, err)

	second, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "First -A", first)
	assert.Equal(t, "Second -B", second)
	source.AssertNumberOfCalls(t, "RandomQuote", 2)
}

func TestQuoteFetcher_PassesContext(t *testing.T) {
	f, source := newFetcher(t)

	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "req-1")

	source.EXPECT().RandomQuote(mock.MatchedBy(func(got context.Context) bool {
		return got.Value(key{}) == "req-1"
	})).Return(&domain.Quote{Text: "Q", Author: "A"}, nil).Once()

	_, err := f.Fetch(ctx)
	require.NoError(t, err)
}

func TestQuoteFetcher_FetchQuote(t *testing.T) {
	f, source := newFetcher(t)
	want := &domain.Quote{Text: "Q", Author: "A"}

	source.EXPECT().RandomQuote(mock.Anything).Return(want, nil).Once()

	got, err := f.FetchQuote(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestQuoteFetcher_RecordsOutcome(t *testing.T) {
	f, source := newFetcher(t)
	counter := telemetry.QuoteFetches.WithLabelValues(telemetry.OutcomeUnavailable)
	before := testutil.ToFloat64(counter)

	source.EXPECT().RandomQuote(mock.Anything).
		Return(nil, domain.NewUpstreamUnavailableError("inspiration", "refused")).Once()

	_, err := f.Fetch(context.Background())
	require.Error(t, err)

	assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0.001)
}

func TestFetchOutcome(t *testing.T) {
	assert.Equal(t, telemetry.OutcomeSuccess, fetchOutcome(nil))
	assert.Equal(t, telemetry.OutcomeUnavailable, fetchOutcome(domain.NewUpstreamUnavailableError("s", "r")))
	assert.Equal(t, telemetry.OutcomeStatus, fetchOutcome(domain.NewUpstreamStatusError("s", 500)))
	assert.Equal(t, telemetry.OutcomeMalformed, fetchOutcome(domain.NewMalformedResponseError("s", "r")))
	assert.Equal(t, telemetry.OutcomeError, fetchOutcome(errors.New("boom")))
}
