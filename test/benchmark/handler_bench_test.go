package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fhsinchy/inspire/internal/adapters/clients"
	"github.com/fhsinchy/inspire/internal/adapters/clients/acl"
	inspirehttp "github.com/fhsinchy/inspire/internal/adapters/http"
	"github.com/fhsinchy/inspire/internal/adapters/http/handlers"
	"github.com/fhsinchy/inspire/internal/app"
	"github.com/fhsinchy/inspire/internal/domain"
	"github.com/fhsinchy/inspire/internal/platform/config"
	"github.com/fhsinchy/inspire/internal/platform/logging"
	"github.com/fhsinchy/inspire/internal/ports"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func init() {
	// Release mode and a silent logger keep I/O out of the numbers.
	gin.SetMode(gin.ReleaseMode)
	logging.SetDefault(discard)
}

// staticSource answers every RandomQuote from memory.
type staticSource struct {
	quote domain.Quote
}

func (s *staticSource) RandomQuote(_ context.Context) (*domain.Quote, error) {
	q := s.quote
	return &q, nil
}

func newQuoteHandler(source ports.QuoteSource) *handlers.QuoteHandler {
	return handlers.NewQuoteHandler(app.NewQuoteFetcher(app.QuoteFetcherConfig{
		Source: source,
		Logger: discard,
	}))
}

func newRouter(source ports.QuoteSource) *gin.Engine {
	engine := gin.New()
	inspirehttp.SetupRouter(engine, inspirehttp.RouterConfig{
		Logger:        discard,
		AppConfig:     &config.AppConfig{Name: "inspire"},
		HealthHandler: handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("inspire", "bench", "none", "now")),
		QuoteHandler:  newQuoteHandler(source),
		Timeout:       inspirehttp.DefaultRequestTimeout,
	})

	return engine
}

// BenchmarkInspireHandler measures the handler alone with an in-memory source.
func BenchmarkInspireHandler(b *testing.B) {
	handler := newQuoteHandler(&staticSource{quote: domain.Quote{Text: "Stay hungry.", Author: "Anon"}})
	req := httptest.NewRequest(http.MethodGet, "/inspire", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		handler.Inspire(c)
	}
}

// BenchmarkInspire_FullChain measures /inspire through every middleware.
func BenchmarkInspire_FullChain(b *testing.B) {
	router := newRouter(&staticSource{quote: domain.Quote{Text: "Stay hungry.", Author: "Anon"}})
	req := httptest.NewRequest(http.MethodGet, "/inspire", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkInspire_OverHTTP includes a real outbound request to a local
// provider, so it covers the client, the decoder and the translation.
func BenchmarkInspire_OverHTTP(b *testing.B) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"quote":"Stay hungry.","author":"Anon"}`)
	}))
	b.Cleanup(upstream.Close)

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     upstream.URL,
		ServiceName: config.DefaultInspirationName,
		Timeout:     5 * time.Second,
		Logger:      discard,
	})
	if err != nil {
		b.Fatal(err)
	}

	router := newRouter(acl.NewInspirationClient(acl.InspirationClientConfig{Client: httpClient, Logger: discard}))
	req := httptest.NewRequest(http.MethodGet, "/inspire", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
		}
	}
}

// BenchmarkLivenessHandler measures the liveness probe path.
func BenchmarkLivenessHandler(b *testing.B) {
	router := newRouter(&staticSource{})
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkQuoteFormat measures the attribution formatting.
func BenchmarkQuoteFormat(b *testing.B) {
	q := &domain.Quote{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"}

	b.ReportAllocs()

	for b.Loop() {
		_ = q.Format()
	}
}
