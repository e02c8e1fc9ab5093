//go:build integration

package integration

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fhsinchy/inspire/internal/adapters/clients"
	"github.com/fhsinchy/inspire/internal/adapters/clients/acl"
	inspirehttp "github.com/fhsinchy/inspire/internal/adapters/http"
	"github.com/fhsinchy/inspire/internal/adapters/http/handlers"
	"github.com/fhsinchy/inspire/internal/app"
	"github.com/fhsinchy/inspire/internal/platform/config"
	"github.com/fhsinchy/inspire/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider stands in for inspiration.goprogram.ai. Its behavior can be
// swapped between requests and it records every request it sees.
type fakeProvider struct {
	server *httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	reset    bool
	delay    time.Duration
	requests []*http.Request

	hits atomic.Int32
}

func newFakeProvider() *fakeProvider {
	p := &fakeProvider{status: http.StatusOK, body: `{"quote":"Stay hungry.","author":"Anon"}`}
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))

	return p
}

func (p *fakeProvider) serve(w http.ResponseWriter, r *http.Request) {
	p.hits.Add(1)

	p.mu.Lock()
	p.requests = append(p.requests, r.Clone(r.Context()))
	status, body, reset, delay := p.status, p.body, p.reset, p.delay
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if reset {
		resetConnection(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (p *fakeProvider) respond(status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status, p.body, p.reset = status, body, false
}

func (p *fakeProvider) resetConnections() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reset = true
}

func (p *fakeProvider) slowDown(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.delay = d
}

func (p *fakeProvider) lastRequest() *http.Request {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.requests) == 0 {
		return nil
	}

	return p.requests[len(p.requests)-1]
}

func (p *fakeProvider) URL() string { return p.server.URL }

func (p *fakeProvider) Close() { p.server.Close() }

// resetConnection hijacks the connection and closes it with SO_LINGER 0 so
// the client sees a reset instead of a response.
func resetConnection(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		return
	}

	conn, _, err := hj.Hijack()
	if err != nil {
		return
	}

	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetLinger(0)
	}

	_ = conn.Close()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: config.DefaultInspirationName,
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		Logger:      discardLogger(),
	}
}

// newService assembles the full service against baseURL the same way the
// serve command does, and returns it behind an httptest server.
func newService(baseURL string, requestTimeout time.Duration) (*httptest.Server, error) {
	httpClient, err := clients.New(testClientConfig(baseURL))
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	source := acl.NewInspirationClient(acl.InspirationClientConfig{Client: httpClient, Logger: discardLogger()})

	registry := ports.NewHealthRegistry()
	if err := registry.Register(source); err != nil {
		return nil, fmt.Errorf("registering health check: %w", err)
	}

	engine := gin.New()
	inspirehttp.SetupRouter(engine, inspirehttp.RouterConfig{
		Logger:        discardLogger(),
		AppConfig:     &config.AppConfig{Name: "inspire", Version: "integration", Environment: "test"},
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("inspire", "integration", "none", "now")),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteFetcher(app.QuoteFetcherConfig{
			Source: source,
			Logger: discardLogger(),
		})),
		Timeout: requestTimeout,
	})

	return httptest.NewServer(engine), nil
}

func mustService(t *testing.T, baseURL string, requestTimeout time.Duration) *httptest.Server {
	t.Helper()

	srv, err := newService(baseURL, requestTimeout)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(srv.Close)

	return srv
}
