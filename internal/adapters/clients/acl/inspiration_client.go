package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fhsinchy/inspire/internal/adapters/clients"
	"github.com/fhsinchy/inspire/internal/domain"
)

const (
	randomQuotePath = "/"
	randomQuoteOp   = "fetch random quote"
)

// InspirationClientConfig contains configuration for the inspiration client.
type InspirationClientConfig struct {
	// Client is the HTTP client to use. Its BaseURL points at the provider.
	Client *clients.Client

	// Logger is an optional logger. If nil, the context logger is used.
	Logger *slog.Logger
}

// InspirationClient implements ports.QuoteSource and ports.HealthChecker
// against inspiration.goprogram.ai.
type InspirationClient struct {
	BaseAdapter
}

// NewInspirationClient creates the adapter. Panics if Client is nil.
func NewInspirationClient(cfg InspirationClientConfig) *InspirationClient {
	if cfg.Client == nil {
		panic("InspirationClient: Client is required")
	}

	return &InspirationClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName(), cfg.Logger),
	}
}

// inspirationResponse is the provider's payload. Fields stay raw so a
// missing attribute can be told apart from an empty string.
type inspirationResponse struct {
	Quote  json.RawMessage `json:"quote"`
	Author json.RawMessage `json:"author"`
}

// RandomQuote issues exactly one GET / and translates the payload.
func (c *InspirationClient) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	body, err := c.Get(ctx, randomQuotePath, randomQuoteOp)
	if err != nil {
		return nil, err
	}

	ext, err := DecodeResponse[inspirationResponse](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	return c.translate(ext)
}

func (c *InspirationClient) translate(ext *inspirationResponse) (*domain.Quote, error) {
	text, err := RequireString(ext.Quote, c.ServiceName(), "quote")
	if err != nil {
		return nil, err
	}

	author, err := RequireString(ext.Author, c.ServiceName(), "author")
	if err != nil {
		return nil, err
	}

	return &domain.Quote{Text: text, Author: author}, nil
}

// Name implements ports.HealthChecker.
func (c *InspirationClient) Name() string {
	return c.ServiceName()
}

// Check implements ports.HealthChecker. It issues a single GET / and only
// looks at the status code.
func (c *InspirationClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, randomQuotePath)
	if err != nil {
		return MapHTTPError(nil, err, c.ServiceName(), "health check")
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode) {
		return fmt.Errorf("health check: %w", domain.NewUpstreamStatusError(c.ServiceName(), resp.StatusCode))
	}

	return nil
}
