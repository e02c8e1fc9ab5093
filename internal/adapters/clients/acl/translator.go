package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/fhsinchy/inspire/internal/adapters/clients"
	"github.com/fhsinchy/inspire/internal/domain"
	"github.com/fhsinchy/inspire/internal/platform/logging"
)

// maxBodyBytes bounds how much of a success body is read.
const maxBodyBytes = 1 << 20

// BaseAdapter provides request execution and error mapping for adapters.
// Embed this in provider-specific adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
	logger      *slog.Logger
}

// NewBaseAdapter creates a new base adapter with the given client and service name.
// A nil logger means the request-scoped logger from the context is used.
func NewBaseAdapter(client *clients.Client, serviceName string, logger *slog.Logger) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
		logger:      logger,
	}
}

func (a *BaseAdapter) requestLogger(ctx context.Context) *slog.Logger {
	logger := a.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	return logger.With(slog.String("downstream", a.serviceName))
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs one GET request and returns the full body of a 2xx response.
// Any other outcome is returned as a domain error.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) ([]byte, error) {
	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if mapped := MapHTTPError(resp, nil, a.serviceName, operation); mapped != nil {
		a.requestLogger(ctx).WarnContext(ctx, "upstream returned error status",
			slog.String("operation", operation),
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", errorBodySnippet(resp.Body)),
		)

		return nil, mapped
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewUpstreamUnavailableError(a.serviceName, "reading body: "+err.Error())
	}

	a.requestLogger(ctx).Log(ctx, logging.LevelTrace, "upstream response",
		slog.String("operation", operation),
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", string(body)),
	)

	return body, nil
}

// DecodeResponse decodes a JSON body into T. Decoding failures become
// MalformedResponse errors for the named service.
func DecodeResponse[T any](body []byte, serviceName string) (*T, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.NewMalformedResponseError(serviceName, "empty body")
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, domain.NewMalformedResponseError(serviceName, "invalid JSON: "+err.Error())
	}

	return &result, nil
}

// RequireString decodes a required JSON string attribute. A missing raw
// value, a null or any non-string type is a MalformedResponse naming field.
// The empty string is accepted.
func RequireString(raw json.RawMessage, serviceName, field string) (string, error) {
	if len(raw) == 0 {
		return "", domain.NewMalformedFieldError(serviceName, field, "is missing")
	}

	var s string

	err := json.Unmarshal(raw, &s)
	if err == nil && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return s, nil
	}

	var typeErr *json.UnmarshalTypeError
	if err == nil || errors.As(err, &typeErr) {
		return "", domain.NewMalformedFieldError(serviceName, field, "must be a string")
	}

	return "", domain.NewMalformedFieldError(serviceName, field, err.Error())
}

// statusOK reports whether the status is in the 2xx range.
func statusOK(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
