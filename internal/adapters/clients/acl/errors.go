package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fhsinchy/inspire/internal/adapters/clients"
	"github.com/fhsinchy/inspire/internal/domain"
)

// maxErrorBodyBytes caps how much of an error body is kept for logs.
const maxErrorBodyBytes = 512

// MapHTTPError maps a client error or a non-2xx response to a domain error.
// It returns nil for 2xx responses.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUpstreamUnavailableError(serviceName, operation+": no response received")
	}

	if statusOK(resp.StatusCode) {
		return nil
	}

	return domain.NewUpstreamStatusError(serviceName, resp.StatusCode)
}

func mapClientError(err error, serviceName, operation string) error {
	if errors.Is(err, clients.ErrRequestFailed) {
		return domain.NewUpstreamUnavailableError(serviceName, fmt.Sprintf("%s: %v", operation, unwrapCause(err)))
	}

	return domain.NewUpstreamUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
}

// unwrapCause drops the client's own prefix so the reason reads
// "connection reset by peer" rather than repeating the service name.
func unwrapCause(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint // inspecting the wrap shape
		if errs := joined.Unwrap(); len(errs) > 1 {
			return errs[len(errs)-1]
		}
	}

	return err
}

// errorBodySnippet reads a bounded, single-line excerpt of an error body.
func errorBodySnippet(body io.Reader) string {
	if body == nil {
		return ""
	}

	b, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil {
		return ""
	}

	return strings.Join(strings.Fields(string(b)), " ")
}
