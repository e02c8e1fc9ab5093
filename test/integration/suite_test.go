//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// testContext holds state shared across step definitions within a scenario.
// Each scenario gets its own fake provider and service instance.
type testContext struct {
	provider *fakeProvider
	service  *httptest.Server
	baseURL  string

	client       *http.Client
	headers      http.Header
	response     *http.Response
	responseBody []byte
}

func newTestContext() *testContext {
	return &testContext{
		client:  &http.Client{Timeout: 10 * time.Second},
		headers: http.Header{},
	}
}

func (tc *testContext) start() error {
	tc.provider = newFakeProvider()

	srv, err := newService(tc.provider.URL(), 5*time.Second)
	if err != nil {
		return err
	}

	tc.service = srv
	tc.baseURL = srv.URL

	return nil
}

// reset clears state between scenarios.
func (tc *testContext) reset() {
	if tc.response != nil && tc.response.Body != nil {
		_ = tc.response.Body.Close()
	}

	if tc.service != nil {
		tc.service.Close()
	}

	if tc.provider != nil {
		tc.provider.Close()
	}

	tc.provider, tc.service, tc.baseURL = nil, nil, ""
	tc.headers = http.Header{}
	tc.response = nil
	tc.responseBody = nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, tc.start()
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		tc.reset()
		return ctx, err
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^the quote provider returns quote "([^"]*)" by "([^"]*)"$`, tc.theProviderReturnsQuote)
	ctx.Step(`^the quote provider returns the body '([^']*)'$`, tc.theProviderReturnsBody)
	ctx.Step(`^the quote provider responds with status (\d+)$`, tc.theProviderRespondsWithStatus)
	ctx.Step(`^the quote provider resets every connection$`, tc.theProviderResetsConnections)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, tc.iSetHeader)
	ctx.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response body should be "([^"]*)"$`, tc.theResponseBodyShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response content type should contain "([^"]*)"$`, tc.theContentTypeShouldContain)
	ctx.Step(`^the error code should be "([^"]*)"$`, tc.theErrorCodeShouldBe)
	ctx.Step(`^the quote provider should have received (\d+) requests?$`, tc.theProviderShouldHaveReceived)
	ctx.Step(`^the quote provider should have seen header "([^"]*)" with value "([^"]*)"$`, tc.theProviderSawHeader)
}

func (tc *testContext) theServiceIsRunning() error {
	resp, err := tc.client.Get(tc.baseURL + "/-/live")
	if err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service liveness check failed with status %d", resp.StatusCode)
	}

	return nil
}

func (tc *testContext) theProviderReturnsQuote(quote, author string) error {
	body, err := json.Marshal(map[string]string{"quote": quote, "author": author})
	if err != nil {
		return err
	}

	tc.provider.respond(http.StatusOK, string(body))

	return nil
}

func (tc *testContext) theProviderReturnsBody(body string) error {
	tc.provider.respond(http.StatusOK, body)
	return nil
}

func (tc *testContext) theProviderRespondsWithStatus(status int) error {
	tc.provider.respond(status, `{"error":"provider failure"}`)
	return nil
}

func (tc *testContext) theProviderResetsConnections() error {
	tc.provider.resetConnections()
	return nil
}

func (tc *testContext) iSetHeader(name, value string) error {
	tc.headers.Set(name, value)
	return nil
}

func (tc *testContext) iRequestGET(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for name, values := range tc.headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	if tc.response != nil {
		_ = tc.response.Body.Close()
	}

	tc.response, err = tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	tc.responseBody, err = io.ReadAll(tc.response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

func (tc *testContext) theResponseBodyShouldBe(expected string) error {
	if got := string(tc.responseBody); got != expected {
		return fmt.Errorf("expected body %q, got %q", expected, got)
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return fmt.Errorf("no response body")
	}

	if body := string(tc.responseBody); !strings.Contains(body, text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, body)
	}

	return nil
}

func (tc *testContext) theContentTypeShouldContain(mediaType string) error {
	if ct := tc.response.Header.Get("Content-Type"); !strings.Contains(ct, mediaType) {
		return fmt.Errorf("expected content type containing %q, got %q", mediaType, ct)
	}

	return nil
}

func (tc *testContext) theErrorCodeShouldBe(code string) error {
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}

	if err := json.Unmarshal(tc.responseBody, &envelope); err != nil {
		return fmt.Errorf("response is not an error envelope: %w. Body: %s", err, tc.responseBody)
	}

	if envelope.Error.Code != code {
		return fmt.Errorf("expected error code %q, got %q", code, envelope.Error.Code)
	}

	return nil
}

func (tc *testContext) theProviderShouldHaveReceived(n int) error {
	if got := int(tc.provider.hits.Load()); got != n {
		return fmt.Errorf("expected %d upstream requests, got %d", n, got)
	}

	return nil
}

func (tc *testContext) theProviderSawHeader(name, value string) error {
	req := tc.provider.lastRequest()
	if req == nil {
		return fmt.Errorf("quote provider received no requests")
	}

	if got := req.Header.Get(name); got != value {
		return fmt.Errorf("expected upstream header %s=%q, got %q", name, value, got)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
