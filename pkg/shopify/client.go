// Package shopify is a minimal Admin GraphQL API client limited to the fixed
// set of operations this service needs.
//
// Every dynamic value is bound as a GraphQL variable; operation text is
// constant. A call is a single attempt with no internal timeout: cancellation
// comes from the caller's context.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/ghuser/qrcodeapp/pkg/shopify"

	// DefaultAPIVersion is the Admin API version used when none is configured.
	DefaultAPIVersion = "2024-10"

	errorBodyReadLimit int64 = 4096
)

var errAccessTokenRequired = errors.New("access token is required")

// Session identifies the shop a call is made for and carries its Admin API token.
type Session struct {
	ShopDomain  string
	AccessToken string
}

// Operation is a named, constant GraphQL document.
type Operation struct {
	Name  string
	Query string
}

// Client executes Operations against a shop's Admin GraphQL endpoint.
type Client struct {
	httpClient *http.Client
	apiVersion string
	baseURL    string
	tracer     trace.Tracer
	requests   metric.Int64Counter
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default (otelhttp-instrumented) HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL sends every request to baseURL instead of https://<shop>.
// Used to point the client at a local fake in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// NewClient returns a Client for the given Admin API version.
func NewClient(apiVersion string, opts ...Option) (*Client, error) {
	version := strings.TrimSpace(apiVersion)
	if version == "" {
		version = DefaultAPIVersion
	}

	requests, err := otel.Meter(instrumentationName).Int64Counter(
		"shopify.graphql.requests",
		metric.WithDescription("Admin GraphQL API calls by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("shopify: create request counter: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		apiVersion: version,
		tracer:     otel.Tracer(instrumentationName),
		requests:   requests,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// Do executes op for session with the given variables and returns the raw
// "data" object. Any failure is an *APIError matching ErrRemoteAPI.
func (c *Client) Do(ctx context.Context, s Session, op Operation, variables map[string]any) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "shopify."+op.Name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("shopify.operation", op.Name),
			attribute.String("shopify.shop", s.ShopDomain),
		),
	)
	defer span.End()

	data, err := c.do(ctx, s, op, variables)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	c.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op.Name),
		attribute.String("outcome", outcome),
	))
	return data, err
}

func (c *Client) do(ctx context.Context, s Session, op Operation, variables map[string]any) (json.RawMessage, error) {
	fail := func(status int, details json.RawMessage, err error) error {
		return &APIError{Operation: op.Name, StatusCode: status, Details: details, Err: err}
	}

	if s.AccessToken == "" {
		return nil, fail(0, nil, errAccessTokenRequired)
	}

	payload, err := json.Marshal(graphQLRequest{Query: op.Query, OperationName: op.Name, Variables: variables})
	if err != nil {
		return nil, fail(0, nil, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(s.ShopDomain), bytes.NewReader(payload))
	if err != nil {
		return nil, fail(0, nil, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", s.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fail(0, nil, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, fail(resp.StatusCode, errorDetails(body), nil)
	}

	var out graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fail(resp.StatusCode, nil, fmt.Errorf("decode response: %w", err))
	}
	if hasErrors(out.Errors) {
		return nil, fail(resp.StatusCode, out.Errors, nil)
	}
	return out.Data, nil
}

func (c *Client) endpoint(shop string) string {
	base := c.baseURL
	if base == "" {
		base = "https://" + shop
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", base, c.apiVersion)
}

// hasErrors reports whether raw is a non-empty "errors" value.
func hasErrors(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) && !bytes.Equal(trimmed, []byte("[]"))
}

// errorDetails extracts the "errors" member of a JSON error body, falling
// back to the body text as a JSON string.
func errorDetails(body []byte) json.RawMessage {
	var envelope struct {
		Errors json.RawMessage `json:"errors"`
	}
	if json.Unmarshal(body, &envelope) == nil && hasErrors(envelope.Errors) {
		return envelope.Errors
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return nil
	}
	encoded, _ := json.Marshal(text)
	return encoded
}
