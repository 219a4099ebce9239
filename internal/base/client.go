// Package base provides the shared HTTP transport for Wikipedia API calls.
package base

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	apierrors "github.com/olgasafonova/wikitranslate-mcp-server/internal/errors"
	"github.com/olgasafonova/wikitranslate-mcp-server/internal/infra"
	"github.com/olgasafonova/wikitranslate-mcp-server/metrics"
	"github.com/olgasafonova/wikitranslate-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// MaxConcurrentRequests limits parallel API calls
	MaxConcurrentRequests = 5

	// MaxResponseSize caps how much of a response body is read
	MaxResponseSize = 10 << 20

	// DefaultUserAgent identifies the client to Wikipedia (required by its API etiquette)
	DefaultUserAgent = "wikitranslate-mcp-server/1.0 (https://github.com/olgasafonova/wikitranslate-mcp-server)"
)

// Client provides common HTTP infrastructure: a bounded number of concurrent
// requests and one circuit breaker per upstream host. Each DoRequest call is a
// single attempt; nothing is retried or cached.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	Breakers   *infra.BreakerSet
	Semaphore  chan struct{}
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithTimeout replaces the HTTP client with one using the given timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient = newHTTPClient(d)
	}
}

// WithBreakerConfig sets the per-host circuit breaker thresholds
func WithBreakerConfig(cfg infra.BreakerConfig) ClientOption {
	return func(client *Client) {
		client.Breakers = infra.NewBreakerSet(cfg)
	}
}

// WithMaxConcurrency sets how many requests may be in flight at once
func WithMaxConcurrency(n int) ClientOption {
	return func(client *Client) {
		if n > 0 {
			client.Semaphore = make(chan struct{}, n)
		}
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(DefaultTimeout),
		Logger:     slog.Default(),
		Breakers:   infra.NewBreakerSet(infra.DefaultBreakerConfig()),
		Semaphore:  make(chan struct{}, MaxConcurrentRequests),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases idle connections held by the client
func (c *Client) Close() {
	c.HTTPClient.CloseIdleConnections()
}

// CircuitBreakerStats returns the state of every host breaker seen so far
func (c *Client) CircuitBreakerStats() []infra.CircuitBreakerStats {
	return c.Breakers.Stats()
}

// AcquireSlot blocks until a request slot is available or context is canceled
func (c *Client) AcquireSlot(ctx context.Context) error {
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	default:
	}

	metrics.ConcurrencyWaits.Inc()
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting for a request slot: %w", ctx.Err())
	}
}

// ReleaseSlot releases a request slot
func (c *Client) ReleaseSlot() {
	<-c.Semaphore
}

// RequestConfig is the per-request configuration passed to DoRequest.
// It replaces any process-wide request defaults.
type RequestConfig struct {
	Op        string      // short operation name for logs, spans and errors
	URL       string      // full URL including query string
	UserAgent string      // defaults to DefaultUserAgent
	Header    http.Header // extra headers, applied last
}

// JSONRequest returns the request configuration shared by all Wikipedia calls:
// GET with JSON content negotiation and no credentials.
func JSONRequest(op, rawURL, userAgent string) RequestConfig {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	return RequestConfig{
		Op:        op,
		URL:       rawURL,
		UserAgent: userAgent,
		Header:    h,
	}
}

// DoRequest performs a single GET request guarded by the host circuit breaker
// and the concurrency semaphore. It returns the body and status code for any
// HTTP response; only transport failures are errors (NetworkError).
// Responses with status >= 500 are returned but counted as breaker failures.
func (c *Client) DoRequest(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, 0, apierrors.NewNetworkError(cfg.Op, cfg.URL, fmt.Errorf("invalid URL: %w", err))
	}
	host := u.Host

	ctx, span := tracing.StartSpan(ctx, "wikipedia.api."+cfg.Op)
	defer span.End()
	tracing.AddWikiAttributes(span, cfg.Op, host)

	breaker := c.Breakers.For(host)
	if !breaker.Allow() {
		stats := breaker.Stats()
		openErr := infra.ErrCircuitOpen{
			Host:     host,
			RetryAt:  breaker.RetryAt(),
			Failures: stats.ConsecutiveFails,
		}
		span.SetStatus(codes.Error, openErr.Error())
		return nil, 0, apierrors.NewNetworkError(cfg.Op, cfg.URL, openErr)
	}

	if err := c.AcquireSlot(ctx); err != nil {
		breaker.Release()
		return nil, 0, apierrors.NewNetworkError(cfg.Op, cfg.URL, err)
	}
	defer c.ReleaseSlot()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		breaker.Release()
		return nil, 0, apierrors.NewNetworkError(cfg.Op, cfg.URL, fmt.Errorf("failed to create request: %w", err))
	}

	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	} else {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}
	for k, vs := range cfg.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.recordTransportFailure(ctx, breaker, cfg, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		metrics.RecordHTTPRequest(cfg.Op, "error", time.Since(start).Seconds())
		return nil, 0, apierrors.NewNetworkError(cfg.Op, cfg.URL, err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		c.recordTransportFailure(ctx, breaker, cfg, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		metrics.RecordHTTPRequest(cfg.Op, "error", time.Since(start).Seconds())
		return nil, 0, apierrors.NewNetworkError(cfg.Op, cfg.URL, fmt.Errorf("failed to read response: %w", err))
	}

	metrics.RecordHTTPRequest(cfg.Op, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("http.response.status_code", resp.StatusCode),
		attribute.Int("http.response.body.size", len(body)),
	)

	if resp.StatusCode >= 500 {
		breaker.RecordFailure()
		span.SetStatus(codes.Error, "server error")
		c.Logger.Warn("Wikipedia API server error",
			"op", cfg.Op,
			"host", host,
			"status", resp.StatusCode)
	} else {
		breaker.RecordSuccess()
	}

	return body, resp.StatusCode, nil
}

// recordTransportFailure counts a failure against the host breaker unless the
// caller canceled the request, in which case the breaker slot is handed back.
func (c *Client) recordTransportFailure(ctx context.Context, breaker *infra.CircuitBreaker, cfg RequestConfig, err error) {
	if ctx.Err() != nil {
		breaker.Release()
		return
	}
	breaker.RecordFailure()
	c.Logger.Warn("Wikipedia API request failed",
		"op", cfg.Op,
		"url", cfg.URL,
		"error", err)
}

// readAndClose reads at most MaxResponseSize bytes of the body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxResponseSize {
		return nil, errors.New("response exceeds maximum size")
	}
	return body, nil
}

// Truncate shortens a string to at most maxLen bytes, adding "..." if
// truncated. The cut never splits a UTF-8 sequence.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := max(maxLen, 0)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// newHTTPClient creates an HTTP client with no cookie jar, so no credentials
// are ever sent.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
