// Package client provides the Webex converged recordings HTTP client with
// rate-limit detection, Link-header pagination, and error classification.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/webex-tools/recordings-export/pkg/ratelimit"
	"github.com/webex-tools/recordings-export/pkg/recordings"
)

// Prometheus metrics for recordings API operations.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recordings_api_requests_total",
		Help: "Total recordings API requests by status",
	}, []string{"status"})

	apiRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recordings_api_request_duration_seconds",
		Help:    "Recordings API request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recordings_api_errors_total",
		Help: "Total recordings API errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is the production Webex API base.
const DefaultBaseURL = "https://webexapis.com/v1"

// requestTimeout bounds a single page fetch.
const requestTimeout = 60 * time.Second

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors other than 429.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 rate limit responses.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents invalid or unexpected response bodies.
	ErrorClassDecode ErrorClass = "decode"
)

// Page is the result of fetching one listing page: the records it carried and
// the server-issued cursor to the next page, empty when this was the last one.
type Page struct {
	Items   []recordings.Recording
	NextURL string
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the Webex API, without trailing slash.
	BaseURL string

	// Token is the bearer access token. Requires the
	// spark-admin:recordings_read or spark-compliance:recordings_read scope.
	Token string

	// UserAgent sent with every request.
	UserAgent string
}

// Client fetches recordings listing pages over HTTP.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a recordings API client.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("access token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "recordings-export/1.0"
	}

	logger := log.With().Str("component", "recordings-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// FetchPage performs one authenticated GET against url and decodes the
// listing page. A 429 response is returned as *RateLimitError carrying the
// server-directed wait; every other failure is either an *APIError (non-2xx)
// or a wrapped transport/decode error.
func (c *Client) FetchPage(ctx context.Context, url string) (*Page, error) {
	startTime := time.Now()
	defer func() {
		apiRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	c.logger.Debug().
		Str("url", url).
		Msg("Fetching recordings page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		apiRequestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Str("url", url).Msg("HTTP request failed")
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	apiRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusTooManyRequests {
		wait := ratelimit.ParseRetryAfter(resp.Header.Get("Retry-After"))
		apiErrorsTotal.WithLabelValues(string(ErrorClassRateLimit)).Inc()
		c.logger.Warn().
			Str("url", url).
			Dur("retry_after", wait).
			Msg("Rate limited by API")
		return nil, &RateLimitError{
			Wait:       wait,
			StatusCode: resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errClass := classifyStatus(resp.StatusCode)
		apiErrorsTotal.WithLabelValues(string(errClass)).Inc()
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp),
		}
		c.logger.Warn().
			Str("url", url).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Str("message", apiErr.Message).
			Msg("API request error")
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var listing struct {
		Items *[]recordings.Recording `json:"items"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	if listing.Items == nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, ErrMissingItems
	}

	page := &Page{
		Items:   *listing.Items,
		NextURL: ParseLinkHeader(resp.Header.Get("Link")),
	}

	c.logger.Debug().
		Int("items", len(page.Items)).
		Bool("has_next", page.NextURL != "").
		Msg("Fetched recordings page")

	return page, nil
}

// classifyStatus categorizes a non-2xx, non-429 status for observability.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// readErrorMessage extracts the server-provided message from an error body,
// falling back to the raw body or status text.
func readErrorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return resp.Status
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
