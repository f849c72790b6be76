// Package backend is the HTTP client for the payment prediction service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/service"
)

// RequestIDHeader carries a per-call id so backend logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// Client implements service.Backend over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retry      service.RetryOptions
}

// Ensure we implement the interface.
var _ service.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetries sets how many extra attempts /log and /stats get on
// transient failures. /predict is never retried; it has a local fallback.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.retry.MaxAttempts = retries + 1
	}
}

// NewClient creates a backend client for baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: backend base URL", common.ErrMissingConfig)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry: service.RetryOptions{
			MaxAttempts:  1,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict posts the payload to /predict.
func (c *Client) Predict(ctx context.Context, payload model.PredictionPayload) (model.PredictResponse, error) {
	var resp model.PredictResponse
	if err := c.do(ctx, http.MethodPost, "/predict", payload, &resp); err != nil {
		return model.PredictResponse{}, err
	}
	return resp, nil
}

// LogTransaction posts a prediction and its result to /log.
func (c *Client) LogTransaction(ctx context.Context, entry model.LogEntry) error {
	return common.WithRetry(ctx, func() error {
		return c.do(ctx, http.MethodPost, "/log", entry, nil)
	}, c.retry)
}

// GetStats fetches the aggregate statistics from /stats.
func (c *Client) GetStats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	err := common.WithRetry(ctx, func() error {
		stats = model.Stats{}
		return c.do(ctx, http.MethodGet, "/stats", nil, &stats)
	}, c.retry)
	if err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return common.NewUserError("prediction service at "+c.baseURL+" is not reachable",
			fmt.Errorf("%w: %s %s: %w", common.ErrBackendUnavailable, method, path, err))
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("Backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"latency", time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", common.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := fmt.Errorf("%w: %s %s (status %d): %s",
			common.ErrBackendStatus, method, path, resp.StatusCode, strings.TrimSpace(string(respBody)))
		if resp.StatusCode >= http.StatusInternalServerError {
			return &common.RetryableError{Err: statusErr, Retryable: true}
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrInvalidResponse, path, err)
	}
	return nil
}
