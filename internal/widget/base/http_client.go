package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// HTTPClient provides common HTTP functionality for widget integrations
// and the checkout collaborator. Transient failures (5xx, transport
// errors) are retried with exponential backoff.
type HTTPClient struct {
	client     *http.Client
	baseURL    string
	name       string // caller name for logging
	maxElapsed time.Duration
}

// NewHTTPClient creates a new HTTP client with default settings
func NewHTTPClient(name string, timeoutSec int) *HTTPClient {
	if timeoutSec == 0 {
		timeoutSec = 30 // default timeout
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		name:       name,
		maxElapsed: 20 * time.Second,
	}
}

// SetBaseURL sets the base URL for all requests
func (c *HTTPClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// HTTPResponse wraps an upstream response body and status
type HTTPResponse struct {
	StatusCode int
	Body       []byte
}

// PostJSON makes a POST request with a JSON payload, retrying transient
// failures until the context expires or backoff gives up.
func (c *HTTPClient) PostJSON(ctx context.Context, endpoint string, payload interface{}, headers map[string]string) (*HTTPResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
	}

	url := c.baseURL + endpoint

	var resp *HTTPResponse
	operation := func() error {
		var opErr error
		resp, opErr = c.doOnce(ctx, http.MethodPost, url, body, headers)
		return opErr
	}

	policy := backoff.WithContext(c.retryPolicy(), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetJSON makes a GET request with the same retry behavior as PostJSON
func (c *HTTPClient) GetJSON(ctx context.Context, endpoint string, headers map[string]string) (*HTTPResponse, error) {
	url := c.baseURL + endpoint

	var resp *HTTPResponse
	operation := func() error {
		var opErr error
		resp, opErr = c.doOnce(ctx, http.MethodGet, url, nil, headers)
		return opErr
	}

	policy := backoff.WithContext(c.retryPolicy(), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) retryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = c.maxElapsed
	return b
}

func (c *HTTPClient) doOnce(ctx context.Context, httpMethod, url string, body []byte, headers map[string]string) (*HTTPResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, httpMethod, url, reader)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("CheckRoute/%s", c.name))
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	log.Debug().
		Str("caller", c.name).
		Str("method", httpMethod).
		Str("url", url).
		Msg("making HTTP request")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err // transport errors are retryable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("upstream %s returned %d", url, resp.StatusCode)
	}
	// 4xx won't heal on retry; hand it back for the caller to inspect
	return &HTTPResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}
