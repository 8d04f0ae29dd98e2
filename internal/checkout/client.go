package checkout

import (
	"context"
	"fmt"
	"sync"

	"checkroute/internal/widget/base"

	"github.com/rs/zerolog/log"
)

// Client talks to the upstream checkout-state service over HTTP. It
// tracks which methods have an initialization in flight so that status
// queries stay local and synchronous.
type Client struct {
	http *base.HTTPClient

	mu           sync.Mutex
	initializing map[string]bool
}

// NewClient creates a checkout client against a base URL
func NewClient(baseURL string, timeoutSec int) *Client {
	httpClient := base.NewHTTPClient("checkout", timeoutSec)
	httpClient.SetBaseURL(baseURL)

	return &Client{
		http:         httpClient,
		initializing: make(map[string]bool),
	}
}

// InitializeCustomer forwards a customer initialization
func (c *Client) InitializeCustomer(ctx context.Context, opts Options) error {
	return c.post(ctx, "/customer/initialize", opts)
}

// DeinitializeCustomer forwards a customer teardown
func (c *Client) DeinitializeCustomer(ctx context.Context, opts Options) error {
	return c.post(ctx, "/customer/deinitialize", opts)
}

// InitializePayment forwards a payment initialization and marks the
// method as initializing until the call resolves.
func (c *Client) InitializePayment(ctx context.Context, opts Options) error {
	c.setInitializing(opts.MethodID, true)
	defer c.setInitializing(opts.MethodID, false)

	return c.post(ctx, "/payment/initialize", opts)
}

// DeinitializePayment forwards a payment teardown
func (c *Client) DeinitializePayment(ctx context.Context, opts Options) error {
	return c.post(ctx, "/payment/deinitialize", opts)
}

// IsPaymentInitializing reports whether an initialization is in flight
// for the method.
func (c *Client) IsPaymentInitializing(methodID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializing[methodID]
}

func (c *Client) setInitializing(methodID string, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v {
		c.initializing[methodID] = true
	} else {
		delete(c.initializing, methodID)
	}
}

func (c *Client) post(ctx context.Context, endpoint string, opts Options) error {
	resp, err := c.http.PostJSON(ctx, endpoint, opts, nil)
	if err != nil {
		return fmt.Errorf("checkout call %s failed: %w", endpoint, err)
	}
	if resp.StatusCode >= 400 {
		log.Warn().
			Str("endpoint", endpoint).
			Str("method_id", opts.MethodID).
			Int("status", resp.StatusCode).
			Msg("checkout rejected lifecycle call")
		return fmt.Errorf("checkout call %s rejected with status %d", endpoint, resp.StatusCode)
	}
	return nil
}
