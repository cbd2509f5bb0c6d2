// Package openrouter provides a client for the OpenRouter billing API.
package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrUnauthorized indicates the API key is invalid or expired.
var ErrUnauthorized = errors.New("openrouter: unauthorized (API key invalid or expired)")

// RetryPolicy controls retries for generation lookups. Backoff is linear:
// after attempt n the client waits BaseDelay * n before trying again.
type RetryPolicy struct {
	Enabled     bool
	MaxAttempts int
	BaseDelay   time.Duration
}

// Client fetches generation costs and account balances from OpenRouter.
type Client struct {
	baseURL         string
	apiKey          string
	provisioningKey string
	retry           RetryPolicy
	http            *http.Client

	// sleep is swapped out in tests to avoid real delays.
	sleep func(context.Context, time.Duration) error
}

// NewClient creates a client for the given inference key. The provisioning
// key may be empty; it is only needed for FetchCredits. Returns nil if the
// inference key is empty.
func NewClient(apiKey, provisioningKey, baseURL string, retry RetryPolicy) *Client {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		apiKey:          apiKey,
		provisioningKey: strings.TrimSpace(provisioningKey),
		retry:           retry,
		http:            &http.Client{},
		sleep:           sleepCtx,
	}
}

// HasProvisioningKey reports whether the credits endpoint is usable.
func (c *Client) HasProvisioningKey() bool {
	return c.provisioningKey != ""
}

// ResolveGeneration looks up the authoritative cost record for a generation
// id, retrying per the client's retry policy. Any transport error, non-2xx
// status, or malformed body surfaces as a single lookup failure; callers
// only need the binary resolved/unresolved outcome.
func (c *Client) ResolveGeneration(ctx context.Context, id string) (*Generation, error) {
	attempts := 1
	if c.retry.Enabled && c.retry.MaxAttempts > 1 {
		attempts = c.retry.MaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		gen, err := c.resolveOnce(ctx, id)
		if err == nil {
			return gen, nil
		}
		if errors.Is(err, ErrUnauthorized) {
			return nil, err // retrying an auth failure cannot succeed
		}
		lastErr = err

		if attempt < attempts {
			if err := c.sleep(ctx, c.retry.BaseDelay*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

func (c *Client) resolveOnce(ctx context.Context, id string) (*Generation, error) {
	body, err := c.get(ctx, "/generation?id="+url.QueryEscape(id), c.apiKey)
	if err != nil {
		return nil, err
	}

	var resp generationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openrouter: parsing generation: %w", err)
	}
	if resp.Data.ID == "" {
		return nil, fmt.Errorf("openrouter: generation %s not found", id)
	}
	return &resp.Data, nil
}

// FetchKeyInfo returns usage and (nullable) limit for the inference key.
func (c *Client) FetchKeyInfo(ctx context.Context) (*KeyInfo, error) {
	body, err := c.get(ctx, "/auth/key", c.apiKey)
	if err != nil {
		return nil, err
	}

	var resp keyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openrouter: parsing key info: %w", err)
	}
	return &resp.Data, nil
}

// FetchCredits returns account-level purchased credits and lifetime usage.
// Requires the provisioning key.
func (c *Client) FetchCredits(ctx context.Context) (*Credits, error) {
	if c.provisioningKey == "" {
		return nil, errors.New("openrouter: no provisioning key configured")
	}

	body, err := c.get(ctx, "/credits", c.provisioningKey)
	if err != nil {
		return nil, err
	}

	var resp creditsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openrouter: parsing credits: %w", err)
	}
	return &resp.Data, nil
}

// get performs an authenticated GET request and returns the response body.
func (c *Client) get(ctx context.Context, path, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("openrouter: creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/orburn/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openrouter: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openrouter: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("openrouter: reading response: %w", err)
	}
	return body, nil
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
