// Package identity talks to the external identity/plan provider that owns
// user accounts, the premium plan flag, and the free-usage counter kept in
// each user's private metadata.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"server/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Options configures the identity client.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client implements domain.IdentityClient over the provider's REST API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type userPayload struct {
	ID              string `json:"id"`
	Plan            string `json:"plan"`
	PrivateMetadata struct {
		FreeUsage *int `json:"free_usage"`
	} `json:"private_metadata"`
}

// NewClient validates the options and constructs a Client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("identity: api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.clerk.com/v1"
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		client:  client,
	}, nil
}

// Lookup fetches the user's plan and free-usage counter. UsageTracked is false
// when the counter has never been written.
func (c *Client) Lookup(ctx context.Context, userID string) (*domain.UserProfile, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("identity: http request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("identity: lookup status %d", resp.StatusCode)
	}

	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("identity: decode response: %w", err)
	}

	profile := &domain.UserProfile{ID: payload.ID, Plan: domain.PlanFree}
	if payload.Plan == string(domain.PlanPremium) {
		profile.Plan = domain.PlanPremium
	}
	if payload.PrivateMetadata.FreeUsage != nil {
		profile.FreeUsage = *payload.PrivateMetadata.FreeUsage
		profile.UsageTracked = true
	}
	return profile, nil
}

// SetFreeUsage writes the free-usage counter into the user's private metadata.
func (c *Client) SetFreeUsage(ctx context.Context, userID string, value int) error {
	body := map[string]any{
		"private_metadata": map[string]any{"free_usage": value},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("identity: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/metadata", c.baseURL, url.PathEscape(userID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("identity: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("identity: http request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("identity: metadata update status %d", resp.StatusCode)
	}
	return nil
}

var _ domain.IdentityClient = (*Client)(nil)
