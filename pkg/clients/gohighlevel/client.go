// Package gohighlevel implements the CRM action gateway against the
// GoHighLevel REST API.
package gohighlevel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://services.leadconnectorhq.com"
	tokenSlack     = 30 * time.Second
)

// Config carries the client settings. HTTPClient and Now are optional and
// exist so tests can inject a recording transport and a fake clock.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Now        func() time.Time
}

// tokenCache holds the short-lived bearer token minted from the API key.
// It is scoped to the client instance, never process-wide.
type tokenCache struct {
	token     string
	expiresAt time.Time
}

// Client implements protocol.ActionExecutor. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
	now        func() time.Time

	mu    sync.Mutex
	cache tokenCache
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
		now:        cfg.Now,
	}
}

func (c *Client) AddTag(ctx context.Context, contactID, tagID string) error {
	return c.do(ctx, http.MethodPost, "/contacts/"+contactID+"/tags", map[string]any{
		"tags": []string{tagID},
	})
}

func (c *Client) LaunchWorkflow(ctx context.Context, workflowID, contactID string) error {
	return c.do(ctx, http.MethodPost, "/contacts/"+contactID+"/workflow/"+workflowID, map[string]any{})
}

func (c *Client) UpdateContact(ctx context.Context, contactID string, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, "/contacts/"+contactID, fields)
}

func (c *Client) MovePipelineStage(ctx context.Context, opportunityID, stageID string) error {
	return c.do(ctx, http.MethodPut, "/opportunities/"+opportunityID, map[string]any{
		"stageId": stageID,
	})
}

func (c *Client) MarkNoShow(ctx context.Context, appointmentID string) error {
	return c.do(ctx, http.MethodPut, "/appointments/"+appointmentID, map[string]any{
		"status": "noshow",
	})
}

func (c *Client) SendFollowUp(ctx context.Context, contactID, message string) error {
	return c.do(ctx, http.MethodPost, "/conversations/messages", map[string]any{
		"contactId": contactID,
		"message":   message,
		"type":      "SMS",
	})
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns the cached bearer token, minting a fresh one when the
// cache is empty or within tokenSlack of expiring.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache.token != "" && c.now().Add(tokenSlack).Before(c.cache.expiresAt) {
		return c.cache.token, nil
	}

	body, err := json.Marshal(map[string]string{"grant_type": "api_key", "api_key": c.apiKey})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer closeBody(resp.Body, c.logger)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.cache = tokenCache{
		token:     tokens.AccessToken,
		expiresAt: c.now().Add(time.Duration(tokens.ExpiresIn) * time.Second),
	}

	return c.cache.token, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload map[string]any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("ghl: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ghl: failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ghl: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ghl: request failed: %w", err)
	}
	defer closeBody(resp.Body, c.logger)

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("ghl: %s %s returned status %d: %s", method, path, resp.StatusCode, string(snippet))
	}

	return nil
}

func closeBody(body io.ReadCloser, logger *slog.Logger) {
	if err := body.Close(); err != nil {
		logger.Error("failed to close response body", "error", err)
	}
}
