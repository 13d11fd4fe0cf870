// Package symbl implements the meeting intelligence provider against the
// Symbl.ai conversation API.
package symbl

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

	"github.com/jarvishq/jarvis/pkg/models"
)

const (
	defaultBaseURL = "https://api.symbl.ai"
	tokenSlack     = 30 * time.Second
)

// Config carries the client settings. HTTPClient and Now are optional and
// exist so tests can inject a recording transport and a fake clock.
type Config struct {
	BaseURL    string
	AppID      string
	AppSecret  string
	HTTPClient *http.Client
	Now        func() time.Time
}

type tokenCache struct {
	token     string
	expiresAt time.Time
}

// Client implements protocol.MeetingIntelligence. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appSecret  string
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
		appID:      cfg.AppID,
		appSecret:  cfg.AppSecret,
		logger:     logger,
		now:        cfg.Now,
	}
}

type conversationResponse struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Metadata  struct {
		ContactID string `json:"contactId"`
	} `json:"metadata"`
}

type summaryResponse struct {
	Summary []struct {
		Text string `json:"text"`
	} `json:"summary"`
}

type insightsResponse struct {
	Insights []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"insights"`
}

type conversationsResponse struct {
	Conversations []conversationResponse `json:"conversations"`
}

// GetMeeting assembles a meeting record from the conversation, summary, and
// insights endpoints.
func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*models.Meeting, error) {
	var conversation conversationResponse
	if err := c.get(ctx, "/v1/conversations/"+meetingID, &conversation); err != nil {
		return nil, fmt.Errorf("symbl: failed to fetch conversation: %w", err)
	}

	var summary summaryResponse
	if err := c.get(ctx, "/v1/conversations/"+meetingID+"/summary", &summary); err != nil {
		return nil, fmt.Errorf("symbl: failed to fetch summary: %w", err)
	}

	var insights insightsResponse
	if err := c.get(ctx, "/v1/conversations/"+meetingID+"/insights", &insights); err != nil {
		return nil, fmt.Errorf("symbl: failed to fetch insights: %w", err)
	}

	meeting := &models.Meeting{
		ID:        conversation.ID,
		ContactID: conversation.Metadata.ContactID,
		Title:     conversation.Topic,
		StartedAt: conversation.StartTime,
		EndedAt:   conversation.EndTime,
	}

	for _, part := range summary.Summary {
		if meeting.Summary != "" {
			meeting.Summary += " "
		}

		meeting.Summary += part.Text
	}

	for _, insight := range insights.Insights {
		meeting.Insights = append(meeting.Insights, models.Insight{
			ID:   insight.ID,
			Type: insight.Type,
			Text: insight.Text,
		})
	}

	return meeting, nil
}

// RecentMeetings lists conversations that ended after the given time and
// resolves each into a full meeting record.
func (c *Client) RecentMeetings(ctx context.Context, since time.Time) ([]*models.Meeting, error) {
	var list conversationsResponse

	path := "/v1/conversations?startTime=" + since.UTC().Format(time.RFC3339)
	if err := c.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("symbl: failed to list conversations: %w", err)
	}

	meetings := make([]*models.Meeting, 0, len(list.Conversations))

	for _, conversation := range list.Conversations {
		meeting, err := c.GetMeeting(ctx, conversation.ID)
		if err != nil {
			return nil, err
		}

		meetings = append(meetings, meeting)
	}

	return meetings, nil
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache.token != "" && c.now().Add(tokenSlack).Before(c.cache.expiresAt) {
		return c.cache.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"type":      "application",
		"appId":     c.appID,
		"appSecret": c.appSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token:generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer c.closeBody(resp.Body)

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

func (c *Client) get(ctx context.Context, path string, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("GET %s returned status %d: %s", path, resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		c.logger.Error("failed to close response body", "error", err)
	}
}
