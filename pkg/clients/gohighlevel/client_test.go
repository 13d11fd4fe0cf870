package gohighlevel

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func newTestServer(t *testing.T, tokenCalls *atomic.Int32, requests *[]recordedRequest) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			tokenCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token": "tok-abc", "expires_in": 3600}`))

			return
		}

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))

		*requests = append(*requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func TestClient_AddTag(t *testing.T) {
	var tokenCalls atomic.Int32

	var requests []recordedRequest

	server := newTestServer(t, &tokenCalls, &requests)
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "key-1"}, slog.Default())

	err := client.AddTag(context.Background(), "John123", "hotlead")
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "/contacts/John123/tags", requests[0].Path)
	assert.Equal(t, "Bearer tok-abc", requests[0].Auth)
	assert.Equal(t, []any{"hotlead"}, requests[0].Body["tags"])
}

func TestClient_OperationPaths(t *testing.T) {
	var tokenCalls atomic.Int32

	var requests []recordedRequest

	server := newTestServer(t, &tokenCalls, &requests)
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "key-1"}, slog.Default())
	ctx := context.Background()

	require.NoError(t, client.LaunchWorkflow(ctx, "welcome123", "John123"))
	require.NoError(t, client.MovePipelineStage(ctx, "opp456", "negotiation"))
	require.NoError(t, client.MarkNoShow(ctx, "appt456"))
	require.NoError(t, client.SendFollowUp(ctx, "John123", "checking in"))
	require.NoError(t, client.UpdateContact(ctx, "John123", map[string]any{"firstName": "John"}))

	require.Len(t, requests, 5)
	assert.Equal(t, "/contacts/John123/workflow/welcome123", requests[0].Path)
	assert.Equal(t, "/opportunities/opp456", requests[1].Path)
	assert.Equal(t, "negotiation", requests[1].Body["stageId"])
	assert.Equal(t, "/appointments/appt456", requests[2].Path)
	assert.Equal(t, "noshow", requests[2].Body["status"])
	assert.Equal(t, "/conversations/messages", requests[3].Path)
	assert.Equal(t, "checking in", requests[3].Body["message"])
	assert.Equal(t, "/contacts/John123", requests[4].Path)
}

func TestClient_TokenCachedAcrossCalls(t *testing.T) {
	var tokenCalls atomic.Int32

	var requests []recordedRequest

	server := newTestServer(t, &tokenCalls, &requests)
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "key-1"}, slog.Default())
	ctx := context.Background()

	require.NoError(t, client.AddTag(ctx, "c1", "t1"))
	require.NoError(t, client.AddTag(ctx, "c2", "t2"))
	require.NoError(t, client.MarkNoShow(ctx, "a1"))

	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestClient_TokenRefetchedAfterExpiry(t *testing.T) {
	var tokenCalls atomic.Int32

	var requests []recordedRequest

	server := newTestServer(t, &tokenCalls, &requests)
	defer server.Close()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	client := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "key-1",
		Now:     func() time.Time { return current },
	}, slog.Default())
	ctx := context.Background()

	require.NoError(t, client.AddTag(ctx, "c1", "t1"))
	assert.Equal(t, int32(1), tokenCalls.Load())

	// Jump past the one-hour token lifetime; the next call must re-mint.
	current = current.Add(2 * time.Hour)

	require.NoError(t, client.AddTag(ctx, "c1", "t2"))
	assert.Equal(t, int32(2), tokenCalls.Load())
}

func TestClient_SurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			_, _ = w.Write([]byte(`{"access_token": "tok-abc", "expires_in": 3600}`))

			return
		}

		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "contact not found"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "key-1"}, slog.Default())

	err := client.AddTag(context.Background(), "missing", "hotlead")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "contact not found")
}

func TestClient_TokenEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "bad-key"}, slog.Default())

	err := client.AddTag(context.Background(), "c1", "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
