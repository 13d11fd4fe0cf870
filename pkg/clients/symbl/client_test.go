package symbl

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, tokenCalls *atomic.Int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/oauth2/token:generate":
			tokenCalls.Add(1)
			_, _ = w.Write([]byte(`{"accessToken": "symbl-tok", "expiresIn": 3600}`))
		case "/v1/conversations/conv1":
			assert.Equal(t, "Bearer symbl-tok", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{
				"id": "conv1",
				"topic": "Demo call",
				"startTime": "2025-06-01T10:00:00Z",
				"endTime": "2025-06-01T10:30:00Z",
				"metadata": {"contactId": "contact1"}
			}`))
		case "/v1/conversations/conv1/summary":
			_, _ = w.Write([]byte(`{"summary": [{"text": "Customer asked about pricing."}, {"text": "Wants a demo."}]}`))
		case "/v1/conversations/conv1/insights":
			_, _ = w.Write([]byte(`{"insights": [
				{"id": "i1", "type": "action_item", "text": "Send pricing sheet"},
				{"id": "i2", "type": "question", "text": "When is the demo?"}
			]}`))
		case "/v1/conversations":
			_, _ = w.Write([]byte(`{"conversations": [{"id": "conv1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGetMeeting_AssemblesRecord(t *testing.T) {
	var tokenCalls atomic.Int32

	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, AppID: "app", AppSecret: "secret"}, slog.Default())

	meeting, err := client.GetMeeting(context.Background(), "conv1")
	require.NoError(t, err)

	assert.Equal(t, "conv1", meeting.ID)
	assert.Equal(t, "contact1", meeting.ContactID)
	assert.Equal(t, "Demo call", meeting.Title)
	assert.Equal(t, "Customer asked about pricing. Wants a demo.", meeting.Summary)
	require.Len(t, meeting.Insights, 2)
	assert.Equal(t, "Send pricing sheet", meeting.Insights[0].Text)

	// Three endpoint calls, one token mint.
	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestGetMeeting_TranscriptCoversSummaryAndInsights(t *testing.T) {
	var tokenCalls atomic.Int32

	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, AppID: "app", AppSecret: "secret"}, slog.Default())

	meeting, err := client.GetMeeting(context.Background(), "conv1")
	require.NoError(t, err)

	transcript := meeting.Transcript()
	assert.Contains(t, transcript, "pricing")
	assert.Contains(t, transcript, "Send pricing sheet")
}

func TestRecentMeetings(t *testing.T) {
	var tokenCalls atomic.Int32

	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, AppID: "app", AppSecret: "secret"}, slog.Default())

	meetings, err := client.RecentMeetings(context.Background(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.Equal(t, "conv1", meetings[0].ID)
}

func TestClient_TokenRefetchedAfterExpiry(t *testing.T) {
	var tokenCalls atomic.Int32

	server := newTestServer(t, &tokenCalls)
	defer server.Close()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	client := NewClient(Config{
		BaseURL:   server.URL,
		AppID:     "app",
		AppSecret: "secret",
		Now:       func() time.Time { return current },
	}, slog.Default())

	_, err := client.GetMeeting(context.Background(), "conv1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), tokenCalls.Load())

	current = current.Add(2 * time.Hour)

	_, err = client.GetMeeting(context.Background(), "conv1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), tokenCalls.Load())
}

func TestGetMeeting_SurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token:generate" {
			_, _ = w.Write([]byte(`{"accessToken": "symbl-tok", "expiresIn": 3600}`))

			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, AppID: "app", AppSecret: "secret"}, slog.Default())

	_, err := client.GetMeeting(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
