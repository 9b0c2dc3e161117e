package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

func writeToken(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"test-token"}`), 0o600))
	return path
}

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "label:Work", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("maxResults"))
		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{{"id": "m1"}, {"id": "m2"}},
		})
	})

	mux.HandleFunc("/users/me/messages/m1", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("format") {
		case "metadata":
			json.NewEncoder(w).Encode(map[string]any{
				"id":       "m1",
				"threadId": "t1",
				"labelIds": []string{"INBOX"},
				"payload": map[string]any{
					"headers": []map[string]string{
						{"name": "Subject", "value": "Hello"},
						{"name": "From", "value": "a@example.com"},
						{"name": "To", "value": "b@example.com"},
						{"name": "Date", "value": "Mon, 12 Jan 2026 10:00:00 +0000"},
					},
				},
			})
		case "full":
			json.NewEncoder(w).Encode(map[string]any{
				"id":       "m1",
				"threadId": "t1",
				"labelIds": []string{"INBOX"},
				"snippet":  "Hello there",
				"payload": map[string]any{
					"mimeType": "multipart/mixed",
					"headers": []map[string]string{
						{"name": "Subject", "value": "Hello"},
						{"name": "Date", "value": "Mon, 12 Jan 2026 10:00:00 +0000"},
					},
					"parts": []map[string]any{
						{
							"mimeType": "text/plain",
							"body":     map[string]any{"size": 11, "data": b64("plain body\n")},
						},
						{
							"mimeType": "text/html",
							"body":     map[string]any{"size": 12, "data": b64("<p>body</p>")},
						},
						{
							"mimeType": "application/pdf",
							"filename": "report.pdf",
							"body":     map[string]any{"size": 2048},
						},
					},
				},
			})
		}
	})

	mux.HandleFunc("/users/me/messages/m2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":       "m2",
			"threadId": "t2",
			"payload": map[string]any{
				"headers": []map[string]string{{"name": "Subject", "value": "Second"}},
			},
		})
	})

	mux.HandleFunc("/users/me/messages/gone", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := newTestServer(t)
	return NewClient(Options{BaseURL: srv.URL, TokenPath: writeToken(t)}, nil)
}

func TestSearch(t *testing.T) {
	c := newTestClient(t)

	summaries, err := c.Search(context.Background(), "label:Work", 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "m1", summaries[0].ID)
	assert.Equal(t, "t1", summaries[0].ThreadID)
	assert.Equal(t, "Hello", summaries[0].Subject)
	assert.Equal(t, "a@example.com", summaries[0].From)
	assert.Equal(t, []string{"INBOX"}, summaries[0].LabelIDs)
	assert.Equal(t, "Second", summaries[1].Subject)
}

func TestGetMessage(t *testing.T) {
	c := newTestClient(t)

	msg, err := c.GetMessage(context.Background(), "m1")
	require.NoError(t, err)

	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, "Hello there", msg.Snippet)
	assert.Equal(t, "plain body\n", msg.Body.Text)
	assert.Equal(t, "<p>body</p>", msg.Body.HTML)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "report.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, int64(2048), msg.Attachments[0].Size)
}

func TestGetMessageNotFound(t *testing.T) {
	c := newTestClient(t)
	_, err := c.GetMessage(context.Background(), "gone")
	assert.ErrorIs(t, err, types.ErrMessageNotFound)
}

func TestMissingTokenIsNotAuthenticated(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(Options{BaseURL: srv.URL, TokenPath: filepath.Join(t.TempDir(), "none.json")}, nil)

	assert.False(t, c.CheckAuth())
	_, err := c.Search(context.Background(), "anything", 1)
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}

func TestRejectedTokenIsNotAuthenticated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, TokenPath: writeToken(t)}, nil)
	_, err := c.Search(context.Background(), "q", 1)
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}
