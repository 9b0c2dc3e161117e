// Package gmail implements the remote record source against the Gmail
// v1 REST API. The archive never sees this package; the CLI materializes
// messages here and hands the store plain (id, date, headers, content)
// tuples.
package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

const (
	defaultBaseURL = "https://gmail.googleapis.com/gmail/v1"
	defaultTimeout = 30 * time.Second
	defaultLimit   = 50
)

// metadataHeaders are the only headers fetched during Search; full
// headers come with GetMessage.
var metadataHeaders = []string{"Subject", "From", "To", "Date"}

// Options configures the client. BaseURL and HTTPClient exist for
// tests; TokenPath is where the bearer token JSON lives.
type Options struct {
	BaseURL    string
	TokenPath  string
	HTTPClient *http.Client
}

// Client talks to the Gmail API for a single authenticated user.
type Client struct {
	baseURL    string
	tokenPath  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ types.Source = (*Client)(nil)

// NewClient returns a Client. The token is loaded lazily per request so
// a freshly imported token is picked up without restarting.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    opts.BaseURL,
		tokenPath:  opts.TokenPath,
		httpClient: opts.HTTPClient,
		logger:     logger,
	}
}

// CheckAuth reports whether a usable token is present.
func (c *Client) CheckAuth() bool {
	_, err := loadToken(c.tokenPath)
	return err == nil
}

// Search lists message ids matching the query and fetches metadata-only
// summaries for each.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]types.Summary, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	c.logger.Info("searching mailbox", "query", query, "limit", limit)

	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	q.Set("maxResults", fmt.Sprint(limit))

	var listed struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := c.getJSON(ctx, "/users/me/messages", q, &listed); err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}
	if len(listed.Messages) == 0 {
		return nil, nil
	}

	summaries := make([]types.Summary, 0, len(listed.Messages))
	for _, m := range listed.Messages {
		msg, err := c.fetchMessage(ctx, m.ID, "metadata")
		if err != nil {
			return nil, fmt.Errorf("fetch metadata for %s: %w", m.ID, err)
		}
		h := msg.headerMap()
		summaries = append(summaries, types.Summary{
			ID:       msg.ID,
			ThreadID: msg.ThreadID,
			Date:     h["date"],
			From:     h["from"],
			To:       h["to"],
			Subject:  h["subject"],
			LabelIDs: msg.LabelIDs,
		})
	}
	return summaries, nil
}

// GetMessage fetches one message in full and decodes its body parts.
func (c *Client) GetMessage(ctx context.Context, id string) (*types.Message, error) {
	msg, err := c.fetchMessage(ctx, id, "full")
	if err != nil {
		return nil, err
	}

	h := msg.headerMap()
	body, attachments := decodePayload(msg.Payload)
	return &types.Message{
		ID:          msg.ID,
		ThreadID:    msg.ThreadID,
		LabelIDs:    msg.LabelIDs,
		Snippet:     msg.Snippet,
		Date:        h["date"],
		From:        h["from"],
		To:          h["to"],
		Subject:     h["subject"],
		Body:        body,
		Attachments: attachments,
	}, nil
}

// fetchMessage runs GET /users/me/messages/{id} in the given format.
func (c *Client) fetchMessage(ctx context.Context, id, format string) (*apiMessage, error) {
	q := url.Values{}
	q.Set("format", format)
	if format == "metadata" {
		for _, h := range metadataHeaders {
			q.Add("metadataHeaders", h)
		}
	}

	var msg apiMessage
	if err := c.getJSON(ctx, "/users/me/messages/"+url.PathEscape(id), q, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// getJSON performs an authenticated GET and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	token, err := loadToken(c.tokenPath)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrNotAuthenticated, err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: api returned %s", types.ErrNotAuthenticated, resp.Status)
	case http.StatusNotFound:
		return types.ErrMessageNotFound
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("api returned %s: %s", resp.Status, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
