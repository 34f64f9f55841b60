package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/archiveview/pkg/archive"
)

const maxBodyBytes = 16 << 20

// Client implements archive.Source over the archive HTTP API.
type Client struct {
	config     *archive.Config
	httpClient *http.Client
}

// New creates a Client for the backend at config.BaseURL. A zero Timeout
// falls back to 30 seconds.
func New(config *archive.Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient creates a Client that sends requests through hc.
func NewWithHTTPClient(config *archive.Config, hc *http.Client) *Client {
	return &Client{config: config, httpClient: hc}
}

// Index fetches GET /v1/archive, adding the search parameter only when query
// is non-empty.
func (c *Client) Index(ctx context.Context, query string) ([]archive.Summary, error) {
	path := "/v1/archive"
	if query != "" {
		path += "?" + url.Values{"search": {query}}.Encode()
	}

	var resp archive.IndexResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("fetch archive index: %w", err)
	}
	return resp.Items, nil
}

// Conversation fetches GET /v1/archive/{id}. A null body is a decode
// failure.
func (c *Client) Conversation(ctx context.Context, id string) (*archive.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("session id is required")
	}

	var record *archive.Record
	if err := c.getJSON(ctx, "/v1/archive/"+url.PathEscape(id), &record); err != nil {
		return nil, fmt.Errorf("fetch session %s: %w", id, err)
	}
	if record == nil {
		return nil, fmt.Errorf("fetch session %s: decode response: null body", id)
	}
	return record, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := archive.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "archiveview/1.0")
	req.Header.Set("X-Request-ID", requestID)
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("archive request",
		"request_id", requestID,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &archive.StatusError{Code: resp.StatusCode, Path: path}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
