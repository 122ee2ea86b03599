// Package client talks to a running WellNexa backend over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/wellnexa/backend/internal/model/chat"
	"github.com/wellnexa/backend/internal/model/counselor"
	"github.com/wellnexa/backend/internal/model/resource"
)

// Client is a thin JSON client for the /api routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. If baseURL is empty, uses WELLNEXA_SERVER_URL or
// defaults to http://localhost:8080.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("WELLNEXA_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Respond asks the server for an immediate reply to text.
func (c *Client) Respond(ctx context.Context, text string) (chat.Message, error) {
	var reply chat.Message
	err := c.do(ctx, http.MethodPost, "/api/respond", map[string]string{"content": text}, &reply)
	return reply, err
}

// Counselors lists the counselor directory.
func (c *Client) Counselors(ctx context.Context) ([]counselor.Counselor, error) {
	var list []counselor.Counselor
	err := c.do(ctx, http.MethodGet, "/api/counselors", nil, &list)
	return list, err
}

// Resources lists the resource library, optionally filtered.
func (c *Client) Resources(ctx context.Context, filter resource.Filter) ([]resource.Resource, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}

	path := "/api/resources"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var list []resource.Resource
	err := c.do(ctx, http.MethodGet, path, nil, &list)
	return list, err
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error: %s - %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("server error: %s", resp.Status)
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
