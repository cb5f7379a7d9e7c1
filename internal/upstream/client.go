// internal/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zipstore/zip-storefront/internal/config"
)

// Client talks to the external catalog/order REST backend. It only shuttles
// JSON; the backend owns all catalog and order state.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Error is a decoded non-2xx upstream response. The backend reports either a
// single message or a list of field-specific validation messages.
type Error struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("upstream %d: %s", e.StatusCode, strings.Join(e.Errors, "; "))
	}
	if e.Message != "" {
		return fmt.Sprintf("upstream %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %d", e.StatusCode)
}

// AsError extracts an *Error when err came from a decoded upstream response.
func AsError(err error) (*Error, bool) {
	ue, ok := err.(*Error)
	return ue, ok
}

func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Get issues a GET and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// GetAs is Get with a bearer token forwarded for authenticated routes.
func (c *Client) GetAs(ctx context.Context, path string, query url.Values, token string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, token, out)
}

// Post issues a JSON POST and decodes the response body into out.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, "", out)
}

func (c *Client) PostAs(ctx context.Context, path string, body interface{}, token string, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, token, out)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, "", out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, token string, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build upstream request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

func decodeError(status int, payload []byte) error {
	var body struct {
		Message string          `json:"message"`
		Errors  json.RawMessage `json:"errors"`
	}
	ue := &Error{StatusCode: status}
	if err := json.Unmarshal(payload, &body); err == nil {
		ue.Message = body.Message
		if len(body.Errors) > 0 {
			// Errors is usually a string array, but tolerate a bare string.
			var list []string
			if err := json.Unmarshal(body.Errors, &list); err == nil {
				ue.Errors = list
			} else {
				var single string
				if err := json.Unmarshal(body.Errors, &single); err == nil && single != "" {
					ue.Errors = []string{single}
				}
			}
		}
	}
	return ue
}
