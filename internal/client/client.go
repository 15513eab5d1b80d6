// ABOUTME: HTTP client core for the AgriAI backend API
// ABOUTME: Attaches bearer credentials and routes 401s to the session-expired handler

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// basePath is the API prefix shared by all backend routes
const basePath = "/api/v1"

// ErrUnauthorized marks responses where the backend rejected the bearer token
var ErrUnauthorized = errors.New("unauthorized")

// TokenSource supplies the bearer token for outgoing requests.
// An empty string means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// staticToken is a TokenSource pinned to a single value
type staticToken string

func (s staticToken) Token() string { return string(s) }

// Client is the API client for the AgriAI backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	onExpired  func()
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource sets the source consulted for the bearer token on each request
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithSessionExpiredHandler sets the callback invoked when an authenticated
// request comes back 401. The handler runs before the error is returned to
// the caller; it is never invoked for requests that carried no token.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// WithTimeout overrides the default HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error: %s", e.Message)
}

// Is reports 401s as ErrUnauthorized so callers can errors.Is on them
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// do sends the request through the default token source
func (c *Client) do(req *http.Request) (*http.Response, error) {
	return c.send(req, c.tokens)
}

// send dispatches the request, attaching a bearer token from ts if one is
// available, and converts non-2xx responses into *APIError. A 401 on a
// request that carried a token fires the session-expired handler.
func (c *Client) send(req *http.Request, ts TokenSource) (*http.Response, error) {
	token := ""
	if ts != nil {
		token = ts.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(req.Context(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		apiErr := c.handleErrorResponse(resp)
		if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onExpired != nil {
			c.onExpired()
		}
		return nil, apiErr
	}

	return resp, nil
}

// getJSON performs a GET and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.getJSONWith(ctx, path, c.tokens, out)
}

// getJSONWith is getJSON with an explicit token source
func (c *Client) getJSONWith(ctx context.Context, path string, ts TokenSource, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+basePath+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.send(req, ts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// postJSON performs a POST with a JSON body and decodes the response into out
func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.postJSONWith(ctx, path, c.tokens, in, out)
}

// postJSONWith is postJSON with an explicit token source. Auth endpoints pass
// nil so a stale stored token never rides along with a credential exchange.
func (c *Client) postJSONWith(ctx context.Context, path string, ts TokenSource, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+basePath+path, strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.send(req, ts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse extracts the backend's error message into an *APIError.
// FastAPI reports errors as {"detail": "..."} where detail is a string or,
// for validation failures, an array of {loc, msg, type} objects.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(body, resp.StatusCode),
	}
}

func errorMessage(body []byte, status int) string {
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String && detail.Str != "":
		return detail.Str
	case detail.IsArray():
		var msgs []string
		for _, item := range detail.Array() {
			if msg := item.Get("msg"); msg.Str != "" {
				msgs = append(msgs, msg.Str)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return fmt.Sprintf("backend returned status %d", status)
}
