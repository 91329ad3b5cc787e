// Package client is a Go client for the kanban REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/google/go-querystring/query"
)

// ErrNoServer is returned when the client has no server URL.
var ErrNoServer = errors.New("no server configured")

// Error is a non-2xx API response.
type Error struct {
	StatusCode int
	Detail     string
}

// Error implements error.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s (%d)", e.Detail, e.StatusCode)
}

// IsStatus returns true if err is an API error with the given status code.
func IsStatus(err error, code int) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == code
}

// Option configures a Client.
type Option func(*Client)

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithAPIKey authenticates requests with an API key. It takes precedence
// over a bearer token on the server.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client talks to a kanban server.
type Client struct {
	base   *url.URL
	token  string
	apiKey string
	http   *http.Client
}

// New returns a client for the server at serverURL.
func New(serverURL string, opts ...Option) (*Client, error) {
	if serverURL == "" {
		return nil, ErrNoServer
	}

	base, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("server url must be http or https: %q", serverURL)
	}

	c := &Client{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// do sends a JSON request and decodes the response into out when out is not
// nil.
func (c *Client) do(ctx context.Context, method, path string, opts, body, out interface{}) error {
	u := *c.base
	u.Path += "/api" + path
	if opts != nil {
		v, err := query.Values(opts)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		u.RawQuery = v.Encode()
	}

	var rd io.Reader
	if body != nil {
		bts, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		rd = bytes.NewReader(bts)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case c.apiKey != "":
		req.Header.Set("X-API-Key", c.apiKey)
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{StatusCode: resp.StatusCode}
		var ae api.Error
		if err := json.NewDecoder(resp.Body).Decode(&ae); err == nil {
			e.Detail = ae.Detail
		}
		return e
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Login exchanges a username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var tok api.Token
	err := c.do(ctx, http.MethodPost, "/token", nil, api.LoginRequest{Username: username, Password: password}, &tok)
	return tok.AccessToken, err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (api.User, error) {
	var u api.User
	err := c.do(ctx, http.MethodGet, "/me", nil, nil, &u)
	return u, err
}

// AdminStatus reports whether the authenticated user is an admin.
func (c *Client) AdminStatus(ctx context.Context) (bool, error) {
	var s api.AdminStatus
	err := c.do(ctx, http.MethodGet, "/admin/status", nil, nil, &s)
	return s.IsAdmin, err
}

// CreateAPIKey creates an API key. A zero ttl never expires. The key is
// only returned here.
func (c *Client) CreateAPIKey(ctx context.Context, name string, ttl time.Duration) (api.APIKey, error) {
	req := api.CreateAPIKeyRequest{Name: name}
	if ttl > 0 {
		days := int((ttl + 24*time.Hour - 1) / (24 * time.Hour))
		req.ExpiresInDays = &days
	}
	var k api.APIKey
	err := c.do(ctx, http.MethodPost, "/api-keys", nil, req, &k)
	return k, err
}

// APIKeys lists the caller's API keys.
func (c *Client) APIKeys(ctx context.Context) ([]api.APIKey, error) {
	var ks []api.APIKey
	err := c.do(ctx, http.MethodGet, "/api-keys", nil, nil, &ks)
	return ks, err
}

// RevokeAPIKey deactivates an API key.
func (c *Client) RevokeAPIKey(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api-keys/%d", id), nil, nil, nil)
}

// ActivateAPIKey reactivates an API key.
func (c *Client) ActivateAPIKey(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api-keys/%d/activate", id), nil, nil, nil)
}

// Users lists users. Admin only.
func (c *Client) Users(ctx context.Context, opts api.ListOptions) ([]api.User, error) {
	var us []api.User
	err := c.do(ctx, http.MethodGet, "/admin/users", opts, nil, &us)
	return us, err
}
