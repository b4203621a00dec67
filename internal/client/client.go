// Package client is the data layer consumers sit on top of: a resource cache
// keyed by logical path, with explicit invalidation after mutations. Entries
// never expire on a timer; a cached value stays until a mutation names it
// stale.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hros/ess-gateway/internal/entity"
)

// UnauthorizedMode picks what Query does on a 401: screens that render
// before login want a silent nil, screens whose session expired mid-use want
// the error surfaced.
type UnauthorizedMode int

const (
	ReturnNil UnauthorizedMode = iota
	Throw
)

var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx gateway answer with its message body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

type Client struct {
	base  string
	http  *http.Client
	on401 UnauthorizedMode

	mu    sync.Mutex
	cache map[string]json.RawMessage
	token string
}

func New(baseURL string, on401 UnauthorizedMode) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: 30 * time.Second},
		on401: on401,
		cache: make(map[string]json.RawMessage),
	}
}

// Login authenticates against the gateway and keeps the issued bearer token
// for subsequent calls.
func (c *Client) Login(ctx context.Context, employeeID, password string) (*entity.User, error) {
	body, err := c.request(ctx, http.MethodPost, "/api/auth/login", entity.LoginRequest{
		EmployeeID: employeeID,
		Password:   password,
	})
	if err != nil {
		return nil, err
	}

	var resp entity.LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()

	return &resp.User, nil
}

// Logout always clears the local token, even when the gateway call fails.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodPost, "/api/auth/logout", nil)

	c.mu.Lock()
	c.token = ""
	c.cache = make(map[string]json.RawMessage)
	c.mu.Unlock()

	return err
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

// Query serves path from cache when present, otherwise fetches, caches and
// returns. Concurrent queries for one path may race; last response wins.
func (c *Client) Query(ctx context.Context, path string) (json.RawMessage, error) {
	c.mu.Lock()
	cached, ok := c.cache[path]
	c.mu.Unlock()

	if ok {
		return cached, nil
	}

	body, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			if c.on401 == ReturnNil {
				return nil, nil
			}

			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		}

		return nil, err
	}

	c.mu.Lock()
	c.cache[path] = body
	c.mu.Unlock()

	return body, nil
}

// Mutate always goes to the network. On success the named cache entries are
// dropped, so the next Query refetches them. The caller owns the
// invalidation list; a mutation that forgets a dependent path leaves that
// path stale.
func (c *Client) Mutate(ctx context.Context, method, path string, payload any, invalidate ...string) (json.RawMessage, error) {
	body, err := c.request(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for _, stale := range invalidate {
		delete(c.cache, stale)
	}
	c.mu.Unlock()

	return body, nil
}

// Invalidate drops cache entries without a mutation, e.g. on user-initiated
// refresh.
func (c *Client) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, path := range paths {
		delete(c.cache, path)
	}
}

func (c *Client) request(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		message := http.StatusText(resp.StatusCode)

		var parsed struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			message = parsed.Message
		}

		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	return body, nil
}
