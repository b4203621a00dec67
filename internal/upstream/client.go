// Package upstream is the relay client for the external HR/payroll API. The
// gateway never owns HR data; every call here is a pass-through with error
// normalization.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hros/ess-gateway/internal/entity"
)

// Envelope is the upstream's response wrapper: {status, message?, data?,
// token?}. Some endpoints answer with a bare payload instead; callers that
// pass bodies through must tolerate both.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
}

const statusFail = "fail"

type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// LoginResult carries the sanitized user plus whatever bearer token the
// upstream issued. Token may be empty; not every upstream revision issues
// one, and the gateway never fabricates a substitute.
type LoginResult struct {
	User  entity.User
	Token string
}

func (c *Client) Login(ctx context.Context, employeeID, password string) (*LoginResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", "", entity.LoginRequest{
		EmployeeID: employeeID,
		Password:   password,
	})
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	var user entity.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("decoding login user: %w", err)
	}

	return &LoginResult{User: user, Token: env.Token}, nil
}

// Logout is best effort; the caller clears the local session regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
	return err
}

// Get relays a read route and returns the raw response body unmodified.
func (c *Client) Get(ctx context.Context, path, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, token, nil)
}

// Post relays a mutation and returns the raw response body unmodified.
func (c *Client) Post(ctx context.Context, path, token string, payload any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, token, payload)
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) (json.RawMessage, error) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Upstream request failed", slog.String("path", path), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	if rejected := rejection(resp.StatusCode, body); rejected != nil {
		return nil, rejected
	}

	return body, nil
}

// rejection decides whether the upstream said no. PHP endpoints are not
// consistent about HTTP codes: some signal failure with a 4xx, others with a
// 200 carrying {status:"fail"}. Both count.
func rejection(statusCode int, body []byte) *RejectedError {
	var env Envelope
	envParsed := json.Unmarshal(body, &env) == nil

	if statusCode >= http.StatusBadRequest {
		message := http.StatusText(statusCode)
		if envParsed && env.Message != "" {
			message = env.Message
		}

		return &RejectedError{StatusCode: statusCode, Message: message}
	}

	if envParsed && env.Status == statusFail {
		message := env.Message
		if message == "" {
			message = "request rejected"
		}

		return &RejectedError{StatusCode: http.StatusBadRequest, Message: message}
	}

	return nil
}
