// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrSessionExpired is returned when the access token was rejected and the
// silent refresh could not produce a new one. The session has been cleared;
// the caller must log in again.
var ErrSessionExpired = errors.New("apiclient: session expired")

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to the Dentora API and transparently keeps its session alive.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session

	// refreshGroup coalesces concurrent refresh attempts: when N in-flight
	// requests hit 401 at once, exactly one refresh call reaches the server
	// and all N retries reuse its result.
	refreshGroup singleflight.Group
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying [http.Client].
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a Client for the API at baseURL (e.g. "https://api.dentora.app").
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    &Session{},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Session exposes the client's session state (read-mostly; Clear is allowed).
func (c *Client) Session() *Session {
	return c.session
}

// # Session Lifecycle

type loginPayload struct {
	TaxID    string `json:"tax_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResult struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Login authenticates against a tenant and installs the session.
func (c *Client) Login(ctx context.Context, taxID, username, password string) error {
	var result loginResult
	err := c.doOnce(ctx, http.MethodPost, "/api/auth/login", loginPayload{
		TaxID:    taxID,
		Username: username,
		Password: password,
	}, &result, "")
	if err != nil {
		return err
	}

	user := result.User
	c.session.set(result.AccessToken, result.RefreshToken, &user)
	return nil
}

// Logout revokes the refresh token server-side and clears the session.
// The local session is cleared even if the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	refreshToken := c.session.RefreshToken()
	defer c.session.Clear()

	if refreshToken == "" {
		return nil
	}

	return c.doOnce(ctx, http.MethodPost, "/api/auth/logout", map[string]string{
		"refreshToken": refreshToken,
	}, nil, c.session.AccessToken())
}

// # Authenticated Requests

// Do performs an authenticated request and decodes the JSON response into out
// (which may be nil for 204 responses).
//
// On a 401 it performs exactly one silent refresh and retries the request
// once. The retried request never triggers a second refresh: if it is
// rejected again, the rejection is returned as-is.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	err := c.doOnce(ctx, method, path, body, out, c.session.AccessToken())

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}

	if refreshErr := c.refreshAccessToken(ctx); refreshErr != nil {
		return refreshErr
	}

	return c.doOnce(ctx, method, path, body, out, c.session.AccessToken())
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token. Concurrent callers share a single server round-trip. Any failure
// clears the session and yields [ErrSessionExpired].
func (c *Client) refreshAccessToken(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		refreshToken := c.session.RefreshToken()
		if refreshToken == "" {
			c.session.Clear()
			return nil, ErrSessionExpired
		}

		var result struct {
			AccessToken string `json:"accessToken"`
		}
		err := c.doOnce(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{
			"refreshToken": refreshToken,
		}, &result, "")
		if err != nil {
			c.session.Clear()
			return nil, ErrSessionExpired
		}

		c.session.setAccessToken(result.AccessToken)
		return nil, nil
	})

	return err
}

// doOnce performs a single HTTP round-trip with no retry logic.
func (c *Client) doOnce(ctx context.Context, method, path string, body, out interface{}, bearer string) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		apiErr := &APIError{Status: response.StatusCode}
		if decodeErr := json.NewDecoder(response.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Message = http.StatusText(response.StatusCode)
		}
		return apiErr
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}

	return nil
}
