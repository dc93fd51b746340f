// Package api provides the HTTP/JSON client for the Handl backend.
// This file implements request dispatch: credential injection, envelope
// decoding, and centralized authentication-failure handling.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the deployed Handl backend.
const DefaultBaseURL = "https://handl-backend.vercel.app/api"

// authHeader carries the bearer credential on every request.
const authHeader = "x-auth-token"

// CredentialSource supplies the current credential, or "" when logged out.
// It is consulted fresh on every request; the client never caches it.
type CredentialSource interface {
	Credential() string
}

// CredentialFunc adapts a function to the CredentialSource interface.
type CredentialFunc func() string

// Credential implements CredentialSource.
func (f CredentialFunc) Credential() string { return f() }

// Client dispatches requests to the Handl backend. Every request carries
// the current credential when one exists. A 401 from any operation fires
// the configured auth-expired handler exactly once per response; routing
// away from authenticated views is the subscriber's job, not the client's.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	creds         CredentialSource
	onAuthExpired func()
	onError       func(op string, status int, requestID string, err error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAuthExpiredHandler registers the callback fired when any request
// is rejected with 401.
func WithAuthExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onAuthExpired = fn }
}

// WithErrorHandler registers a callback fired for every failed request.
// op is "METHOD /path", status is the HTTP status (0 when the request
// never reached the server), and requestID is the X-Request-Id sent.
func WithErrorHandler(fn func(op string, status int, requestID string, err error)) Option {
	return func(c *Client) { c.onError = fn }
}

// NewClient creates a Client for the given base URL. An empty baseURL
// selects the deployed backend.
func NewClient(baseURL string, creds CredentialSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the uniform response wrapper the server uses.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Token      string          `json:"token"`
	Error      string          `json:"error"`
	Count      int             `json:"count"`
	Pagination *Pagination     `json:"pagination"`
}

// requestOpts controls per-call dispatch behavior.
type requestOpts struct {
	// silentAuth suppresses the auth-expired handler on 401. Used by the
	// session bootstrap, where a stale credential is not an event worth
	// interrupting the user for.
	silentAuth  bool
	contentType string
	rawBody     io.Reader
}

// do issues a request and decodes the response envelope. body, when
// non-nil, is JSON-encoded unless opts.rawBody is set.
func (c *Client) do(ctx context.Context, method, path string, body any, opts requestOpts) (*envelope, error) {
	var reader io.Reader
	contentType := "application/json"
	switch {
	case opts.rawBody != nil:
		reader = opts.rawBody
		contentType = opts.contentType
	case body != nil:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if tok := c.creds.Credential(); tok != "" {
		req.Header.Set(authHeader, tok)
	}

	op := method + " " + path
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("api request failed: %w", err)
		c.reportError(op, 0, requestID, err)
		return nil, err
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if !opts.silentAuth {
			if c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			c.reportError(op, resp.StatusCode, requestID, ErrUnauthorized)
		}
		return nil, ErrUnauthorized
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				apiErr := &Error{Status: resp.StatusCode}
				c.reportError(op, resp.StatusCode, requestID, apiErr)
				return nil, apiErr
			}
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}

	if resp.StatusCode >= 400 || (len(raw) > 0 && !env.Success) {
		apiErr := &Error{Status: resp.StatusCode, Message: env.Error}
		c.reportError(op, resp.StatusCode, requestID, apiErr)
		return nil, apiErr
	}
	return &env, nil
}

// reportError forwards a failed request to the configured handler.
func (c *Client) reportError(op string, status int, requestID string, err error) {
	if c.onError != nil {
		c.onError(op, status, requestID, err)
	}
}

// getJSON issues a GET and unmarshals the envelope's data field into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	env, err := c.do(ctx, http.MethodGet, path, nil, requestOpts{})
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

// decodeData unmarshals the envelope payload into out, tolerating an
// absent payload when out is nil.
func decodeData(env *envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}
