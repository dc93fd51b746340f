// Package api provides the HTTP/JSON client for the Handl backend.
// This file implements the auth operation group.
package api

import (
	"context"
	"net/http"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate holds the full replacement fields for a profile update.
type ProfileUpdate struct {
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

// AuthResult is a successful register/login response: the bearer
// credential plus the authenticated account record.
type AuthResult struct {
	Token string
	User  User
}

// Register creates a new account and returns the issued credential.
func (c *Client) Register(ctx context.Context, payload RegisterRequest) (*AuthResult, error) {
	return c.authCall(ctx, http.MethodPost, "/auth/register", payload)
}

// Login authenticates and returns the issued credential.
func (c *Client) Login(ctx context.Context, creds LoginRequest) (*AuthResult, error) {
	return c.authCall(ctx, http.MethodPost, "/auth/login", creds)
}

func (c *Client) authCall(ctx context.Context, method, path string, body any) (*AuthResult, error) {
	env, err := c.do(ctx, method, path, body, requestOpts{})
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &AuthResult{Token: env.Token, User: user}, nil
}

// GetCurrentUser fetches the account for the current credential.
// silent suppresses the global auth-expired handling; the session
// bootstrap passes true so a stale persisted credential is discarded
// quietly instead of interrupting the user.
func (c *Client) GetCurrentUser(ctx context.Context, silent bool) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil, requestOpts{silentAuth: silent})
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the profile fields and returns the server's
// updated record.
func (c *Client) UpdateProfile(ctx context.Context, fields ProfileUpdate) (*User, error) {
	env, err := c.do(ctx, http.MethodPut, "/auth/profile", fields, requestOpts{})
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
