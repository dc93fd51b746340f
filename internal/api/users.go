// Package api provides the HTTP/JSON client for the Handl backend.
// This file implements the users operation group: profiles, search,
// and friend-relation transitions.
package api

import (
	"context"
	"net/http"
	"net/url"
)

// GetProfile fetches the public profile for a username.
func (c *Client) GetProfile(ctx context.Context, username string) (*Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SearchUsers finds accounts matching query by name or username.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	var users []User
	path := "/users/search?query=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetFriends fetches the caller's accepted friends.
func (c *Client) GetFriends(ctx context.Context) ([]User, error) {
	var friends []User
	if err := c.getJSON(ctx, "/users/friends", &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// GetFriendRequests fetches pending incoming requests.
func (c *Client) GetFriendRequests(ctx context.Context) ([]FriendRequest, error) {
	var requests []FriendRequest
	if err := c.getJSON(ctx, "/users/friend-requests", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// SendFriendRequest sends a request to the named user
// (relation none -> pending-outgoing).
func (c *Client) SendFriendRequest(ctx context.Context, username string) error {
	path := "/users/" + url.PathEscape(username) + "/friend-request"
	_, err := c.do(ctx, http.MethodPost, path, nil, requestOpts{})
	return err
}

// RespondToFriendRequest accepts or rejects an incoming request from
// the given user (pending-incoming -> friend | none).
func (c *Client) RespondToFriendRequest(ctx context.Context, userID string, action FriendAction) error {
	path := "/users/friend-request/" + url.PathEscape(userID)
	body := map[string]string{"action": string(action)}
	_, err := c.do(ctx, http.MethodPut, path, body, requestOpts{})
	return err
}

// RemoveFriend severs an accepted friendship (friend -> none).
func (c *Client) RemoveFriend(ctx context.Context, friendID string) error {
	path := "/users/friends/" + url.PathEscape(friendID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, requestOpts{})
	return err
}
