package api

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileDecodesStatsAndRecentDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/ada", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"user": map[string]any{"_id": "u1", "username": "ada", "name": "Ada"},
				"stats": map[string]any{
					"streak": 3, "weeklyAverage": 7.2, "totalEntries": 40,
				},
				"recentDays": []map[string]any{
					{"_id": "d1", "score": 8, "high": "demo went well", "low": ""},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	profile, err := client.GetProfile(context.Background(), "ada")
	require.NoError(t, err)

	assert.Equal(t, "ada", profile.User.Username)
	assert.Equal(t, 3, profile.Stats.Streak)
	assert.InDelta(t, 7.2, profile.Stats.WeeklyAverage, 0.001)
	assert.Equal(t, 40, profile.Stats.TotalEntries)
	require.Len(t, profile.RecentDays, 1)
	assert.Equal(t, 8, profile.RecentDays[0].Score)
}

func TestSearchUsersEscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/search", r.URL.Path)
		assert.Equal(t, "ada l", r.URL.Query().Get("query"))
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []map[string]any{{"_id": "u1", "username": "ada"}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	users, err := client.SearchUsers(context.Background(), "ada l")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ada", users[0].Username)
}

func TestFriendListAndRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/friends":
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    []map[string]any{{"_id": "u2", "username": "grace"}},
			})
		case "/users/friend-requests":
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data": []map[string]any{
					{"from": map[string]any{"_id": "u3", "username": "joan"}},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))

	friends, err := client.GetFriends(context.Background())
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "grace", friends[0].Username)

	requests, err := client.GetFriendRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "joan", requests[0].From.Username)
}

func TestSendFriendRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/grace/friend-request", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	require.NoError(t, client.SendFriendRequest(context.Background(), "grace"))
}

func TestRespondToFriendRequestSendsAction(t *testing.T) {
	tests := []struct {
		name   string
		action FriendAction
	}{
		{"accept", FriendAccept},
		{"reject", FriendReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/users/friend-request/u3", r.URL.Path)

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, string(tt.action), body["action"])

				writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
			}))
			defer srv.Close()

			client := NewClient(srv.URL, staticCreds("tok"))
			require.NoError(t, client.RespondToFriendRequest(context.Background(), "u3", tt.action))
		})
	}
}

func TestRemoveFriend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/friends/u2", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	require.NoError(t, client.RemoveFriend(context.Background(), "u2"))
}

func TestUploadImagePostsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/uploads/image", r.URL.Path)
		assert.Equal(t, "profile", r.URL.Query().Get("type"))

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.png", header.Filename)

		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"url": "https://cdn.example.com/avatar.png"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	url, err := client.UploadImage(context.Background(), "avatar.png", []byte("png-bytes"), "profile")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatar.png", url)
}
