package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticCreds is a fixed CredentialSource for tests.
type staticCreds string

func (s staticCreds) Credential() string { return string(s) }

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, body map[string]any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestRequestCarriesCredentialAndRequestID(t *testing.T) {
	var gotToken, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-auth-token")
		gotRequestID = r.Header.Get("X-Request-Id")
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"_id": "u1"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok-abc"))
	_, err := client.GetCurrentUser(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", gotToken)
	assert.NotEmpty(t, gotRequestID)
}

func TestRequestOmitsHeaderWhenLoggedOut(t *testing.T) {
	var hadHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["X-Auth-Token"]
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds(""))
	_, err := client.GetStreak(context.Background())
	require.NoError(t, err)
	assert.False(t, hadHeader, "no credential header when logged out")
}

func TestCredentialReadFreshPerRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("x-auth-token"))
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	token := "first"
	client := NewClient(srv.URL, CredentialFunc(func() string { return token }))

	_, err := client.GetStreak(context.Background())
	require.NoError(t, err)
	token = "second"
	_, err = client.GetStreak(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body.Email)

		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"token":   "tok-7",
			"data": map[string]any{
				"_id":      "u1",
				"name":     "Ada",
				"username": "ada",
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds(""))
	result, err := client.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-7", result.Token)
	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "ada", result.User.Username)
}

func TestUnauthorizedFiresHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "No token, authorization denied",
		})
	}))
	defer srv.Close()

	var fired int
	client := NewClient(srv.URL, staticCreds("stale"),
		WithAuthExpiredHandler(func() { fired++ }))

	_, err := client.GetFriends(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, fired)
}

func TestSilentUnauthorizedSkipsHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var fired int
	client := NewClient(srv.URL, staticCreds("stale"),
		WithAuthExpiredHandler(func() { fired++ }))

	_, err := client.GetCurrentUser(context.Background(), true)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, fired, "bootstrap 401 must stay silent")
}

func TestValidationErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Username already taken",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds(""))
	_, err := client.Register(context.Background(), RegisterRequest{Username: "ada"})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.True(t, apiErr.IsValidation())
	assert.False(t, apiErr.IsServerError())
	assert.Equal(t, "Username already taken", UserMessage(err, "fallback"))
}

func TestServerErrorHidesDetailFromUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "pool exhausted at shard 3",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	_, err := client.GetStreak(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsServerError())
	assert.Equal(t, "Something went wrong", UserMessage(err, "Something went wrong"))
}

func TestFailureFlagWithOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "soft failure",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	_, err := client.GetFriends(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "soft failure", apiErr.Message)
}

func TestErrorHandlerReceivesFailureDetails(t *testing.T) {
	var sentID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sentID = r.Header.Get("X-Request-Id")
		writeEnvelope(t, w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "backend exploded",
		})
	}))
	defer srv.Close()

	var gotOp, gotID string
	var gotStatus int
	var gotErr error
	client := NewClient(srv.URL, staticCreds("tok"),
		WithErrorHandler(func(op string, status int, requestID string, err error) {
			gotOp, gotStatus, gotID, gotErr = op, status, requestID, err
		}))
	_, err := client.ListDays(context.Background(), ListDaysParams{})
	require.Error(t, err)

	assert.Equal(t, "GET /days", gotOp)
	assert.Equal(t, http.StatusInternalServerError, gotStatus)
	assert.Equal(t, sentID, gotID)
	assert.Equal(t, err, gotErr)
}

func TestErrorHandlerQuietOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	fired := 0
	client := NewClient(srv.URL, staticCreds("tok"),
		WithErrorHandler(func(string, int, string, error) { fired++ }))
	_, err := client.GetStreak(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fired)
}

func TestErrorHandlerSkipsSilentAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	fired := 0
	client := NewClient(srv.URL, staticCreds("stale"),
		WithErrorHandler(func(string, int, string, error) { fired++ }))
	_, err := client.GetCurrentUser(context.Background(), true)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, fired)
}

func TestEmptyBaseURLUsesDefault(t *testing.T) {
	client := NewClient("", staticCreds(""))
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
