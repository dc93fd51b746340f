package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDaysEncodesRangeParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/days", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2024-02-01", q.Get("start"))
		assert.Equal(t, "2024-02-29", q.Get("end"))
		assert.Equal(t, "31", q.Get("limit"))

		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"count":   2,
			"data": []map[string]any{
				{"_id": "d1", "date": "2024-02-10T00:00:00.000Z", "score": 8, "high": "shipped", "low": "rain"},
				{"_id": "d2", "date": "2024-02-03T00:00:00.000Z", "score": 4, "high": "coffee", "low": "meetings"},
			},
			"pagination": map[string]any{"total": 2, "page": 1},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	list, err := client.ListDays(context.Background(), ListDaysParams{
		Start: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		Limit: 31,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, list.Count)
	require.Len(t, list.Entries, 2)
	assert.Equal(t, "d1", list.Entries[0].ID)
	assert.Equal(t, 8, list.Entries[0].Score)
	assert.Equal(t, 10, list.Entries[0].Date.Day())
	require.NotNil(t, list.Pagination)
	assert.Equal(t, 2, list.Pagination.Total)
}

func TestListDaysOmitsZeroParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	list, err := client.ListDays(context.Background(), ListDaysParams{})
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
}

func TestCreateDaySendsInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/days", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-02-15T00:00:00Z", body["date"])
		assert.Equal(t, float64(7), body["score"])
		assert.Equal(t, "good lunch", body["high"])
		assert.Equal(t, "slow train", body["low"])

		writeEnvelope(t, w, http.StatusCreated, map[string]any{
			"success": true,
			"data": map[string]any{
				"_id": "d9", "date": "2024-02-15T00:00:00.000Z",
				"score": 7, "high": "good lunch", "low": "slow train",
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	date := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	entry, err := client.CreateDay(context.Background(), DayInput{
		Date:  &date,
		Score: 7,
		High:  "good lunch",
		Low:   "slow train",
	})
	require.NoError(t, err)
	assert.Equal(t, "d9", entry.ID)
}

func TestUpdateDayTargetsEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/days/d9", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "date")
		assert.Equal(t, float64(9), body["score"])

		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"_id": "d9", "score": 9},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	entry, err := client.UpdateDay(context.Background(), "d9", DayInput{Score: 9, High: "x", Low: "y"})
	require.NoError(t, err)
	assert.Equal(t, 9, entry.Score)
}

func TestUpdateDayDropsStrayDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "date")

		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"_id": "d9", "score": 5},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	date := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	_, err := client.UpdateDay(context.Background(), "d9", DayInput{Date: &date, Score: 5})
	require.NoError(t, err)
}

func TestDeleteDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/days/d9", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))
	require.NoError(t, client.DeleteDay(context.Background(), "d9"))
}

func TestGetStreakAndAverage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/days/streak":
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"streak": 12},
			})
		case "/days/average":
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"average": 6.5},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCreds("tok"))

	streak, err := client.GetStreak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, streak)

	avg, err := client.GetWeeklyAverage(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 6.5, avg, 0.001)
}
