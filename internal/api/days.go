// Package api provides the HTTP/JSON client for the Handl backend.
// This file implements the days operation group.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// dateFormat is the day-granularity wire format for range parameters.
const dateFormat = "2006-01-02"

// ListDaysParams filters a day listing. Zero values are omitted.
type ListDaysParams struct {
	Start time.Time
	End   time.Time
	Limit int
}

// DayList is a page of entries plus paging metadata.
type DayList struct {
	Entries    []DayEntry
	Count      int
	Pagination *Pagination
}

// DayInput holds the mutable entry fields for create and update.
// Date selects the entry's day on create; it stays nil on update
// because the entry date is immutable.
type DayInput struct {
	Date  *time.Time `json:"date,omitempty"`
	Score int        `json:"score"`
	High  string     `json:"high"`
	Low   string     `json:"low"`
}

// ListDays fetches the caller's entries, newest first.
func (c *Client) ListDays(ctx context.Context, params ListDaysParams) (*DayList, error) {
	q := url.Values{}
	if !params.Start.IsZero() {
		q.Set("start", params.Start.Format(dateFormat))
	}
	if !params.End.IsZero() {
		q.Set("end", params.End.Format(dateFormat))
	}
	if params.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", params.Limit))
	}
	path := "/days"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	env, err := c.do(ctx, http.MethodGet, path, nil, requestOpts{})
	if err != nil {
		return nil, err
	}
	var entries []DayEntry
	if err := decodeData(env, &entries); err != nil {
		return nil, err
	}
	return &DayList{Entries: entries, Count: env.Count, Pagination: env.Pagination}, nil
}

// GetDay fetches a single entry by id.
func (c *Client) GetDay(ctx context.Context, id string) (*DayEntry, error) {
	var entry DayEntry
	if err := c.getJSON(ctx, "/days/"+url.PathEscape(id), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateDay creates an entry for input.Date and returns the stored record.
func (c *Client) CreateDay(ctx context.Context, input DayInput) (*DayEntry, error) {
	env, err := c.do(ctx, http.MethodPost, "/days", input, requestOpts{})
	if err != nil {
		return nil, err
	}
	var entry DayEntry
	if err := decodeData(env, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateDay replaces the score/high/low of an existing entry.
// The date field is never sent; the server keys the entry by it.
func (c *Client) UpdateDay(ctx context.Context, id string, input DayInput) (*DayEntry, error) {
	input.Date = nil
	env, err := c.do(ctx, http.MethodPut, "/days/"+url.PathEscape(id), input, requestOpts{})
	if err != nil {
		return nil, err
	}
	var entry DayEntry
	if err := decodeData(env, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteDay removes an entry.
func (c *Client) DeleteDay(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/days/"+url.PathEscape(id), nil, requestOpts{})
	return err
}

// GetStreak fetches the current consecutive-day streak.
func (c *Client) GetStreak(ctx context.Context) (int, error) {
	var out struct {
		Streak int `json:"streak"`
	}
	if err := c.getJSON(ctx, "/days/streak", &out); err != nil {
		return 0, err
	}
	return out.Streak, nil
}

// GetWeeklyAverage fetches the mean score over the trailing week.
func (c *Client) GetWeeklyAverage(ctx context.Context) (float64, error) {
	var out struct {
		Average float64 `json:"average"`
	}
	if err := c.getJSON(ctx, "/days/average", &out); err != nil {
		return 0, err
	}
	return out.Average, nil
}
