// Package api provides the HTTP/JSON client for the Handl backend.
// This file defines the wire types shared by the operation groups.
package api

import "time"

// User is the account record as returned by the server.
// The server is authoritative for derived fields such as the
// normalized phone number.
type User struct {
	ID                string `json:"_id"`
	Name              string `json:"name"`
	Username          string `json:"username"`
	Email             string `json:"email,omitempty"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Role              string `json:"role,omitempty"`
}

// DayEntry is one user's mood record for a single calendar date.
// Score is an integer 1-10; High and Low are non-empty free text.
// ID and Date are immutable after creation.
type DayEntry struct {
	ID        string    `json:"_id"`
	Date      time.Time `json:"date"`
	Score     int       `json:"score"`
	High      string    `json:"high"`
	Low       string    `json:"low"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	User      *User     `json:"user,omitempty"`
}

// Pagination describes the paging metadata on list responses.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Pages int `json:"pages,omitempty"`
}

// ProfileStats are the aggregate numbers shown on a profile page.
type ProfileStats struct {
	Streak        int     `json:"streak"`
	WeeklyAverage float64 `json:"weeklyAverage"`
	TotalEntries  int     `json:"totalEntries"`
}

// Profile is the public view of a user: the account record,
// aggregate stats, and their most recent shared entries.
type Profile struct {
	User       User         `json:"user"`
	Stats      ProfileStats `json:"stats"`
	RecentDays []DayEntry   `json:"recentDays"`
}

// FriendRequest is a pending incoming friend request.
type FriendRequest struct {
	From      User      `json:"from"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// FriendStatus is the relation between the viewer and another user.
type FriendStatus string

const (
	FriendNone            FriendStatus = "none"
	FriendPendingOutgoing FriendStatus = "pending-outgoing"
	FriendPendingIncoming FriendStatus = "pending-incoming"
	FriendAccepted        FriendStatus = "friend"
)

// FriendAction is the response to an incoming friend request.
type FriendAction string

const (
	FriendAccept FriendAction = "accept"
	FriendReject FriendAction = "reject"
)
