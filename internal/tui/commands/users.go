// Package commands provides Bubble Tea commands for TUI operations.
// This file covers profiles, search, friends, and the feed.
package commands

import (
	"context"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/tui"
)

// LoadFriendsCmd fetches the accepted-friends list.
func LoadFriendsCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		friends, err := client.GetFriends(context.Background())
		return tui.FriendsMsg{Seq: seq, Friends: friends, Err: err}
	}
}

// LoadRequestsCmd fetches pending incoming friend requests.
func LoadRequestsCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		requests, err := client.GetFriendRequests(context.Background())
		return tui.FriendRequestsMsg{Seq: seq, Requests: requests, Err: err}
	}
}

// SearchUsersCmd finds accounts matching the query.
func SearchUsersCmd(client *api.Client, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		users, err := client.SearchUsers(context.Background(), query)
		return tui.SearchResultsMsg{Seq: seq, Users: users, Err: err}
	}
}

// SendFriendRequestCmd sends a request to the named user.
func SendFriendRequestCmd(client *api.Client, username string) tea.Cmd {
	return func() tea.Msg {
		return tui.FriendActionMsg{Err: client.SendFriendRequest(context.Background(), username)}
	}
}

// RespondToRequestCmd accepts or rejects an incoming request.
func RespondToRequestCmd(client *api.Client, userID string, action api.FriendAction) tea.Cmd {
	return func() tea.Msg {
		return tui.FriendActionMsg{Err: client.RespondToFriendRequest(context.Background(), userID, action)}
	}
}

// RemoveFriendCmd severs an accepted friendship.
func RemoveFriendCmd(client *api.Client, friendID string) tea.Cmd {
	return func() tea.Msg {
		return tui.FriendActionMsg{Err: client.RemoveFriend(context.Background(), friendID)}
	}
}

// LoadProfileCmd fetches the public profile for a username.
func LoadProfileCmd(client *api.Client, seq int, username string) tea.Cmd {
	return func() tea.Msg {
		profile, err := client.GetProfile(context.Background(), username)
		return tui.ProfileLoadedMsg{Seq: seq, Profile: profile, Err: err}
	}
}

// LoadFeedCmd assembles the friends feed: each friend's recent shared
// entries, merged and sorted newest first. The per-friend fetches are
// sequential; a single failure fails the whole load.
func LoadFeedCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		friends, err := client.GetFriends(ctx)
		if err != nil {
			return tui.FeedLoadedMsg{Seq: seq, Err: err}
		}

		var items []tui.FeedItem
		for _, friend := range friends {
			profile, err := client.GetProfile(ctx, friend.Username)
			if err != nil {
				return tui.FeedLoadedMsg{Seq: seq, Err: err}
			}
			for _, entry := range profile.RecentDays {
				items = append(items, tui.FeedItem{Author: friend, Entry: entry})
			}
		}

		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Entry.Date.After(items[j].Entry.Date)
		})
		return tui.FeedLoadedMsg{Seq: seq, Items: items}
	}
}
