// Package session holds the authenticated identity and its persisted
// credential. This file implements the store itself: bootstrap, login,
// register, logout, profile update, and change notification.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/handl-dev/handl/internal/api"
)

// ErrOperationInFlight is returned when login/register/update is called
// while a previous network-calling operation on the store is pending.
var ErrOperationInFlight = errors.New("session: operation already in flight")

// AuthAPI is the slice of the API client the store needs.
type AuthAPI interface {
	Register(ctx context.Context, payload api.RegisterRequest) (*api.AuthResult, error)
	Login(ctx context.Context, creds api.LoginRequest) (*api.AuthResult, error)
	GetCurrentUser(ctx context.Context, silent bool) (*api.User, error)
	UpdateProfile(ctx context.Context, fields api.ProfileUpdate) (*api.User, error)
}

// Snapshot is the observable session state handed to subscribers.
type Snapshot struct {
	User          *api.User
	Authenticated bool
}

// Store is the single source of truth for who is logged in. It is an
// explicitly constructed object: the API client and the credential slot
// are injected, and interested parties subscribe for change
// notifications rather than reading globals.
//
// Invariant: User is non-nil iff the held credential was validated by
// the server via login, register, or bootstrap.
type Store struct {
	mu          sync.Mutex
	user        *api.User
	credential  string
	inFlight    bool
	subscribers []func(Snapshot)

	client AuthAPI
	creds  *CredentialFile
}

// NewStore creates an empty, logged-out Store.
func NewStore(client AuthAPI, creds *CredentialFile) *Store {
	return &Store{client: client, creds: creds}
}

// Subscribe registers fn to be called after every state change.
// Callbacks run synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Credential returns the current bearer credential, or "". Implements
// api.CredentialSource; the client consults it fresh on every request.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

// User returns the current account, or nil when logged out.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a validated session exists.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// IsAdmin reports whether the current account has the admin role.
func (s *Store) IsAdmin() bool {
	u := s.User()
	return u != nil && u.Role == "admin"
}

// Bootstrap restores the session from the persisted credential. With no
// persisted credential it returns immediately without touching the
// network. Any failure (network, stale credential) discards the
// credential and leaves the session empty; bootstrap never surfaces a
// user-visible error, it just means "not logged in".
func (s *Store) Bootstrap(ctx context.Context) {
	token, err := s.creds.Load()
	if err != nil || token == "" {
		return
	}

	s.mu.Lock()
	s.credential = token
	s.mu.Unlock()

	user, err := s.client.GetCurrentUser(ctx, true)
	if err != nil {
		_ = s.creds.Clear()
		s.mu.Lock()
		s.credential = ""
		s.user = nil
		s.mu.Unlock()
		return
	}
	s.setAuthenticated(token, user, false)
}

// Login authenticates and persists the issued credential. A prior
// session is left untouched on failure.
func (s *Store) Login(ctx context.Context, creds api.LoginRequest) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	result, err := s.client.Login(ctx, creds)
	if err != nil {
		return err
	}
	s.setAuthenticated(result.Token, &result.User, true)
	return nil
}

// Register creates an account and persists the issued credential.
func (s *Store) Register(ctx context.Context, payload api.RegisterRequest) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	result, err := s.client.Register(ctx, payload)
	if err != nil {
		return err
	}
	s.setAuthenticated(result.Token, &result.User, true)
	return nil
}

// Logout discards the persisted credential and clears the session.
// Synchronous; never calls the network.
func (s *Store) Logout() {
	_ = s.creds.Clear()
	s.mu.Lock()
	s.credential = ""
	s.user = nil
	subs := s.snapshotSubscribersLocked()
	s.mu.Unlock()
	notify(subs, Snapshot{})
}

// UpdateProfile sends the replacement fields and adopts the server's
// returned record, which is authoritative for normalized values.
func (s *Store) UpdateProfile(ctx context.Context, fields api.ProfileUpdate) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	user, err := s.client.UpdateProfile(ctx, fields)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = user
	subs := s.snapshotSubscribersLocked()
	s.mu.Unlock()
	notify(subs, Snapshot{User: user, Authenticated: true})
	return nil
}

// HandleAuthExpired clears the session after a 401 anywhere in the API
// client. Wired as the client's auth-expired handler.
func (s *Store) HandleAuthExpired() {
	s.Logout()
}

// setAuthenticated installs a validated session, optionally persisting
// the credential.
func (s *Store) setAuthenticated(token string, user *api.User, persist bool) {
	if persist {
		_ = s.creds.Save(token)
	}
	s.mu.Lock()
	s.credential = token
	s.user = user
	subs := s.snapshotSubscribersLocked()
	s.mu.Unlock()
	notify(subs, Snapshot{User: user, Authenticated: true})
}

// begin marks a network-calling operation as in flight.
func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrOperationInFlight
	}
	s.inFlight = true
	return nil
}

func (s *Store) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *Store) snapshotSubscribersLocked() []func(Snapshot) {
	subs := make([]func(Snapshot), len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

// notify runs callbacks outside the store lock so subscribers may call
// back into the store.
func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
