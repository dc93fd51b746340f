package session

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handl-dev/handl/internal/api"
)

// fakeAuthAPI scripts the auth endpoints and records whether they were
// reached.
type fakeAuthAPI struct {
	mu sync.Mutex

	loginResult    *api.AuthResult
	loginErr       error
	registerResult *api.AuthResult
	registerErr    error
	meUser         *api.User
	meErr          error
	updateUser     *api.User
	updateErr      error

	calls   int
	release chan struct{} // when set, Login blocks until closed
}

func (f *fakeAuthAPI) countCall() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeAuthAPI) Login(ctx context.Context, creds api.LoginRequest) (*api.AuthResult, error) {
	f.countCall()
	if f.release != nil {
		<-f.release
	}
	return f.loginResult, f.loginErr
}

func (f *fakeAuthAPI) Register(ctx context.Context, payload api.RegisterRequest) (*api.AuthResult, error) {
	f.countCall()
	return f.registerResult, f.registerErr
}

func (f *fakeAuthAPI) GetCurrentUser(ctx context.Context, silent bool) (*api.User, error) {
	f.countCall()
	return f.meUser, f.meErr
}

func (f *fakeAuthAPI) UpdateProfile(ctx context.Context, fields api.ProfileUpdate) (*api.User, error) {
	f.countCall()
	return f.updateUser, f.updateErr
}

func newTestStore(t *testing.T, client AuthAPI) (*Store, *CredentialFile) {
	t.Helper()
	creds := NewCredentialFile(filepath.Join(t.TempDir(), "credentials"))
	return NewStore(client, creds), creds
}

func TestBootstrapWithoutCredentialSkipsNetwork(t *testing.T) {
	fake := &fakeAuthAPI{}
	store, _ := newTestStore(t, fake)

	store.Bootstrap(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.Zero(t, fake.calls, "bootstrap with no credential must not call the server")
}

func TestBootstrapRestoresSession(t *testing.T) {
	fake := &fakeAuthAPI{meUser: &api.User{ID: "u1", Username: "ada"}}
	store, creds := newTestStore(t, fake)
	require.NoError(t, creds.Save("tok-1"))

	store.Bootstrap(context.Background())

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "ada", store.User().Username)
	assert.Equal(t, "tok-1", store.Credential())
}

func TestBootstrapStaleCredentialClearsSilently(t *testing.T) {
	fake := &fakeAuthAPI{meErr: api.ErrUnauthorized}
	store, creds := newTestStore(t, fake)
	require.NoError(t, creds.Save("stale"))

	store.Bootstrap(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Credential())

	left, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, left, "stale credential must be discarded from disk")
}

func TestLoginPersistsCredential(t *testing.T) {
	fake := &fakeAuthAPI{loginResult: &api.AuthResult{
		Token: "tok-9",
		User:  api.User{ID: "u1", Username: "ada"},
	}}
	store, creds := newTestStore(t, fake)

	require.NoError(t, store.Login(context.Background(), api.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	}))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-9", store.Credential())

	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-9", saved)
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	fake := &fakeAuthAPI{loginErr: &api.Error{Status: 400, Message: "Invalid credentials"}}
	store, creds := newTestStore(t, fake)

	err := store.Login(context.Background(), api.LoginRequest{Email: "x@y.z", Password: "nope"})
	require.Error(t, err)

	assert.False(t, store.IsAuthenticated())
	saved, loadErr := creds.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, saved)
}

func TestRegisterPersistsCredential(t *testing.T) {
	fake := &fakeAuthAPI{registerResult: &api.AuthResult{
		Token: "tok-new",
		User:  api.User{ID: "u2", Username: "grace"},
	}}
	store, _ := newTestStore(t, fake)

	require.NoError(t, store.Register(context.Background(), api.RegisterRequest{
		Username: "grace",
	}))

	assert.Equal(t, "grace", store.User().Username)
	assert.Equal(t, "tok-new", store.Credential())
}

func TestLogoutClearsWithoutNetwork(t *testing.T) {
	fake := &fakeAuthAPI{loginResult: &api.AuthResult{Token: "tok", User: api.User{ID: "u1"}}}
	store, creds := newTestStore(t, fake)
	require.NoError(t, store.Login(context.Background(), api.LoginRequest{}))

	before := fake.calls
	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Credential())
	assert.Equal(t, before, fake.calls, "logout must be local only")

	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestConcurrentLoginRejected(t *testing.T) {
	release := make(chan struct{})
	fake := &fakeAuthAPI{
		loginResult: &api.AuthResult{Token: "tok", User: api.User{ID: "u1"}},
		release:     release,
	}
	store, _ := newTestStore(t, fake)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- store.Login(context.Background(), api.LoginRequest{})
	}()

	// Wait for the first login to reach the fake before racing it.
	require.Eventually(t, func() bool {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		return fake.calls == 1
	}, time.Second, time.Millisecond)

	err := store.Login(context.Background(), api.LoginRequest{})
	assert.ErrorIs(t, err, ErrOperationInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.True(t, store.IsAuthenticated())
}

func TestUpdateProfileAdoptsServerRecord(t *testing.T) {
	fake := &fakeAuthAPI{
		loginResult: &api.AuthResult{Token: "tok", User: api.User{ID: "u1", Name: "Old"}},
		updateUser:  &api.User{ID: "u1", Name: "New Name"},
	}
	store, _ := newTestStore(t, fake)
	require.NoError(t, store.Login(context.Background(), api.LoginRequest{}))

	require.NoError(t, store.UpdateProfile(context.Background(), api.ProfileUpdate{Name: "New Name"}))
	assert.Equal(t, "New Name", store.User().Name)
}

func TestSubscribersNotifiedOnChange(t *testing.T) {
	fake := &fakeAuthAPI{loginResult: &api.AuthResult{Token: "tok", User: api.User{ID: "u1"}}}
	store, _ := newTestStore(t, fake)

	var snaps []Snapshot
	store.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	require.NoError(t, store.Login(context.Background(), api.LoginRequest{}))
	store.Logout()

	require.Len(t, snaps, 2)
	assert.True(t, snaps[0].Authenticated)
	assert.False(t, snaps[1].Authenticated)
	assert.Nil(t, snaps[1].User)
}

func TestHandleAuthExpiredClearsSession(t *testing.T) {
	fake := &fakeAuthAPI{loginResult: &api.AuthResult{Token: "tok", User: api.User{ID: "u1"}}}
	store, creds := newTestStore(t, fake)
	require.NoError(t, store.Login(context.Background(), api.LoginRequest{}))

	store.HandleAuthExpired()

	assert.False(t, store.IsAuthenticated())
	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestIsAdmin(t *testing.T) {
	fake := &fakeAuthAPI{loginResult: &api.AuthResult{
		Token: "tok",
		User:  api.User{ID: "u1", Role: "admin"},
	}}
	store, _ := newTestStore(t, fake)

	assert.False(t, store.IsAdmin())
	require.NoError(t, store.Login(context.Background(), api.LoginRequest{}))
	assert.True(t, store.IsAdmin())
}
