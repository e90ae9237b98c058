package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/client/localstore"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
)

type profileResult struct {
	profile *models.Profile
	err     error
	// gate, when set, holds the call until it is closed.
	gate chan struct{}
}

type fakeBackend struct {
	mu sync.Mutex

	session    *models.Session
	sessionErr error
	onSession  func()

	user    *models.User
	userErr error

	profiles map[string]profileResult

	sessionCalls int
	profileCalls int
	signOutCalls int
	userCalls    int

	handlers     map[int]func(models.AuthEvent)
	nextHandler  int
	unsubscribed int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		profiles: map[string]profileResult{},
		handlers: map[int]func(models.AuthEvent){},
	}
}

func (f *fakeBackend) GetSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	f.sessionCalls++
	hook := f.onSession
	s, err := f.session, f.sessionErr
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return s, err
}

func (f *fakeBackend) GetUser(context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userCalls++
	return f.user, f.userErr
}

func (f *fakeBackend) SignOut(context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	f.session = nil
	handlers := f.handlerList()
	f.mu.Unlock()
	for _, h := range handlers {
		h(models.AuthEvent{Type: models.SignedOut})
	}
	return nil
}

func (f *fakeBackend) SubscribeAuthStateChanges(handler func(models.AuthEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextHandler
	f.nextHandler++
	f.handlers[id] = handler
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.handlers[id]; ok {
			delete(f.handlers, id)
			f.unsubscribed++
		}
	}
}

func (f *fakeBackend) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	f.profileCalls++
	r := f.profiles[userID]
	f.mu.Unlock()
	if r.gate != nil {
		select {
		case <-r.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.profile, r.err
}

func (f *fakeBackend) handlerList() []func(models.AuthEvent) {
	out := make([]func(models.AuthEvent), 0, len(f.handlers))
	for _, h := range f.handlers {
		out = append(out, h)
	}
	return out
}

func (f *fakeBackend) emit(ev models.AuthEvent) {
	f.mu.Lock()
	handlers := f.handlerList()
	f.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

func (f *fakeBackend) setSession(s *models.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = s
}

func (f *fakeBackend) setProfile(userID string, r profileResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[userID] = r
}

func (f *fakeBackend) counts() (session, profile, signOut int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionCalls, f.profileCalls, f.signOutCalls
}

type fakeFeed struct {
	ch     chan localstore.StorageEvent
	closed int
}

func newFakeFeed() *fakeFeed { return &fakeFeed{ch: make(chan localstore.StorageEvent, 4)} }

func (f *fakeFeed) Events() <-chan localstore.StorageEvent { return f.ch }
func (f *fakeFeed) Close() error                           { f.closed++; return nil }

type noticeRecorder struct {
	mu      sync.Mutex
	notices []string
}

func (n *noticeRecorder) notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, msg)
}

func (n *noticeRecorder) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.notices...)
}

var (
	created = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	alice   = &models.User{ID: "u1", Email: "alice@example.com", CreatedAt: created}
	bob     = &models.User{ID: "u2", Email: "bob@example.com", CreatedAt: created}
)

func sessionFor(u *models.User) *models.Session {
	return &models.Session{AccessToken: "a-" + u.ID, RefreshToken: "r-" + u.ID, User: u}
}

func profileFor(u *models.User, role string) *models.Profile {
	return &models.Profile{ID: u.ID, Role: role, FullName: u.Email, CreatedAt: created}
}

func sessionKeyEvent(value string) localstore.StorageEvent {
	return localstore.StorageEvent{Key: common.SessionStorageKey, NewValue: value}
}

func newTestSync(b *fakeBackend, feed StorageFeed) (*Synchronizer, *noticeRecorder) {
	rec := &noticeRecorder{}
	return New(b, feed, rec.notify, logging.Nop()), rec
}

// consistent reports whether st satisfies the state invariants.
func consistent(st State) bool {
	if st.IsAdmin != (st.Profile != nil && st.Profile.Role == common.RoleAdmin) {
		return false
	}
	if st.User == nil && (st.Profile != nil || st.IsAdmin) {
		return false
	}
	return true
}
