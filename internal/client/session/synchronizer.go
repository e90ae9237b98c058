// Package session keeps the client's view of "who is signed in, and are they
// an admin" consistent with the backend session. The Synchronizer follows
// auth-state events from the backend adapter and storage events from sibling
// client processes; every other component reads its State snapshots.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/eventhub/internal/client/localstore"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
)

// Notices shown when a session is ended because its profile is unusable.
const (
	NoticeProfileNotFound = "Profile not found. You've been logged out."
	NoticeProfileError    = "An error occurred. You've been logged out."
)

// Backend is the part of the backend adapter the Synchronizer needs.
type Backend interface {
	GetSession(ctx context.Context) (*models.Session, error)
	GetUser(ctx context.Context) (*models.User, error)
	SignOut(ctx context.Context) error
	SubscribeAuthStateChanges(handler func(models.AuthEvent)) (unsubscribe func())
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// StorageFeed delivers changes made to the shared storage by other processes.
type StorageFeed interface {
	Events() <-chan localstore.StorageEvent
	Close() error
}

// Synchronizer owns State. Resolutions (initialization, auth events, storage
// events) each take a generation number when issued; a resolution whose
// generation is no longer the latest when it completes is discarded, state
// write and forced sign-out alike.
type Synchronizer struct {
	backend Backend
	feed    StorageFeed
	notify  func(string)
	logger  logging.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	subs       map[int]chan State
	nextSub    int

	authEvents  chan models.AuthEvent
	unsubscribe func()
	cancel      context.CancelFunc
	done        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

// New builds a Synchronizer in the Unresolved state. feed and notify may be
// nil.
func New(backend Backend, feed StorageFeed, notify func(string), logger logging.Logger) *Synchronizer {
	if notify == nil {
		notify = func(string) {}
	}
	return &Synchronizer{
		backend:    backend,
		feed:       feed,
		notify:     notify,
		logger:     logger.With("module", "session"),
		state:      State{Loading: true},
		subs:       map[int]chan State{},
		authEvents: make(chan models.AuthEvent, 8),
		done:       make(chan struct{}),
	}
}

// State returns a snapshot of the current state.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Status reports whether the session is unresolved, logged out or logged in.
func (s *Synchronizer) Status() Status {
	return s.State().Status()
}

// Subscribe returns a channel receiving a snapshot after every change. Only
// the latest snapshot is kept for a slow reader. The current state is sent
// immediately.
func (s *Synchronizer) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state.clone()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// publish must be called with mu held.
func (s *Synchronizer) publish() {
	snapshot := s.state.clone()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

func (s *Synchronizer) issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *Synchronizer) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.generation
}

// apply runs mutate if gen is still the latest generation.
func (s *Synchronizer) apply(gen uint64, mutate func(*State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	mutate(&s.state)
	s.publish()
	return true
}

func (s *Synchronizer) finishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Loading {
		s.state.Loading = false
		s.publish()
	}
}

// Initialize resolves the stored session and its profile. Loading stays true
// until it returns.
func (s *Synchronizer) Initialize(ctx context.Context) {
	gen := s.issue()
	s.resolveSession(ctx, gen)
	s.finishLoading()
}

// resolveSession fetches the session and, when there is one, the profile of
// its user. Failing to fetch the session counts as having none.
func (s *Synchronizer) resolveSession(ctx context.Context, gen uint64) {
	session, err := s.backend.GetSession(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session fetch failed", "error", err)
	}
	if err != nil || session == nil || session.User == nil {
		s.apply(gen, (*State).logOut)
		return
	}

	user := *session.User
	if !s.apply(gen, func(st *State) { st.setUser(&user) }) {
		return
	}
	s.resolveProfile(ctx, gen, user.ID)
}

// resolveProfile loads the profile of userID. A user without a readable
// profile is signed out; this is never retried.
func (s *Synchronizer) resolveProfile(ctx context.Context, gen uint64, userID string) {
	profile, err := s.backend.GetProfile(ctx, userID)
	if err == nil && profile != nil {
		s.apply(gen, func(st *State) { st.setProfile(profile) })
		return
	}

	notice := NoticeProfileNotFound
	if err != nil {
		s.logger.Error(ctx, "profile fetch failed", "user_id", userID, "error", err)
		notice = NoticeProfileError
	} else {
		s.logger.Warn(ctx, "session without profile", "user_id", userID)
	}

	if s.stale(gen) {
		s.logger.Debug(ctx, "stale profile resolution discarded", "user_id", userID)
		return
	}
	if err := s.backend.SignOut(ctx); err != nil {
		s.logger.Warn(ctx, "forced sign out failed", "error", err)
	}
	if s.apply(gen, (*State).logOut) {
		s.notify(notice)
	}
}

// HandleAuthEvent follows a sign-in, sign-out, token refresh or user update
// reported by the backend adapter. It never touches Loading.
func (s *Synchronizer) HandleAuthEvent(ctx context.Context, ev models.AuthEvent) {
	gen := s.issue()
	s.logger.Debug(ctx, "auth event", "type", string(ev.Type))

	if !ev.Established() {
		s.apply(gen, (*State).logOut)
		return
	}
	if ev.Session.User == nil {
		s.resolveSession(ctx, gen)
		return
	}

	user := *ev.Session.User
	if !s.apply(gen, func(st *State) { st.setUser(&user) }) {
		return
	}
	s.resolveProfile(ctx, gen, user.ID)
}

// HandleStorageEvent re-resolves the session when another process changed
// it. Other keys are ignored. Loading is not re-armed, so the current state
// stays visible while the new one is fetched.
func (s *Synchronizer) HandleStorageEvent(ctx context.Context, ev localstore.StorageEvent) {
	if ev.Key != common.SessionStorageKey {
		return
	}
	s.logger.Debug(ctx, "session changed in another process")
	s.resolveSession(ctx, s.issue())
}

// RefreshUser re-fetches the identity and merges it into the current user.
// Failures are logged and leave the state unchanged.
func (s *Synchronizer) RefreshUser(ctx context.Context) {
	user, err := s.backend.GetUser(ctx)
	if err != nil {
		s.logger.Warn(ctx, "user refresh failed", "error", err)
		return
	}
	if user == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil || s.state.User.ID != user.ID {
		return
	}
	s.state.User = user
	s.publish()
}

// Start subscribes to auth events and, on its own goroutine, initializes
// and then handles auth and storage events one at a time until Close or
// until ctx is done.
func (s *Synchronizer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	unsubscribe := s.backend.SubscribeAuthStateChanges(func(ev models.AuthEvent) {
		select {
		case s.authEvents <- ev:
		case <-s.done:
		}
	})

	s.mu.Lock()
	s.cancel, s.unsubscribe = cancel, unsubscribe
	s.mu.Unlock()

	var storage <-chan localstore.StorageEvent
	if s.feed != nil {
		storage = s.feed.Events()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Initialize(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-s.authEvents:
				s.HandleAuthEvent(ctx, ev)
			case ev, ok := <-storage:
				if !ok {
					storage = nil
					continue
				}
				s.HandleStorageEvent(ctx, ev)
			}
		}
	}()
}

// WaitResolved blocks until the initial resolution has finished and returns
// the state at that point.
func (s *Synchronizer) WaitResolved(ctx context.Context) (State, error) {
	return s.waitFor(ctx, func(st State) bool { return !st.Loading })
}

// WaitSignedIn blocks until the sign-in of userID has been followed: its
// profile is loaded, or it was signed out again after having been seen.
func (s *Synchronizer) WaitSignedIn(ctx context.Context, userID string) (State, error) {
	seen := false
	return s.waitFor(ctx, func(st State) bool {
		if st.User != nil && st.User.ID == userID {
			seen = true
			return st.Profile != nil
		}
		return seen && st.User == nil
	})
}

func (s *Synchronizer) waitFor(ctx context.Context, done func(State) bool) (State, error) {
	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return s.State(), ctx.Err()
		case st := <-ch:
			if done(st) {
				return st, nil
			}
		}
	}
}

// Close unregisters the auth subscription and stops the storage feed.
func (s *Synchronizer) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		unsubscribe, cancel := s.unsubscribe, s.cancel
		s.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		if cancel != nil {
			cancel()
		}
		if s.feed != nil {
			err = s.feed.Close()
		}
		s.wg.Wait()
	})
	return err
}
