package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/client/client"
	"github.com/dmitrijs2005/eventhub/internal/client/config"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/client/session"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
)

// captureOutput replaces printlnFn and returns a function yielding
// everything printed so far.
func captureOutput(t *testing.T) func() string {
	t.Helper()
	var (
		mu  sync.Mutex
		buf strings.Builder
	)
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return fmt.Fprintln(&buf, a...)
	}
	t.Cleanup(func() { printlnFn = orig })
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return buf.String()
	}
}

// stubInputs answers text prompts from answers in order and password prompts
// with password.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origML, origGP := getSimpleText, getMultiline, getPassword
	next := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		v := answers[0]
		answers = answers[1:]
		return v, nil
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getPassword = func(string, io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText, getMultiline, getPassword = origST, origML, origGP
	})
}

type fakeAuth struct {
	regEmail string
	regPass  []byte
	regErr   error

	loginEmail string
	loginPass  string
	loginErr   error

	logoutCalls int
	closed      bool
}

func (f *fakeAuth) Register(_ context.Context, email string, password []byte) (*models.User, error) {
	f.regEmail, f.regPass = email, append([]byte(nil), password...)
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: "u-new", Email: email}, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.User, error) {
	f.loginEmail, f.loginPass = email, string(password)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *fakeAuth) Logout(context.Context) error    { f.logoutCalls++; return nil }
func (f *fakeAuth) Ping(context.Context) error      { return nil }
func (f *fakeAuth) Close(ctx context.Context) error { f.closed = true; return nil }

type fakeEvents struct {
	events     []*models.Event
	listFilter models.EventFilter
	listErr    error

	created      *models.Event
	createdImage string
	createErr    error

	updated      *models.Event
	updatedImage string

	deleted  string
	joined   string
	left     string
	regs     []*models.Registration
	stats    *models.Stats
	uploaded string
}

func (f *fakeEvents) List(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	f.listFilter = filter
	return f.events, f.listErr
}

func (f *fakeEvents) Get(_ context.Context, id string) (*models.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeEvents) Create(_ context.Context, e *models.Event, image string) (*models.Event, error) {
	f.created, f.createdImage = e, image
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *e
	out.ID = "e-new"
	return &out, nil
}

func (f *fakeEvents) Update(_ context.Context, e *models.Event, image string) (*models.Event, error) {
	f.updated, f.updatedImage = e, image
	return e, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error { f.deleted = id; return nil }

func (f *fakeEvents) Join(_ context.Context, eventID string) (*models.Registration, error) {
	f.joined = eventID
	return &models.Registration{ID: "r1", EventID: eventID}, nil
}

func (f *fakeEvents) Leave(_ context.Context, eventID string) error { f.left = eventID; return nil }

func (f *fakeEvents) MyRegistrations(context.Context) ([]*models.Registration, error) {
	return f.regs, nil
}

func (f *fakeEvents) Attendees(context.Context, string) ([]*models.Registration, error) {
	return f.regs, nil
}

func (f *fakeEvents) Stats(context.Context) (*models.Stats, error) { return f.stats, nil }

func (f *fakeEvents) UploadImage(_ context.Context, path string) (*models.ImageUpload, error) {
	f.uploaded = path
	return &models.ImageUpload{Key: "events/k.png", PublicURL: "https://cdn.example.com/events/k.png"}, nil
}

type fakeProfiles struct {
	profile    *models.Profile
	getErr     error
	updateArgs []string
	listSearch string
	profiles   []*models.Profile
	roleArgs   []string
}

func (f *fakeProfiles) Get(context.Context, string) (*models.Profile, error) {
	return f.profile, f.getErr
}

func (f *fakeProfiles) Update(_ context.Context, fullName, phone, bio string) (*models.Profile, error) {
	f.updateArgs = []string{fullName, phone, bio}
	return &models.Profile{FullName: fullName, Phone: phone, Bio: bio}, nil
}

func (f *fakeProfiles) List(_ context.Context, search string) ([]*models.Profile, error) {
	f.listSearch = search
	return f.profiles, nil
}

func (f *fakeProfiles) SetRole(_ context.Context, userID, role string) (*models.Profile, error) {
	f.roleArgs = []string{userID, role}
	return &models.Profile{ID: userID, Role: role}, nil
}

type fakeSession struct {
	st        session.State
	resolved  session.State
	waits     int
	refreshes int

	afterSignIn session.State
	signInErr   error
	signInWaits []string
}

func (f *fakeSession) State() session.State { return f.st }

func (f *fakeSession) WaitResolved(context.Context) (session.State, error) {
	f.waits++
	f.st = f.resolved
	return f.st, nil
}

func (f *fakeSession) WaitSignedIn(_ context.Context, userID string) (session.State, error) {
	f.signInWaits = append(f.signInWaits, userID)
	f.st = f.afterSignIn
	return f.st, f.signInErr
}

func (f *fakeSession) RefreshUser(context.Context) { f.refreshes++ }

// flipSession reports st on the first State call and a signed-out state
// afterwards, as when another process signs out right after a guard check.
type flipSession struct {
	fakeSession
	calls int
}

func (f *flipSession) State() session.State {
	f.calls++
	if f.calls == 1 {
		return f.st
	}
	return session.State{}
}

var (
	alice = &models.User{ID: "u1", Email: "alice@example.com"}

	loggedOut = session.State{}
	asUser    = session.State{User: alice, Profile: &models.Profile{ID: "u1", Role: common.RoleUser}}
	asAdmin   = session.State{User: alice, Profile: &models.Profile{ID: "u1", Role: common.RoleAdmin}, IsAdmin: true}
)

type testApp struct {
	*App
	auth     *fakeAuth
	events   *fakeEvents
	profiles *fakeProfiles
	session  *fakeSession
}

func newTestApp(st session.State) *testApp {
	ta := &testApp{
		auth:     &fakeAuth{},
		events:   &fakeEvents{},
		profiles: &fakeProfiles{},
		session:  &fakeSession{st: st, resolved: st},
	}
	ta.App = &App{
		config:   &config.Config{RequestTimeout: time.Second},
		logger:   logging.Nop(),
		auth:     ta.auth,
		events:   ta.events,
		profiles: ta.profiles,
		session:  ta.session,
		reader:   bufio.NewReader(strings.NewReader("")),
	}
	return ta
}
