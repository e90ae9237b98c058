package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
)

const testSecret = "test-secret"

type fakeAuth struct {
	users    map[string]*models.User
	password string
	err      error
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u := &models.User{ID: "u-" + email, Email: email, CreatedAt: time.Now()}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (*services.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email && password == f.password {
			return &services.Session{AccessToken: "at", RefreshToken: "rt", ExpiresAt: time.Now().Add(time.Minute), User: u}, nil
		}
	}
	return nil, common.ErrorUnauthorized
}

func (f *fakeAuth) RefreshSession(_ context.Context, refreshToken string) (*services.Session, error) {
	if refreshToken != "rt" {
		return nil, common.ErrRefreshTokenExpired
	}
	return &services.Session{AccessToken: "at2", RefreshToken: "rt2"}, nil
}

func (f *fakeAuth) SignOut(context.Context, string) error { return f.err }

func (f *fakeAuth) GetUser(_ context.Context, userID string) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeProfiles struct {
	byID     map[string]*models.Profile
	adminErr error
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*models.Profile, error) {
	return f.byID[userID], nil
}

func (f *fakeProfiles) IsAdmin(_ context.Context, userID string) (bool, error) {
	if f.adminErr != nil {
		return false, f.adminErr
	}
	p := f.byID[userID]
	return p != nil && p.Role == common.RoleAdmin, nil
}

func (f *fakeProfiles) Update(_ context.Context, userID, fullName, phone, bio string) (*models.Profile, error) {
	p, ok := f.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.FullName, p.Phone, p.Bio = fullName, phone, bio
	return p, nil
}

func (f *fakeProfiles) List(_ context.Context, search string) ([]*models.Profile, error) {
	var out []*models.Profile
	for _, p := range f.byID {
		if strings.Contains(p.Email, search) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) SetRole(_ context.Context, actorID, userID, role string) error {
	if actorID == userID {
		return common.ErrorForbidden
	}
	p, ok := f.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	p.Role = role
	return nil
}

type fakeEvents struct {
	byID       map[string]*models.Event
	lastFilter models.EventFilter
}

func (f *fakeEvents) List(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	f.lastFilter = filter
	var out []*models.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEvents) Get(_ context.Context, id string) (*models.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (f *fakeEvents) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	if e.Title == "" {
		return nil, common.ErrorValidation
	}
	e.ID = "e-" + e.Title
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEvents) Update(_ context.Context, e *models.Event) (*models.Event, error) {
	if _, ok := f.byID[e.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEvents) Stats(context.Context) (*models.Stats, error) {
	return &models.Stats{TotalEvents: int64(len(f.byID)), UpcomingEvents: 1, TotalUsers: 2, TotalRegistrations: 3}, nil
}

type fakeRegistrations struct {
	regs []*models.Registration
}

func (f *fakeRegistrations) Register(_ context.Context, userID, eventID string) (*models.Registration, error) {
	for _, r := range f.regs {
		if r.UserID == userID && r.EventID == eventID {
			return nil, common.ErrorAlreadyExists
		}
	}
	r := &models.Registration{ID: "r" + eventID, UserID: userID, EventID: eventID}
	f.regs = append(f.regs, r)
	return r, nil
}

func (f *fakeRegistrations) Cancel(_ context.Context, userID, eventID string) error {
	for i, r := range f.regs {
		if r.UserID == userID && r.EventID == eventID {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeRegistrations) ListMine(_ context.Context, userID string) ([]*models.Registration, error) {
	var out []*models.Registration
	for _, r := range f.regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrations) ListForEvent(_ context.Context, eventID string) ([]*models.Registration, error) {
	var out []*models.Registration
	for _, r := range f.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeStorage struct{ err error }

func (f *fakeStorage) CreateImageUpload(_ context.Context, fileName, contentType string) (*services.ImageUpload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.ImageUpload{
		Key:       "events/x.png",
		UploadURL: "http://s3/upload",
		PublicURL: "http://s3/events/x.png",
	}, nil
}

type testDeps struct {
	auth          *fakeAuth
	profiles      *fakeProfiles
	events        *fakeEvents
	registrations *fakeRegistrations
	storage       *fakeStorage
}

// newTestServer seeds a regular user "u1" and an admin "admin".
func newTestServer(metrics *Metrics) (*GRPCServer, *testDeps) {
	d := &testDeps{
		auth: &fakeAuth{
			users: map[string]*models.User{
				"u1":    {ID: "u1", Email: "user@example.com"},
				"admin": {ID: "admin", Email: "admin@example.com"},
			},
			password: "Secret1!",
		},
		profiles: &fakeProfiles{byID: map[string]*models.Profile{
			"u1":    {ID: "u1", Email: "user@example.com", Role: common.RoleUser},
			"admin": {ID: "admin", Email: "admin@example.com", Role: common.RoleAdmin},
		}},
		events:        &fakeEvents{byID: map[string]*models.Event{}},
		registrations: &fakeRegistrations{},
		storage:       &fakeStorage{},
	}
	s := NewGRPCServer("127.0.0.1:0", logging.Nop(), Services{
		Auth:          d.auth,
		Profiles:      d.profiles,
		Events:        d.events,
		Registrations: d.registrations,
		Storage:       d.storage,
	}, testSecret, metrics)
	return s, d
}

func asUser(userID string) context.Context {
	return context.WithValue(context.Background(), userIDKey, userID)
}
