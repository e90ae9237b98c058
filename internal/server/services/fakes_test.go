package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/registrations"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsers struct {
	mu       sync.Mutex
	byID     map[string]*models.User
	nextID   int
	err      error
	countErr error
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*models.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("u%d", f.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), f.countErr
}

type fakeProfiles struct {
	mu   sync.Mutex
	byID map[string]*models.Profile
	err  error
}

func newFakeProfiles() *fakeProfiles { return &fakeProfiles{byID: map[string]*models.Profile{}} }

func (f *fakeProfiles) Create(_ context.Context, id, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.byID[id] = &models.Profile{ID: id, Role: role}
	return nil
}

func (f *fakeProfiles) Get(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Update(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cur, ok := f.byID[p.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cur.FullName, cur.Phone, cur.Bio = p.FullName, p.Phone, p.Bio
	cp := *cur
	return &cp, nil
}

func (f *fakeProfiles) List(_ context.Context, search string) ([]*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Profile
	for _, p := range f.byID {
		if search == "" || strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProfiles) SetRole(_ context.Context, id, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Role = role
	return nil
}

type fakeTokens struct {
	mu        sync.Mutex
	byToken   map[string]*models.RefreshToken
	createErr error
	findErr   error
}

func newFakeTokens() *fakeTokens { return &fakeTokens{byToken: map[string]*models.RefreshToken{}} }

func (f *fakeTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.byToken[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	rt, ok := f.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *rt
	return &cp, nil
}

func (f *fakeTokens) Delete(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byToken[token]
	delete(f.byToken, token)
	return ok, nil
}

func (f *fakeTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, rt := range f.byToken {
		if rt.Expires.Before(now) {
			delete(f.byToken, k)
			n++
		}
	}
	return n, nil
}

type fakeEvents struct {
	mu         sync.Mutex
	byID       map[string]*models.Event
	lastFilter models.EventFilter
	err        error
	countSince []time.Time
}

func newFakeEvents() *fakeEvents { return &fakeEvents{byID: map[string]*models.Event{}} }

func (f *fakeEvents) List(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEvents) Get(_ context.Context, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEvents) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	e.CreatedAt = time.Now()
	cp := *e
	f.byID[e.ID] = &cp
	return e, nil
}

func (f *fakeEvents) Update(_ context.Context, e *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	f.byID[e.ID] = &cp
	return e, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEvents) Count(_ context.Context, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countSince = append(f.countSince, since)
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, e := range f.byID {
		if since.IsZero() || !e.Date.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeRegistrations struct {
	mu   sync.Mutex
	rows map[string]*models.Registration
	err  error
}

func newFakeRegistrations() *fakeRegistrations {
	return &fakeRegistrations{rows: map[string]*models.Registration{}}
}

func regKey(userID, eventID string) string { return userID + "|" + eventID }

func (f *fakeRegistrations) Create(_ context.Context, r *models.Registration) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	k := regKey(r.UserID, r.EventID)
	if _, ok := f.rows[k]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.CreatedAt = time.Now()
	cp := *r
	f.rows[k] = &cp
	return r, nil
}

func (f *fakeRegistrations) Delete(_ context.Context, userID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	k := regKey(userID, eventID)
	if _, ok := f.rows[k]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, k)
	return nil
}

func (f *fakeRegistrations) ListByUser(_ context.Context, userID string) ([]*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Registration
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrations) ListByEvent(_ context.Context, eventID string) ([]*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Registration
	for _, r := range f.rows {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrations) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), f.err
}

type fakeRepoManager struct {
	users    *fakeUsers
	profiles *fakeProfiles
	tokens   *fakeTokens
	events   *fakeEvents
	regs     *fakeRegistrations
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    newFakeUsers(),
		profiles: newFakeProfiles(),
		tokens:   newFakeTokens(),
		events:   newFakeEvents(),
		regs:     newFakeRegistrations(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository           { return m.profiles }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.tokens }
func (m *fakeRepoManager) Events(dbx.DBTX) events.Repository               { return m.events }
func (m *fakeRepoManager) Registrations(dbx.DBTX) registrations.Repository { return m.regs }
