package services

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/client/client"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

// fakeClient implements client.Client for the calls these tests make; the
// embedded interface panics on anything else.
type fakeClient struct {
	client.Client

	closeErr error
	pingErr  error

	signUpEmail, signUpPassword string
	signUpUser                  *models.User
	signUpErr                   error

	signInEmail, signInPassword string
	signInSession               *models.Session
	signInErr                   error

	signOutCalls int
	signOutErr   error

	profile    *models.Profile
	profileErr error
	profileID  string

	updateArgs []string
	profiles   []*models.Profile
	listSearch string
	roleArgs   []string
	roleErr    error

	listFilter models.EventFilter
	events     []*models.Event
	listErr    error
	created    *models.Event
	createErr  error
	deletedID  string
	updated    *models.Event

	joinedID string
	leftID   string
	regs     []*models.Registration
	stats    *models.Stats

	uploadPath string
	upload     *models.ImageUpload
	uploadErr  error
}

func (f *fakeClient) Close() error                   { return f.closeErr }
func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) SignUp(_ context.Context, email, password string) (*models.User, error) {
	f.signUpEmail, f.signUpPassword = email, password
	return f.signUpUser, f.signUpErr
}

func (f *fakeClient) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	f.signInEmail, f.signInPassword = email, password
	return f.signInSession, f.signInErr
}

func (f *fakeClient) SignOut(context.Context) error {
	f.signOutCalls++
	return f.signOutErr
}

func (f *fakeClient) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	f.profileID = userID
	return f.profile, f.profileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, fullName, phone, bio string) (*models.Profile, error) {
	f.updateArgs = []string{fullName, phone, bio}
	return &models.Profile{FullName: fullName, Phone: phone, Bio: bio}, nil
}

func (f *fakeClient) ListProfiles(_ context.Context, search string) ([]*models.Profile, error) {
	f.listSearch = search
	return f.profiles, nil
}

func (f *fakeClient) SetRole(_ context.Context, userID, role string) (*models.Profile, error) {
	f.roleArgs = []string{userID, role}
	if f.roleErr != nil {
		return nil, f.roleErr
	}
	return &models.Profile{ID: userID, Role: role}, nil
}

func (f *fakeClient) ListEvents(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	f.listFilter = filter
	return f.events, f.listErr
}

func (f *fakeClient) GetEvent(_ context.Context, id string) (*models.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeClient) CreateEvent(_ context.Context, e *models.Event) (*models.Event, error) {
	f.created = e
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *e
	out.ID = "e-new"
	return &out, nil
}

func (f *fakeClient) UpdateEvent(_ context.Context, e *models.Event) (*models.Event, error) {
	f.updated = e
	out := *e
	return &out, nil
}

func (f *fakeClient) DeleteEvent(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}

func (f *fakeClient) RegisterForEvent(_ context.Context, eventID string) (*models.Registration, error) {
	f.joinedID = eventID
	return &models.Registration{ID: "r1", EventID: eventID}, nil
}

func (f *fakeClient) CancelRegistration(_ context.Context, eventID string) error {
	f.leftID = eventID
	return nil
}

func (f *fakeClient) ListMyRegistrations(context.Context) ([]*models.Registration, error) {
	return f.regs, nil
}

func (f *fakeClient) ListEventRegistrations(_ context.Context, eventID string) ([]*models.Registration, error) {
	return f.regs, nil
}

func (f *fakeClient) GetStats(context.Context) (*models.Stats, error) { return f.stats, nil }

func (f *fakeClient) UploadImage(_ context.Context, path string) (*models.ImageUpload, error) {
	f.uploadPath = path
	return f.upload, f.uploadErr
}
