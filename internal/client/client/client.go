package client

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

// Client is the backend adapter the CLI and the session synchronizer talk to.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	GetUser(ctx context.Context) (*models.User, error)
	SubscribeAuthStateChanges(handler func(models.AuthEvent)) (unsubscribe func())

	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, fullName, phone, bio string) (*models.Profile, error)
	ListProfiles(ctx context.Context, search string) ([]*models.Profile, error)
	SetRole(ctx context.Context, userID, role string) (*models.Profile, error)

	ListEvents(ctx context.Context, f models.EventFilter) ([]*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, e *models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, e *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*models.Stats, error)

	RegisterForEvent(ctx context.Context, eventID string) (*models.Registration, error)
	CancelRegistration(ctx context.Context, eventID string) error
	ListMyRegistrations(ctx context.Context) ([]*models.Registration, error)
	ListEventRegistrations(ctx context.Context, eventID string) ([]*models.Registration, error)

	UploadImage(ctx context.Context, path string) (*models.ImageUpload, error)
}

var _ Client = (*GRPCClient)(nil)

// Storage is where the session is persisted. It is shared by every client
// process using the same file.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
