package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventhub/internal/client/client"
	"github.com/dmitrijs2005/eventhub/internal/client/config"
	"github.com/dmitrijs2005/eventhub/internal/client/localstore"
	"github.com/dmitrijs2005/eventhub/internal/client/services"
	"github.com/dmitrijs2005/eventhub/internal/client/session"
	"github.com/dmitrijs2005/eventhub/internal/logging"
)

// sessionView is what the screens need from the session synchronizer.
type sessionView interface {
	State() session.State
	WaitResolved(ctx context.Context) (session.State, error)
	WaitSignedIn(ctx context.Context, userID string) (session.State, error)
	RefreshUser(ctx context.Context)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	auth     services.AuthService
	events   services.EventService
	profiles services.ProfileService
	session  sessionView
	reader   *bufio.Reader

	sync  *session.Synchronizer
	store *localstore.Store
}

// NewApp opens the local storage at c.StoragePath, connects to the server
// and prepares the session synchronizer. Nothing runs until Run.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, err := localstore.Open(ctx, c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("error opening local storage: %w", err)
	}

	watcher, err := localstore.NewWatcher(store, logger, localstore.DefaultRescanInterval)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("error watching local storage: %w", err)
	}

	apiClient, err := client.NewEventHubClient(c.ServerEndpointAddr, store, c.RequestTimeout, logger)
	if err != nil {
		_ = watcher.Close()
		_ = store.Close()
		return nil, err
	}

	sync := session.New(apiClient, watcher, notify, logger)

	return &App{
		config:   c,
		logger:   logger,
		auth:     services.NewAuthService(apiClient),
		events:   services.NewEventService(apiClient, c.PageSize),
		profiles: services.NewProfileService(apiClient),
		session:  sync,
		reader:   bufio.NewReader(os.Stdin),
		sync:     sync,
		store:    store,
	}, nil
}

// notify shows a transient message from the synchronizer, e.g. a forced
// sign-out.
func notify(msg string) {
	printlnFn("\n! " + msg)
}

// Run starts the synchronizer and the REPL and releases everything once the
// user leaves.
func (a *App) Run(ctx context.Context) {
	if a.store != nil {
		defer a.store.Close()
	}
	defer a.auth.Close(ctx)
	if a.sync != nil {
		a.sync.Start(ctx)
		defer a.sync.Close()
	}
	a.Root(ctx)
}

var errSignedOut = errors.New("not signed in")

func (a *App) state() session.State {
	return a.session.State()
}

// signedIn returns the state the running command was authorized against, or
// the current state outside the REPL. It fails with errSignedOut when there
// is no user.
func (a *App) signedIn(ctx context.Context) (session.State, error) {
	st, ok := ctx.Value(stateCtxKey).(session.State)
	if !ok {
		st = a.state()
	}
	if st.User == nil {
		return st, errSignedOut
	}
	return st, nil
}

func (a *App) waitResolved(ctx context.Context) session.State {
	st, err := a.session.WaitResolved(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session not resolved", "error", err)
	}
	return st
}
