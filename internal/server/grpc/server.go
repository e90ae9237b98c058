// Package grpc exposes the EventHub services over gRPC. Requests are
// authenticated by an interceptor chain; handlers translate between wire
// types and models and map service errors to status codes.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
	"google.golang.org/grpc"
)

type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*services.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Update(ctx context.Context, userID, fullName, phone, bio string) (*models.Profile, error)
	List(ctx context.Context, search string) ([]*models.Profile, error)
	SetRole(ctx context.Context, actorID, userID, role string) error
}

type EventService interface {
	List(ctx context.Context, f models.EventFilter) ([]*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	Update(ctx context.Context, e *models.Event) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.Stats, error)
}

type RegistrationService interface {
	Register(ctx context.Context, userID, eventID string) (*models.Registration, error)
	Cancel(ctx context.Context, userID, eventID string) error
	ListMine(ctx context.Context, userID string) ([]*models.Registration, error)
	ListForEvent(ctx context.Context, eventID string) ([]*models.Registration, error)
}

type StorageService interface {
	CreateImageUpload(ctx context.Context, fileName, contentType string) (*services.ImageUpload, error)
}

// Services bundles the business logic the server dispatches to.
type Services struct {
	Auth          AuthService
	Profiles      ProfileService
	Events        EventService
	Registrations RegistrationService
	Storage       StorageService
}

type GRPCServer struct {
	api.UnimplementedEventHubServer
	address       string
	auth          AuthService
	profiles      ProfileService
	events        EventService
	registrations RegistrationService
	storage       StorageService
	metrics       *Metrics
	logger        logging.Logger
	jwtSecret     []byte
}

// NewGRPCServer builds a server bound to address. metrics may be nil.
func NewGRPCServer(address string, l logging.Logger, svc Services, secretKey string, metrics *Metrics) *GRPCServer {
	return &GRPCServer{
		address:       address,
		auth:          svc.Auth,
		profiles:      svc.Profiles,
		events:        svc.Events,
		registrations: svc.Registrations,
		storage:       svc.Storage,
		metrics:       metrics,
		logger:        l.With("module", "grpc_server"),
		jwtSecret:     []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.metricsInterceptor,
		s.accessTokenInterceptor,
	))
	api.RegisterEventHubServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")

		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	<-stopped
	return nil
}
