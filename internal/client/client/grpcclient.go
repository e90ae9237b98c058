package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/filex"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/netx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var now = time.Now

// httpDo performs the object storage upload; replaced in tests.
var httpDo netx.DoFunc = http.DefaultClient.Do

// noTokenMethods are sent without an access token and never refreshed.
var noTokenMethods = map[string]bool{
	api.FullMethod("Ping"):           true,
	api.FullMethod("SignUp"):         true,
	api.FullMethod("SignIn"):         true,
	api.FullMethod("RefreshSession"): true,
}

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.EventHubClient
	storage     Storage
	logger      logging.Logger
	hub         *authHub
	refreshMu   sync.Mutex
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == api.MsgTokenExpired
}

// accessTokenInterceptor applies the request timeout, attaches the stored
// access token and, when the server reports it expired, refreshes the
// session once and retries.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if _, ok := ctx.Deadline(); !ok && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if noTokenMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	session, err := s.loadSession(ctx)
	if err != nil {
		return err
	}
	var token string
	if session != nil {
		token = session.AccessToken
	}

	err = invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
	if !isTokenExpired(err) || session == nil || session.RefreshToken == "" {
		return err
	}

	refreshed, err := s.refresh(ctx, session)
	if err != nil {
		return err
	}

	return invoker(withAccessToken(ctx, refreshed.AccessToken), method, req, reply, cc, opts...)
}

// NewEventHubClient connects to the backend at endpointURL and keeps the
// session in storage. timeout applies to every call without a deadline.
func NewEventHubClient(endpointURL string, storage Storage, timeout time.Duration, logger logging.Logger) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL: endpointURL,
		timeout:     timeout,
		storage:     storage,
		logger:      logger.With("module", "client"),
		hub:         newAuthHub(),
	}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewEventHubClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	s.hub.close()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SubscribeAuthStateChanges registers handler for sign-in, sign-out, token
// refresh and user update events. Handlers run on their own goroutine, one
// event at a time, in emission order.
func (s *GRPCClient) SubscribeAuthStateChanges(handler func(models.AuthEvent)) func() {
	return s.hub.subscribe(handler)
}

func (s *GRPCClient) loadSession(ctx context.Context) (*models.Session, error) {
	raw, ok, err := s.storage.Get(ctx, common.SessionStorageKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Warn(ctx, "discarding unreadable session", "error", err)
		return nil, nil
	}
	return &session, nil
}

func (s *GRPCClient) saveSession(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, common.SessionStorageKey, string(raw)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *GRPCClient) clearSession(ctx context.Context) error {
	if err := s.storage.Remove(ctx, common.SessionStorageKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// refresh rotates the session that produced an expired-token error. If the
// stored session has meanwhile been rotated by another goroutine or another
// process, that session is used instead.
func (s *GRPCClient) refresh(ctx context.Context, used *models.Session) (*models.Session, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	current, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotSignedIn
	}
	if current.RefreshToken != used.RefreshToken && !current.Expired(now()) {
		return current, nil
	}

	resp, err := s.client.RefreshSession(ctx, &api.RefreshSessionRequest{RefreshToken: current.RefreshToken})
	if err != nil {
		return nil, err
	}

	session := fromAPISession(resp.Session)
	if session.User == nil {
		session.User = current.User
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "session refreshed")
	s.hub.emit(models.AuthEvent{Type: models.TokenRefreshed, Session: session})
	return session, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password string) (*models.User, error) {

	resp, err := s.client.SignUp(ctx, &api.SignUpRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromAPIUser(resp.User), nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {

	resp, err := s.client.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	session := fromAPISession(resp.Session)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	s.hub.emit(models.AuthEvent{Type: models.SignedIn, Session: session})
	return session, nil
}

// SignOut revokes the refresh token and forgets the stored session. The
// local session is removed even when the server cannot be reached.
func (s *GRPCClient) SignOut(ctx context.Context) error {

	session, err := s.loadSession(ctx)
	if err != nil {
		return err
	}

	if session != nil && session.RefreshToken != "" {
		if _, err := s.client.SignOut(ctx, &api.SignOutRequest{RefreshToken: session.RefreshToken}); err != nil {
			s.logger.Warn(ctx, "revoking refresh token failed", "error", err)
		}
	}

	if err := s.clearSession(ctx); err != nil {
		return err
	}

	s.hub.emit(models.AuthEvent{Type: models.SignedOut})
	return nil
}

// GetSession returns the stored session, refreshing it first when the access
// token has expired. A session whose refresh token is rejected is removed
// and reported as absent.
func (s *GRPCClient) GetSession(ctx context.Context) (*models.Session, error) {

	session, err := s.loadSession(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	if !session.Expired(now()) {
		return session, nil
	}

	refreshed, err := s.refresh(ctx, session)
	if err == nil {
		return refreshed, nil
	}
	if status.Code(err) != codes.Unauthenticated && !errors.Is(err, ErrNotSignedIn) {
		return nil, s.mapError(err)
	}

	s.logger.Info(ctx, "stored session is no longer valid")
	if err := s.clearSession(ctx); err != nil {
		return nil, err
	}
	s.hub.emit(models.AuthEvent{Type: models.SignedOut})
	return nil, nil
}

// GetUser fetches the identity of the current session. When it differs from
// the stored copy, the stored session is updated and USER_UPDATED emitted.
func (s *GRPCClient) GetUser(ctx context.Context) (*models.User, error) {

	resp, err := s.client.GetUser(ctx, &api.GetUserRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	user := fromAPIUser(resp.User)

	session, err := s.loadSession(ctx)
	if err != nil || session == nil || user == nil {
		return user, nil
	}
	if sameUser(session.User, user) {
		return user, nil
	}

	session.User = user
	if err := s.saveSession(ctx, session); err != nil {
		s.logger.Warn(ctx, "updating stored user failed", "error", err)
		return user, nil
	}
	s.hub.emit(models.AuthEvent{Type: models.UserUpdated, Session: session})
	return user, nil
}

func sameUser(a, b *models.User) bool {
	return a != nil && b != nil && a.ID == b.ID && a.Email == b.Email && a.CreatedAt.Equal(b.CreatedAt)
}

// GetProfile returns nil without error when the user has no profile.
func (s *GRPCClient) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {

	resp, err := s.client.GetProfile(ctx, &api.GetProfileRequest{UserID: userID})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromAPIProfile(resp.Profile), nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, fullName, phone, bio string) (*models.Profile, error) {

	resp, err := s.client.UpdateProfile(ctx, &api.UpdateProfileRequest{FullName: fullName, Phone: phone, Bio: bio})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromAPIProfile(resp.Profile), nil
}

func (s *GRPCClient) ListProfiles(ctx context.Context, search string) ([]*models.Profile, error) {

	resp, err := s.client.ListProfiles(ctx, &api.ListProfilesRequest{Search: search})
	if err != nil {
		return nil, s.mapError(err)
	}

	return mapSlice(resp.Profiles, fromAPIProfile), nil
}

func (s *GRPCClient) SetRole(ctx context.Context, userID, role string) (*models.Profile, error) {

	resp, err := s.client.SetRole(ctx, &api.SetRoleRequest{UserID: userID, Role: role})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromAPIProfile(resp.Profile), nil
}

func (s *GRPCClient) ListEvents(ctx context.Context, f models.EventFilter) ([]*models.Event, error) {

	resp, err := s.client.ListEvents(ctx, &api.ListEventsRequest{
		Category: f.Category,
		Search:   f.Search,
		From:     f.From,
		Page:     f.Page,
		Limit:    f.Limit,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return mapSlice(resp.Events, fromAPIEvent), nil
}

func (s *GRPCClient) GetEvent(ctx context.Context, id string) (*models.Event, error) {

	resp, err := s.client.GetEvent(ctx, &api.GetEventRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromAPIEvent(resp.Event), nil
}

func (s *GRPCClient) CreateEvent(ctx context.Context, e *models.Event) (*models.Event, error) {

	resp, err := s.client.CreateEvent(ctx, &api.CreateEventRequest{Event: toAPIEvent(e)})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromAPIEvent(resp.Event), nil
}

func (s *GRPCClient) UpdateEvent(ctx context.Context, e *models.Event) (*models.Event, error) {

	resp, err := s.client.UpdateEvent(ctx, &api.UpdateEventRequest{Event: toAPIEvent(e)})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromAPIEvent(resp.Event), nil
}

func (s *GRPCClient) DeleteEvent(ctx context.Context, id string) error {

	if _, err := s.client.DeleteEvent(ctx, &api.DeleteEventRequest{ID: id}); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *GRPCClient) GetStats(ctx context.Context) (*models.Stats, error) {

	resp, err := s.client.GetStats(ctx, &api.GetStatsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Stats == nil {
		return &models.Stats{}, nil
	}

	return &models.Stats{
		TotalEvents:        resp.Stats.TotalEvents,
		UpcomingEvents:     resp.Stats.UpcomingEvents,
		TotalUsers:         resp.Stats.TotalUsers,
		TotalRegistrations: resp.Stats.TotalRegistrations,
	}, nil
}

func (s *GRPCClient) RegisterForEvent(ctx context.Context, eventID string) (*models.Registration, error) {

	resp, err := s.client.RegisterForEvent(ctx, &api.RegisterForEventRequest{EventID: eventID})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromAPIRegistration(resp.Registration), nil
}

func (s *GRPCClient) CancelRegistration(ctx context.Context, eventID string) error {

	if _, err := s.client.CancelRegistration(ctx, &api.CancelRegistrationRequest{EventID: eventID}); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *GRPCClient) ListMyRegistrations(ctx context.Context) ([]*models.Registration, error) {

	resp, err := s.client.ListMyRegistrations(ctx, &api.ListMyRegistrationsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return mapSlice(resp.Registrations, fromAPIRegistration), nil
}

func (s *GRPCClient) ListEventRegistrations(ctx context.Context, eventID string) ([]*models.Registration, error) {

	resp, err := s.client.ListEventRegistrations(ctx, &api.ListEventRegistrationsRequest{EventID: eventID})
	if err != nil {
		return nil, s.mapError(err)
	}

	return mapSlice(resp.Registrations, fromAPIRegistration), nil
}

// UploadImage asks the backend for a presigned URL and PUTs the image file
// there. The returned PublicURL can be used as an event's image URL.
func (s *GRPCClient) UploadImage(ctx context.Context, path string) (*models.ImageUpload, error) {

	data, contentType, err := filex.ReadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	resp, err := s.client.CreateImageUpload(ctx, &api.CreateImageUploadRequest{
		FileName:    filepath.Base(path),
		ContentType: contentType,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	if err := netx.UploadToPresignedURL(ctx, httpDo, resp.UploadURL, contentType, data); err != nil {
		if errors.Is(err, netx.ErrUploadRejected) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &models.ImageUpload{Key: resp.Key, UploadURL: resp.UploadURL, PublicURL: resp.PublicURL}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.ResourceExhausted:
		return ErrRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
