package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHandler_Ping(t *testing.T) {
	s, _ := newTestServer(nil)
	resp, err := s.Ping(context.Background(), &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestHandler_SignUpAndSignIn(t *testing.T) {
	s, _ := newTestServer(nil)
	ctx := context.Background()

	up, err := s.SignUp(ctx, &api.SignUpRequest{Email: "new@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", up.User.Email)

	_, err = s.SignUp(ctx, &api.SignUpRequest{Email: "new@example.com", Password: "Secret1!"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	in, err := s.SignIn(ctx, &api.SignInRequest{Email: "new@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, "at", in.Session.AccessToken)
	assert.Equal(t, "new@example.com", in.Session.User.Email)

	_, err = s.SignIn(ctx, &api.SignInRequest{Email: "new@example.com", Password: "wrong"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestHandler_SignInRateLimited(t *testing.T) {
	s, d := newTestServer(nil)
	d.auth.err = common.ErrorRateLimited

	_, err := s.SignIn(context.Background(), &api.SignInRequest{Email: "user@example.com", Password: "Secret1!"})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestHandler_RefreshSession(t *testing.T) {
	s, _ := newTestServer(nil)

	resp, err := s.RefreshSession(context.Background(), &api.RefreshSessionRequest{RefreshToken: "rt"})
	require.NoError(t, err)
	assert.Equal(t, "rt2", resp.Session.RefreshToken)

	_, err = s.RefreshSession(context.Background(), &api.RefreshSessionRequest{RefreshToken: "old"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, api.MsgRefreshTokenExpired, status.Convert(err).Message())
}

func TestHandler_SignOut(t *testing.T) {
	s, d := newTestServer(nil)

	_, err := s.SignOut(asUser("u1"), &api.SignOutRequest{RefreshToken: "rt"})
	require.NoError(t, err)

	d.auth.err = errors.New("db down")
	_, err = s.SignOut(asUser("u1"), &api.SignOutRequest{RefreshToken: "rt"})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestHandler_RequiresCaller(t *testing.T) {
	s, _ := newTestServer(nil)

	_, err := s.GetUser(context.Background(), &api.GetUserRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = s.RegisterForEvent(context.Background(), &api.RegisterForEventRequest{EventID: "e1"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestHandler_GetUser(t *testing.T) {
	s, _ := newTestServer(nil)

	resp, err := s.GetUser(asUser("u1"), &api.GetUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", resp.User.Email)

	_, err = s.GetUser(asUser("ghost"), &api.GetUserRequest{})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandler_GetProfile(t *testing.T) {
	s, _ := newTestServer(nil)

	own, err := s.GetProfile(asUser("u1"), &api.GetProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "u1", own.Profile.ID)

	other, err := s.GetProfile(asUser("u1"), &api.GetProfileRequest{UserID: "admin"})
	require.NoError(t, err)
	assert.Equal(t, common.RoleAdmin, other.Profile.Role)

	missing, err := s.GetProfile(asUser("ghost"), &api.GetProfileRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing.Profile)
}

func TestHandler_UpdateProfile(t *testing.T) {
	s, _ := newTestServer(nil)

	resp, err := s.UpdateProfile(asUser("u1"), &api.UpdateProfileRequest{FullName: "Jane", Phone: "123", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", resp.Profile.FullName)
	assert.Equal(t, "hi", resp.Profile.Bio)
}

func TestHandler_ProfilesAdmin(t *testing.T) {
	s, _ := newTestServer(nil)
	ctx := asUser("admin")

	list, err := s.ListProfiles(ctx, &api.ListProfilesRequest{Search: "user@"})
	require.NoError(t, err)
	require.Len(t, list.Profiles, 1)
	assert.Equal(t, "u1", list.Profiles[0].ID)

	set, err := s.SetRole(ctx, &api.SetRoleRequest{UserID: "u1", Role: common.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, common.RoleAdmin, set.Profile.Role)

	_, err = s.SetRole(ctx, &api.SetRoleRequest{UserID: "admin", Role: common.RoleUser})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = s.SetRole(ctx, &api.SetRoleRequest{UserID: "ghost", Role: common.RoleUser})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandler_Events(t *testing.T) {
	s, d := newTestServer(nil)
	ctx := asUser("admin")
	date := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	created, err := s.CreateEvent(ctx, &api.CreateEventRequest{Event: &api.Event{
		Title: "GoConf", Category: "Conference", Date: date, Price: 10,
	}})
	require.NoError(t, err)
	assert.Equal(t, "e-GoConf", created.Event.ID)

	_, err = s.CreateEvent(ctx, &api.CreateEventRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	got, err := s.GetEvent(ctx, &api.GetEventRequest{ID: created.Event.ID})
	require.NoError(t, err)
	assert.Equal(t, date, got.Event.Date)

	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	list, err := s.ListEvents(ctx, &api.ListEventsRequest{Category: "Conference", Search: "go", From: from, Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, list.Events, 1)
	assert.Equal(t, models.EventFilter{Category: "Conference", Search: "go", From: from, Page: 2, Limit: 3}, d.events.lastFilter)

	updated, err := s.UpdateEvent(ctx, &api.UpdateEventRequest{Event: &api.Event{ID: created.Event.ID, Title: "GoConf 2"}})
	require.NoError(t, err)
	assert.Equal(t, "GoConf 2", updated.Event.Title)

	stats, err := s.GetStats(ctx, &api.GetStatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Stats.TotalEvents)
	assert.Equal(t, int64(3), stats.Stats.TotalRegistrations)

	_, err = s.DeleteEvent(ctx, &api.DeleteEventRequest{ID: created.Event.ID})
	require.NoError(t, err)

	_, err = s.GetEvent(ctx, &api.GetEventRequest{ID: created.Event.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandler_Registrations(t *testing.T) {
	s, _ := newTestServer(nil)
	ctx := asUser("u1")

	reg, err := s.RegisterForEvent(ctx, &api.RegisterForEventRequest{EventID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", reg.Registration.UserID)

	_, err = s.RegisterForEvent(ctx, &api.RegisterForEventRequest{EventID: "e1"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	mine, err := s.ListMyRegistrations(ctx, &api.ListMyRegistrationsRequest{})
	require.NoError(t, err)
	assert.Len(t, mine.Registrations, 1)

	forEvent, err := s.ListEventRegistrations(asUser("admin"), &api.ListEventRegistrationsRequest{EventID: "e1"})
	require.NoError(t, err)
	assert.Len(t, forEvent.Registrations, 1)

	_, err = s.CancelRegistration(ctx, &api.CancelRegistrationRequest{EventID: "e1"})
	require.NoError(t, err)

	_, err = s.CancelRegistration(ctx, &api.CancelRegistrationRequest{EventID: "e1"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandler_CreateImageUpload(t *testing.T) {
	s, d := newTestServer(nil)

	resp, err := s.CreateImageUpload(asUser("admin"), &api.CreateImageUploadRequest{FileName: "x.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "events/x.png", resp.Key)
	assert.Equal(t, "http://s3/events/x.png", resp.PublicURL)

	d.storage.err = common.ErrorValidation
	_, err = s.CreateImageUpload(asUser("admin"), &api.CreateImageUploadRequest{FileName: "x.exe"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
