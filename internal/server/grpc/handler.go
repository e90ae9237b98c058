package grpc

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) callerID(ctx context.Context) (string, error) {
	id, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, api.MsgUnauthorized)
	}
	return id, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.auth.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn(ctx, "sign up failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &api.SignUpResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.SignInResponse, error) {

	session, err := s.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.SignInResponse{Session: toAPISession(session)}, nil
}

func (s *GRPCServer) RefreshSession(ctx context.Context, req *api.RefreshSessionRequest) (*api.RefreshSessionResponse, error) {

	session, err := s.auth.RefreshSession(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.RefreshSessionResponse{Session: toAPISession(session)}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.SignOutResponse, error) {

	if err := s.auth.SignOut(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}

	return &api.SignOutResponse{}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *api.GetUserRequest) (*api.GetUserResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.auth.GetUser(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.GetUserResponse{User: toAPIUser(user)}, nil
}

// GetProfile returns the caller's profile when UserID is empty. A missing
// profile is reported as an empty response, not as an error.
func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.GetProfileResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.UserID != "" {
		userID = req.UserID
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.GetProfileResponse{Profile: toAPIProfile(profile)}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.UpdateProfileResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Update(ctx, userID, req.FullName, req.Phone, req.Bio)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.UpdateProfileResponse{Profile: toAPIProfile(profile)}, nil
}

func (s *GRPCServer) ListProfiles(ctx context.Context, req *api.ListProfilesRequest) (*api.ListProfilesResponse, error) {

	profiles, err := s.profiles.List(ctx, req.Search)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListProfilesResponse{Profiles: mapSlice(profiles, toAPIProfile)}, nil
}

func (s *GRPCServer) SetRole(ctx context.Context, req *api.SetRoleRequest) (*api.SetRoleResponse, error) {
	actorID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.SetRole(ctx, actorID, req.UserID, req.Role); err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "role changed", "actor_id", actorID, "user_id", req.UserID, "role", req.Role)

	profile, err := s.profiles.Get(ctx, req.UserID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.SetRoleResponse{Profile: toAPIProfile(profile)}, nil
}

func (s *GRPCServer) ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.ListEventsResponse, error) {

	events, err := s.events.List(ctx, models.EventFilter{
		Category: req.Category,
		Search:   req.Search,
		From:     req.From,
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListEventsResponse{Events: mapSlice(events, toAPIEvent)}, nil
}

func (s *GRPCServer) GetEvent(ctx context.Context, req *api.GetEventRequest) (*api.GetEventResponse, error) {

	event, err := s.events.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.GetEventResponse{Event: toAPIEvent(event)}, nil
}

func (s *GRPCServer) CreateEvent(ctx context.Context, req *api.CreateEventRequest) (*api.CreateEventResponse, error) {

	event, err := s.events.Create(ctx, fromAPIEvent(req.Event))
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "event created", "event_id", event.ID)
	return &api.CreateEventResponse{Event: toAPIEvent(event)}, nil
}

func (s *GRPCServer) UpdateEvent(ctx context.Context, req *api.UpdateEventRequest) (*api.UpdateEventResponse, error) {

	event, err := s.events.Update(ctx, fromAPIEvent(req.Event))
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.UpdateEventResponse{Event: toAPIEvent(event)}, nil
}

func (s *GRPCServer) DeleteEvent(ctx context.Context, req *api.DeleteEventRequest) (*api.DeleteEventResponse, error) {

	if err := s.events.Delete(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "event deleted", "event_id", req.ID)
	return &api.DeleteEventResponse{}, nil
}

func (s *GRPCServer) GetStats(ctx context.Context, req *api.GetStatsRequest) (*api.GetStatsResponse, error) {

	stats, err := s.events.Stats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.GetStatsResponse{Stats: &api.Stats{
		TotalEvents:        stats.TotalEvents,
		UpcomingEvents:     stats.UpcomingEvents,
		TotalUsers:         stats.TotalUsers,
		TotalRegistrations: stats.TotalRegistrations,
	}}, nil
}

func (s *GRPCServer) RegisterForEvent(ctx context.Context, req *api.RegisterForEventRequest) (*api.RegisterForEventResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	reg, err := s.registrations.Register(ctx, userID, req.EventID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.RegisterForEventResponse{Registration: toAPIRegistration(reg)}, nil
}

func (s *GRPCServer) CancelRegistration(ctx context.Context, req *api.CancelRegistrationRequest) (*api.CancelRegistrationResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.registrations.Cancel(ctx, userID, req.EventID); err != nil {
		return nil, toStatus(err)
	}

	return &api.CancelRegistrationResponse{}, nil
}

func (s *GRPCServer) ListMyRegistrations(ctx context.Context, req *api.ListMyRegistrationsRequest) (*api.ListMyRegistrationsResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	regs, err := s.registrations.ListMine(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListMyRegistrationsResponse{Registrations: mapSlice(regs, toAPIRegistration)}, nil
}

func (s *GRPCServer) ListEventRegistrations(ctx context.Context, req *api.ListEventRegistrationsRequest) (*api.ListEventRegistrationsResponse, error) {

	regs, err := s.registrations.ListForEvent(ctx, req.EventID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListEventRegistrationsResponse{Registrations: mapSlice(regs, toAPIRegistration)}, nil
}

func (s *GRPCServer) CreateImageUpload(ctx context.Context, req *api.CreateImageUploadRequest) (*api.CreateImageUploadResponse, error) {

	upload, err := s.storage.CreateImageUpload(ctx, req.FileName, req.ContentType)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.CreateImageUploadResponse{
		Key:       upload.Key,
		UploadURL: upload.UploadURL,
		PublicURL: upload.PublicURL,
	}, nil
}
