package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "eventhub.v1.EventHub"

// FullMethod returns the "/service/method" path grpc-go uses for method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// EventHubServer is implemented by the backend.
type EventHubServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	RefreshSession(context.Context, *RefreshSessionRequest) (*RefreshSessionResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error)
	ListProfiles(context.Context, *ListProfilesRequest) (*ListProfilesResponse, error)
	SetRole(context.Context, *SetRoleRequest) (*SetRoleResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
	GetEvent(context.Context, *GetEventRequest) (*GetEventResponse, error)
	CreateEvent(context.Context, *CreateEventRequest) (*CreateEventResponse, error)
	UpdateEvent(context.Context, *UpdateEventRequest) (*UpdateEventResponse, error)
	DeleteEvent(context.Context, *DeleteEventRequest) (*DeleteEventResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error)
	RegisterForEvent(context.Context, *RegisterForEventRequest) (*RegisterForEventResponse, error)
	CancelRegistration(context.Context, *CancelRegistrationRequest) (*CancelRegistrationResponse, error)
	ListMyRegistrations(context.Context, *ListMyRegistrationsRequest) (*ListMyRegistrationsResponse, error)
	ListEventRegistrations(context.Context, *ListEventRegistrationsRequest) (*ListEventRegistrationsResponse, error)
	CreateImageUpload(context.Context, *CreateImageUploadRequest) (*CreateImageUploadResponse, error)
}

// UnimplementedEventHubServer answers every call with codes.Unimplemented.
// Embed it to stay forward compatible when methods are added.
type UnimplementedEventHubServer struct{}

func (UnimplementedEventHubServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedEventHubServer) SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignUp not implemented")
}

func (UnimplementedEventHubServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignIn not implemented")
}

func (UnimplementedEventHubServer) RefreshSession(context.Context, *RefreshSessionRequest) (*RefreshSessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshSession not implemented")
}

func (UnimplementedEventHubServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}

func (UnimplementedEventHubServer) GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}

func (UnimplementedEventHubServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}

func (UnimplementedEventHubServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfile not implemented")
}

func (UnimplementedEventHubServer) ListProfiles(context.Context, *ListProfilesRequest) (*ListProfilesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProfiles not implemented")
}

func (UnimplementedEventHubServer) SetRole(context.Context, *SetRoleRequest) (*SetRoleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetRole not implemented")
}

func (UnimplementedEventHubServer) ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEvents not implemented")
}

func (UnimplementedEventHubServer) GetEvent(context.Context, *GetEventRequest) (*GetEventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEvent not implemented")
}

func (UnimplementedEventHubServer) CreateEvent(context.Context, *CreateEventRequest) (*CreateEventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEvent not implemented")
}

func (UnimplementedEventHubServer) UpdateEvent(context.Context, *UpdateEventRequest) (*UpdateEventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateEvent not implemented")
}

func (UnimplementedEventHubServer) DeleteEvent(context.Context, *DeleteEventRequest) (*DeleteEventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEvent not implemented")
}

func (UnimplementedEventHubServer) GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStats not implemented")
}

func (UnimplementedEventHubServer) RegisterForEvent(context.Context, *RegisterForEventRequest) (*RegisterForEventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterForEvent not implemented")
}

func (UnimplementedEventHubServer) CancelRegistration(context.Context, *CancelRegistrationRequest) (*CancelRegistrationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelRegistration not implemented")
}

func (UnimplementedEventHubServer) ListMyRegistrations(context.Context, *ListMyRegistrationsRequest) (*ListMyRegistrationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyRegistrations not implemented")
}

func (UnimplementedEventHubServer) ListEventRegistrations(context.Context, *ListEventRegistrationsRequest) (*ListEventRegistrationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEventRegistrations not implemented")
}

func (UnimplementedEventHubServer) CreateImageUpload(context.Context, *CreateImageUploadRequest) (*CreateImageUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateImageUpload not implemented")
}

// unary adapts a typed server method to grpc.MethodDesc, running the
// server's interceptor chain when one is installed.
func unary[Req any, Resp any](name string, call func(EventHubServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(EventHubServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(EventHubServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes EventHub for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EventHubServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", EventHubServer.Ping),
		unary("SignUp", EventHubServer.SignUp),
		unary("SignIn", EventHubServer.SignIn),
		unary("RefreshSession", EventHubServer.RefreshSession),
		unary("SignOut", EventHubServer.SignOut),
		unary("GetUser", EventHubServer.GetUser),
		unary("GetProfile", EventHubServer.GetProfile),
		unary("UpdateProfile", EventHubServer.UpdateProfile),
		unary("ListProfiles", EventHubServer.ListProfiles),
		unary("SetRole", EventHubServer.SetRole),
		unary("ListEvents", EventHubServer.ListEvents),
		unary("GetEvent", EventHubServer.GetEvent),
		unary("CreateEvent", EventHubServer.CreateEvent),
		unary("UpdateEvent", EventHubServer.UpdateEvent),
		unary("DeleteEvent", EventHubServer.DeleteEvent),
		unary("GetStats", EventHubServer.GetStats),
		unary("RegisterForEvent", EventHubServer.RegisterForEvent),
		unary("CancelRegistration", EventHubServer.CancelRegistration),
		unary("ListMyRegistrations", EventHubServer.ListMyRegistrations),
		unary("ListEventRegistrations", EventHubServer.ListEventRegistrations),
		unary("CreateImageUpload", EventHubServer.CreateImageUpload),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eventhub/v1/eventhub",
}

// RegisterEventHubServer attaches srv to s.
func RegisterEventHubServer(s grpc.ServiceRegistrar, srv EventHubServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// EventHubClient is the client stub of the EventHub service.
type EventHubClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	RefreshSession(ctx context.Context, in *RefreshSessionRequest, opts ...grpc.CallOption) (*RefreshSessionResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error)
	ListProfiles(ctx context.Context, in *ListProfilesRequest, opts ...grpc.CallOption) (*ListProfilesResponse, error)
	SetRole(ctx context.Context, in *SetRoleRequest, opts ...grpc.CallOption) (*SetRoleResponse, error)
	ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error)
	GetEvent(ctx context.Context, in *GetEventRequest, opts ...grpc.CallOption) (*GetEventResponse, error)
	CreateEvent(ctx context.Context, in *CreateEventRequest, opts ...grpc.CallOption) (*CreateEventResponse, error)
	UpdateEvent(ctx context.Context, in *UpdateEventRequest, opts ...grpc.CallOption) (*UpdateEventResponse, error)
	DeleteEvent(ctx context.Context, in *DeleteEventRequest, opts ...grpc.CallOption) (*DeleteEventResponse, error)
	GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error)
	RegisterForEvent(ctx context.Context, in *RegisterForEventRequest, opts ...grpc.CallOption) (*RegisterForEventResponse, error)
	CancelRegistration(ctx context.Context, in *CancelRegistrationRequest, opts ...grpc.CallOption) (*CancelRegistrationResponse, error)
	ListMyRegistrations(ctx context.Context, in *ListMyRegistrationsRequest, opts ...grpc.CallOption) (*ListMyRegistrationsResponse, error)
	ListEventRegistrations(ctx context.Context, in *ListEventRegistrationsRequest, opts ...grpc.CallOption) (*ListEventRegistrationsResponse, error)
	CreateImageUpload(ctx context.Context, in *CreateImageUploadRequest, opts ...grpc.CallOption) (*CreateImageUploadResponse, error)
}

type eventHubClient struct {
	cc grpc.ClientConnInterface
}

// NewEventHubClient returns a stub that encodes every call with the JSON codec.
func NewEventHubClient(cc grpc.ClientConnInterface) EventHubClient {
	return &eventHubClient{cc: cc}
}

func (c *eventHubClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, FullMethod(method), in, out, opts...)
}

func (c *eventHubClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, "Ping", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	out := new(SignUpResponse)
	if err := c.invoke(ctx, "SignUp", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	out := new(SignInResponse)
	if err := c.invoke(ctx, "SignIn", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) RefreshSession(ctx context.Context, in *RefreshSessionRequest, opts ...grpc.CallOption) (*RefreshSessionResponse, error) {
	out := new(RefreshSessionResponse)
	if err := c.invoke(ctx, "RefreshSession", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	out := new(SignOutResponse)
	if err := c.invoke(ctx, "SignOut", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	out := new(GetUserResponse)
	if err := c.invoke(ctx, "GetUser", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	out := new(GetProfileResponse)
	if err := c.invoke(ctx, "GetProfile", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error) {
	out := new(UpdateProfileResponse)
	if err := c.invoke(ctx, "UpdateProfile", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) ListProfiles(ctx context.Context, in *ListProfilesRequest, opts ...grpc.CallOption) (*ListProfilesResponse, error) {
	out := new(ListProfilesResponse)
	if err := c.invoke(ctx, "ListProfiles", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) SetRole(ctx context.Context, in *SetRoleRequest, opts ...grpc.CallOption) (*SetRoleResponse, error) {
	out := new(SetRoleResponse)
	if err := c.invoke(ctx, "SetRole", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	out := new(ListEventsResponse)
	if err := c.invoke(ctx, "ListEvents", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) GetEvent(ctx context.Context, in *GetEventRequest, opts ...grpc.CallOption) (*GetEventResponse, error) {
	out := new(GetEventResponse)
	if err := c.invoke(ctx, "GetEvent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) CreateEvent(ctx context.Context, in *CreateEventRequest, opts ...grpc.CallOption) (*CreateEventResponse, error) {
	out := new(CreateEventResponse)
	if err := c.invoke(ctx, "CreateEvent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) UpdateEvent(ctx context.Context, in *UpdateEventRequest, opts ...grpc.CallOption) (*UpdateEventResponse, error) {
	out := new(UpdateEventResponse)
	if err := c.invoke(ctx, "UpdateEvent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) DeleteEvent(ctx context.Context, in *DeleteEventRequest, opts ...grpc.CallOption) (*DeleteEventResponse, error) {
	out := new(DeleteEventResponse)
	if err := c.invoke(ctx, "DeleteEvent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error) {
	out := new(GetStatsResponse)
	if err := c.invoke(ctx, "GetStats", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) RegisterForEvent(ctx context.Context, in *RegisterForEventRequest, opts ...grpc.CallOption) (*RegisterForEventResponse, error) {
	out := new(RegisterForEventResponse)
	if err := c.invoke(ctx, "RegisterForEvent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) CancelRegistration(ctx context.Context, in *CancelRegistrationRequest, opts ...grpc.CallOption) (*CancelRegistrationResponse, error) {
	out := new(CancelRegistrationResponse)
	if err := c.invoke(ctx, "CancelRegistration", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) ListMyRegistrations(ctx context.Context, in *ListMyRegistrationsRequest, opts ...grpc.CallOption) (*ListMyRegistrationsResponse, error) {
	out := new(ListMyRegistrationsResponse)
	if err := c.invoke(ctx, "ListMyRegistrations", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) ListEventRegistrations(ctx context.Context, in *ListEventRegistrationsRequest, opts ...grpc.CallOption) (*ListEventRegistrationsResponse, error) {
	out := new(ListEventRegistrationsResponse)
	if err := c.invoke(ctx, "ListEventRegistrations", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventHubClient) CreateImageUpload(ctx context.Context, in *CreateImageUploadRequest, opts ...grpc.CallOption) (*CreateImageUploadResponse, error) {
	out := new(CreateImageUploadResponse)
	if err := c.invoke(ctx, "CreateImageUpload", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
