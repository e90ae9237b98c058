package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// publicMethods need no access token.
var publicMethods = map[string]bool{
	api.FullMethod("Ping"):           true,
	api.FullMethod("SignUp"):         true,
	api.FullMethod("SignIn"):         true,
	api.FullMethod("RefreshSession"): true,
}

// adminMethods additionally require the caller's profile to have the admin
// role, whatever the client shows or hides.
var adminMethods = map[string]bool{
	api.FullMethod("ListProfiles"):           true,
	api.FullMethod("SetRole"):                true,
	api.FullMethod("CreateEvent"):            true,
	api.FullMethod("UpdateEvent"):            true,
	api.FullMethod("DeleteEvent"):            true,
	api.FullMethod("GetStats"):               true,
	api.FullMethod("ListEventRegistrations"): true,
	api.FullMethod("CreateImageUpload"):      true,
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func accessTokenFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := accessTokenFromContext(ctx)
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, api.MsgMissingToken)
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, api.MsgTokenExpired)
		}
		return nil, status.Error(codes.Unauthenticated, api.MsgInvalidToken)
	}
	ctx = context.WithValue(ctx, userIDKey, userID)

	if adminMethods[info.FullMethod] {
		ok, err := s.profiles.IsAdmin(ctx, userID)
		if err != nil {
			return nil, toStatus(err)
		}
		if !ok {
			s.logger.Warn(ctx, "admin method denied", "method", info.FullMethod, "user_id", userID)
			return nil, status.Error(codes.PermissionDenied, "admin role required")
		}
	}

	return handler(ctx, req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	s.metrics.observe(info.FullMethod, code, time.Since(start))
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", code.String(), "duration", time.Since(start))

	return resp, err
}
