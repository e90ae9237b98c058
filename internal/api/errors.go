package api

// Status messages the server attaches to codes.Unauthenticated so the client
// can tell a stale access token from a revoked session.
const (
	MsgMissingToken        = "missing token"
	MsgInvalidToken        = "invalid token"
	MsgTokenExpired        = "token expired"
	MsgRefreshTokenExpired = "refresh token expired"
	MsgUnauthorized        = "unauthorized"
)
