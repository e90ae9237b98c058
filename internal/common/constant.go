package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// SessionStorageKey is the local storage key under which the client keeps
// the serialized session. Every client process sharing the storage file
// watches this key to follow sign-ins and sign-outs made elsewhere.
const SessionStorageKey = "eventhub.auth.token"

// Roles a profile can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultPageSize is the number of events returned per page when the caller
// does not ask for a specific limit.
const DefaultPageSize = 6
