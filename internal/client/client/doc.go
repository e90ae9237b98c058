// Package client is the EventHub backend adapter used by the CLI.
//
// # Overview
//
// The Client interface covers authentication (sign-up, sign-in, sign-out,
// session and identity lookup), an auth-state subscription, profiles,
// events, registrations, dashboard stats and image uploads. GRPCClient
// implements it over gRPC:
//
//   - the session is persisted as JSON in Storage under
//     common.SessionStorageKey, so every client process using the same
//     storage file shares it;
//   - an interceptor attaches the access token and, when the server reports
//     it expired, rotates the session once and retries the call;
//   - sign-in, sign-out, token refresh and identity changes are broadcast to
//     SubscribeAuthStateChanges handlers.
//
// # Error Handling
//
// gRPC statuses are mapped to sentinel errors that callers match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrAlreadyExists, ErrInvalidArgument, ErrRateLimited.
package client
