// Package models defines client-side data models used by the EventHub CLI.
package models

import (
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
)

// User is the backend identity of the signed-in account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is what the client persists in local storage after sign-in.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

// Expired reports whether the access token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type Profile struct {
	ID        string
	Email     string
	Role      string
	FullName  string
	Phone     string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == common.RoleAdmin
}

// AuthEventType names a change of the authentication state.
type AuthEventType string

const (
	SignedIn       AuthEventType = "SIGNED_IN"
	SignedOut      AuthEventType = "SIGNED_OUT"
	TokenRefreshed AuthEventType = "TOKEN_REFRESHED"
	UserUpdated    AuthEventType = "USER_UPDATED"
)

// AuthEvent is delivered to auth-state subscribers. Session is nil for
// SignedOut.
type AuthEvent struct {
	Type    AuthEventType
	Session *Session
}

// Established reports whether the event carries a live session.
func (e AuthEvent) Established() bool {
	return e.Type != SignedOut && e.Session != nil
}
