package session

import "github.com/dmitrijs2005/eventhub/internal/client/models"

// State is the process-wide authentication state. Values handed out by the
// Synchronizer are snapshots; changing them has no effect.
type State struct {
	User    *models.User
	Profile *models.Profile
	IsAdmin bool
	Loading bool
}

// Status names the state machine position of a State.
type Status int

const (
	Unresolved Status = iota
	LoggedOut
	LoggedIn
)

func (s Status) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case LoggedOut:
		return "logged out"
	case LoggedIn:
		return "logged in"
	default:
		return "unknown"
	}
}

func (s State) Status() Status {
	switch {
	case s.Loading:
		return Unresolved
	case s.User == nil:
		return LoggedOut
	default:
		return LoggedIn
	}
}

// clone copies the pointed-to records so a snapshot never aliases the
// Synchronizer's own values.
func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	if s.Profile != nil {
		p := *s.Profile
		s.Profile = &p
	}
	return s
}

func (s *State) logOut() {
	s.User = nil
	s.Profile = nil
	s.IsAdmin = false
}

// setUser switches to user, dropping a profile that belongs to someone else.
func (s *State) setUser(user *models.User) {
	s.User = user
	if s.Profile != nil && s.Profile.ID != user.ID {
		s.Profile = nil
	}
	s.IsAdmin = s.Profile.IsAdmin()
}

func (s *State) setProfile(p *models.Profile) {
	s.Profile = p
	s.IsAdmin = p.IsAdmin()
}
