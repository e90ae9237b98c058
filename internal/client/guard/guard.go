// Package guard decides whether a protected screen may be shown for a given
// session state. Guards are pure: they read a session.State and return a
// Decision; the caller performs the navigation.
package guard

import "github.com/dmitrijs2005/eventhub/internal/client/session"

// Screens guards redirect to.
const (
	LoginScreen = "login"
	HomeScreen  = "home"
)

// Placeholder is shown while the session is still being resolved.
const Placeholder = "Loading..."

type Action int

const (
	Render Action = iota
	Wait
	Redirect
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a guard. Target is set for Redirect only.
type Decision struct {
	Action Action
	Target string
}

// Policy is a guard function.
type Policy func(session.State) Decision

// Public allows every state, including an unresolved one.
func Public(session.State) Decision { return Decision{Action: Render} }

// RequireAuth allows signed-in users.
func RequireAuth(st session.State) Decision {
	switch {
	case st.Loading:
		return Decision{Action: Wait}
	case st.User == nil:
		return Decision{Action: Redirect, Target: LoginScreen}
	default:
		return Decision{Action: Render}
	}
}

// RequireAdmin allows signed-in admins and sends other signed-in users home.
func RequireAdmin(st session.State) Decision {
	if d := RequireAuth(st); d.Action != Render {
		return d
	}
	if !st.IsAdmin {
		return Decision{Action: Redirect, Target: HomeScreen}
	}
	return Decision{Action: Render}
}
