package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventhub/internal/client/guard"
	"github.com/dmitrijs2005/eventhub/internal/client/session"
)

func (a *App) getStatus() string {
	st := a.state()
	switch st.Status() {
	case session.Unresolved:
		return "(loading)"
	case session.LoggedIn:
		s := st.User.Email
		if st.IsAdmin {
			s += " admin"
		}
		return fmt.Sprintf("(%s)", s)
	default:
		return ""
	}
}

// Root prints the banner and runs the REPL until exit or EOF. Commands and
// their prompts read from the same reader so no input is lost between them.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to EventHub CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// navigate shows the screen a guard redirected to.
func (a *App) navigate(ctx context.Context, screen string) {
	switch screen {
	case guard.LoginScreen:
		printlnFn("Please sign in first: use 'login' or 'register'.")
	case guard.HomeScreen:
		printlnFn("This screen is for administrators only.")
		if err := a.Events(ctx, nil); err != nil {
			printlnFn("Error:", err)
		}
	}
}
