package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/client/guard"
	"github.com/dmitrijs2005/eventhub/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() session.State
	waitResolved(ctx context.Context) session.State
	navigate(ctx context.Context, screen string)

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Events(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Join(ctx context.Context, args []string) error
	Leave(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	EditProfile(ctx context.Context, args []string) error
	Dashboard(ctx context.Context, args []string) error
	AdminEvents(ctx context.Context, args []string) error
	AdminCreate(ctx context.Context, args []string) error
	AdminEdit(ctx context.Context, args []string) error
	AdminDelete(ctx context.Context, args []string) error
	AdminUsers(ctx context.Context, args []string) error
	AdminRole(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
}

type command struct {
	name    string
	usage   string
	about   string
	minArgs int
	policy  guard.Policy
	run     func(execIface, context.Context, []string) error
}

var commands = []command{
	{name: "register", about: "create an account", policy: guard.Public, run: execIface.Register},
	{name: "login", about: "sign in", policy: guard.Public, run: execIface.Login},
	{name: "events", usage: "[page] [category=..] [search=..] [from=YYYY-MM-DD]", about: "browse events", policy: guard.Public, run: execIface.Events},
	{name: "show", usage: "<event-id>", about: "event details", minArgs: 1, policy: guard.Public, run: execIface.Show},
	{name: "logout", about: "sign out", policy: guard.RequireAuth, run: execIface.Logout},
	{name: "whoami", about: "current account", policy: guard.RequireAuth, run: execIface.WhoAmI},
	{name: "join", usage: "<event-id>", about: "register for an event", minArgs: 1, policy: guard.RequireAuth, run: execIface.Join},
	{name: "leave", usage: "<event-id>", about: "cancel a registration", minArgs: 1, policy: guard.RequireAuth, run: execIface.Leave},
	{name: "profile", about: "your profile and registrations", policy: guard.RequireAuth, run: execIface.Profile},
	{name: "editprofile", about: "edit your profile", policy: guard.RequireAuth, run: execIface.EditProfile},
	{name: "admin", about: "dashboard", policy: guard.RequireAdmin, run: execIface.Dashboard},
	{name: "admin-events", usage: "[page]", about: "events with attendees", policy: guard.RequireAdmin, run: execIface.AdminEvents},
	{name: "admin-create", about: "create an event", policy: guard.RequireAdmin, run: execIface.AdminCreate},
	{name: "admin-edit", usage: "<event-id>", about: "edit an event", minArgs: 1, policy: guard.RequireAdmin, run: execIface.AdminEdit},
	{name: "admin-delete", usage: "<event-id>", about: "delete an event", minArgs: 1, policy: guard.RequireAdmin, run: execIface.AdminDelete},
	{name: "admin-users", usage: "[search]", about: "list users", policy: guard.RequireAdmin, run: execIface.AdminUsers},
	{name: "admin-role", usage: "<user-id> <user|admin>", about: "change a role", minArgs: 2, policy: guard.RequireAdmin, run: execIface.AdminRole},
	{name: "upload", usage: "<file>", about: "upload an event image", minArgs: 1, policy: guard.RequireAdmin, run: execIface.Upload},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

type ctxKey string

const stateCtxKey ctxKey = "session_state"

// withState records the state a command was authorized against.
func withState(ctx context.Context, st session.State) context.Context {
	return context.WithValue(ctx, stateCtxKey, st)
}

// authorize applies policy to the session state and returns the snapshot
// the decision was made on. An unresolved state prints the placeholder and
// waits for the resolution; a redirect is followed.
func authorize(ctx context.Context, a execIface, policy guard.Policy) (session.State, bool) {
	st := a.state()
	d := policy(st)
	if d.Action == guard.Wait {
		printlnFn(guard.Placeholder)
		st = a.waitResolved(ctx)
		d = policy(st)
	}

	switch d.Action {
	case guard.Render:
		return st, true
	case guard.Redirect:
		a.navigate(ctx, d.Target)
	}
	return st, false
}

// printHelp lists the commands the current state allows.
func printHelp(st session.State) {
	printlnFn("Available commands:")
	printlnFn("  help")
	for _, c := range commands {
		if c.policy(st).Action != guard.Render {
			continue
		}
		printlnFn(fmt.Sprintf("  %-14s %-50s %s", c.name, c.usage, c.about))
	}
	printlnFn("  exit")
}

// runREPL starts a simple read–eval–print loop for the EventHub CLI.
//
// It reads a line from reader, parses the first token as the command, checks
// the command's guard policy and dispatches to methods on 'a'. Unknown
// commands are reported back to the user. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Errors returned by command handlers are printed and never end the loop. A
// handler finding no signed-in user redirects to the login screen.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("eventhub%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(a.state())
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := lookup(name)
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if len(args) < cmd.minArgs {
			printlnFn("Usage:", cmd.name, cmd.usage)
			continue
		}
		st, ok := authorize(ctx, a, cmd.policy)
		if !ok {
			continue
		}
		err = cmd.run(a, withState(ctx, st), args)
		switch {
		case errors.Is(err, errSignedOut):
			a.navigate(ctx, guard.LoginScreen)
		case err != nil:
			printlnFn("Error:", err)
		}
	}
}
