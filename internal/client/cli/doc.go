// Package cli provides the interactive EventHub command-line client.
//
// It wires configuration, the shared local storage, the backend adapter, the
// session synchronizer and an interactive REPL. Several CLI processes started
// on the same storage file share one session: signing in or out in one of
// them is picked up by the others.
//
// Every command is bound to a guard policy:
//   - public: help, register, login, events, show, exit
//   - signed in: logout, whoami, join, leave, profile, editprofile
//   - admin: admin, admin-events, admin-create, admin-edit, admin-delete,
//     admin-users, admin-role, upload
//
// While the session is being resolved a guarded command prints "Loading..."
// and waits. A command the current user may not run redirects to the login
// or home screen instead.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
