package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventhub/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for an email and a password (twice) and creates the
// account. The password byte slices are wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return errPasswordMismatch
	}

	user, err := a.auth.Register(ctx, email, bytes.Clone(password))
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Account created for %s. Use 'login' to sign in.", user.Email))
	return nil
}

// Login prompts for credentials and signs in. The synchronizer learns about
// the new session from the adapter's sign-in event; Login waits for it, at
// most one request timeout, so the next command already sees the user.
func (a *App) Login(ctx context.Context, _ []string) error {
	if st := a.state(); st.User != nil {
		printlnFn(fmt.Sprintf("Already signed in as %s. Use 'logout' first.", st.User.Email))
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()
	st, err := a.session.WaitSignedIn(waitCtx, user.ID)
	if err != nil {
		a.logger.Warn(ctx, "session not updated after sign in", "user_id", user.ID, "error", err)
	} else if st.User == nil {
		// signed out again, the notice has been shown
		return nil
	}

	printlnFn(fmt.Sprintf("Signed in as %s.", user.Email))
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Signed out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	st, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Email:  %s", st.User.Email))
	printlnFn(fmt.Sprintf("ID:     %s", st.User.ID))
	if st.Profile != nil {
		printlnFn(fmt.Sprintf("Name:   %s", st.Profile.FullName))
		printlnFn(fmt.Sprintf("Role:   %s", st.Profile.Role))
	}
	printlnFn(fmt.Sprintf("Admin:  %t", st.IsAdmin))
	return nil
}
