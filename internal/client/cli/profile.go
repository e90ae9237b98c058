package cli

import (
	"context"
	"fmt"
	"os"
)

// Profile shows the signed-in user's profile and registrations.
func (a *App) Profile(ctx context.Context, _ []string) error {
	st, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	p, err := a.profiles.Get(ctx, st.User.ID)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Email:  %s", st.User.Email))
	printlnFn(fmt.Sprintf("Name:   %s", p.FullName))
	printlnFn(fmt.Sprintf("Phone:  %s", p.Phone))
	printlnFn(fmt.Sprintf("Bio:    %s", p.Bio))
	printlnFn(fmt.Sprintf("Role:   %s", p.Role))

	regs, err := a.events.MyRegistrations(ctx)
	if err != nil {
		return err
	}
	printlnFn()
	if len(regs) == 0 {
		printlnFn("You are not registered for any events.")
		return nil
	}
	printlnFn("Your registrations:")
	for _, r := range regs {
		if r.Event != nil {
			printlnFn("  " + eventLine(r.Event))
		} else {
			printlnFn("  " + r.EventID)
		}
	}
	return nil
}

// EditProfile prompts for new values, keeping the current one for an empty
// answer, and refreshes the signed-in identity afterwards.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	st, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	current, err := a.profiles.Get(ctx, st.User.ID)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, fmt.Sprintf("Full name [%s]", current.FullName), os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, fmt.Sprintf("Phone [%s]", current.Phone), os.Stdout)
	if err != nil {
		return err
	}
	bio, err := getMultiline(a.reader, "Bio (empty keeps the current one)", os.Stdout)
	if err != nil {
		return err
	}

	_, err = a.profiles.Update(ctx,
		withDefault(fullName, current.FullName),
		withDefault(phone, current.Phone),
		withDefault(bio, current.Bio),
	)
	if err != nil {
		return err
	}

	a.session.RefreshUser(ctx)
	printlnFn("Profile updated.")
	return nil
}
