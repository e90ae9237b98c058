package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
)

// Dashboard prints the admin statistics.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	st, err := a.events.Stats(ctx)
	if err != nil {
		return err
	}
	printlnFn("Dashboard")
	printlnFn(fmt.Sprintf("  Total events:        %d", st.TotalEvents))
	printlnFn(fmt.Sprintf("  Upcoming events:     %d", st.UpcomingEvents))
	printlnFn(fmt.Sprintf("  Total users:         %d", st.TotalUsers))
	printlnFn(fmt.Sprintf("  Total registrations: %d", st.TotalRegistrations))
	return nil
}

// AdminEvents lists a page of events with the number of attendees of each.
func (a *App) AdminEvents(ctx context.Context, args []string) error {
	f, err := models.FilterFromArgs(args)
	if err != nil {
		return err
	}
	events, err := a.events.List(ctx, f)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		printlnFn("No events found.")
		return nil
	}
	for _, e := range events {
		attendees, err := a.events.Attendees(ctx, e.ID)
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("%s  (%d registered)", eventLine(e), len(attendees)))
	}
	return nil
}

// promptEvent asks for every event field. An empty answer keeps the value
// from base, so the same prompts serve both create and edit. It returns the
// image answer, which may be a URL or a local file.
func (a *App) promptEvent(base models.Event) (*models.Event, string, error) {
	var (
		e   = base
		err error
	)

	ask := func(prompt, current string) string {
		if err != nil {
			return ""
		}
		if current != "" {
			prompt = fmt.Sprintf("%s [%s]", prompt, current)
		}
		var v string
		v, err = getSimpleText(a.reader, prompt, os.Stdout)
		return withDefault(v, current)
	}

	var date, price string
	if !base.Date.IsZero() {
		date = base.Date.Format(models.DateLayout)
	}
	if base.Price > 0 {
		price = strconv.FormatFloat(base.Price, 'f', -1, 64)
	}

	e.Title = ask("Title", base.Title)
	if err == nil {
		var desc string
		desc, err = getMultiline(a.reader, "Description", os.Stdout)
		e.Description = withDefault(desc, base.Description)
	}
	e.Category = ask(fmt.Sprintf("Category (%s)", strings.Join(common.Categories, ", ")), base.Category)
	date = ask("Date (YYYY-MM-DD)", date)
	e.Time = ask("Time (HH:MM, optional)", base.Time)
	e.Location = ask("Location", base.Location)
	e.Organizer = ask("Organizer (optional)", base.Organizer)
	price = ask("Price (empty for free)", price)
	image := ask("Image URL or file path (optional)", "")
	if err != nil {
		return nil, "", err
	}

	if date != "" {
		if e.Date, err = time.Parse(models.DateLayout, date); err != nil {
			return nil, "", fmt.Errorf("%w: date must look like 2026-01-31", common.ErrorValidation)
		}
	}
	if price != "" {
		if e.Price, err = strconv.ParseFloat(price, 64); err != nil {
			return nil, "", fmt.Errorf("%w: price must be a number", common.ErrorValidation)
		}
	}
	return &e, image, nil
}

// AdminCreate prompts for the event fields and creates the event. The image
// may be a URL or a local file, which is uploaded first.
func (a *App) AdminCreate(ctx context.Context, _ []string) error {
	e, image, err := a.promptEvent(models.Event{})
	if err != nil {
		return err
	}
	created, err := a.events.Create(ctx, e, image)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Event created: %s", created.ID))
	return nil
}

// AdminEdit prompts for new values of an existing event, keeping the
// current value on an empty answer.
func (a *App) AdminEdit(ctx context.Context, args []string) error {
	current, err := a.events.Get(ctx, args[0])
	if err != nil {
		return err
	}
	e, image, err := a.promptEvent(*current)
	if err != nil {
		return err
	}
	updated, err := a.events.Update(ctx, e, image)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Event updated: %s", updated.ID))
	return nil
}

// AdminDelete deletes an event after a confirmation.
func (a *App) AdminDelete(ctx context.Context, args []string) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete event %s? (y/N)", args[0]), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		printlnFn("Cancelled.")
		return nil
	}
	if err := a.events.Delete(ctx, args[0]); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Event %s deleted.", args[0]))
	return nil
}

func (a *App) AdminUsers(ctx context.Context, args []string) error {
	profiles, err := a.profiles.List(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		printlnFn("No users found.")
		return nil
	}
	for _, p := range profiles {
		printlnFn(profileLine(p))
	}
	return nil
}

func (a *App) AdminRole(ctx context.Context, args []string) error {
	p, err := a.profiles.SetRole(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("User %s is now %s.", p.ID, p.Role))
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	u, err := a.events.UploadImage(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Uploaded: %s", u.PublicURL))
	return nil
}
