package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

// Events lists one page of events. It is also the home screen.
func (a *App) Events(ctx context.Context, args []string) error {
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
		printlnFn(eventLine(e))
	}
	printlnFn(fmt.Sprintf("Page %d. Use 'events %d' for more, 'show <id>' for details.", f.Page, f.Page+1))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	e, err := a.events.Get(ctx, args[0])
	if err != nil {
		return err
	}
	printEvent(e)
	if a.state().User == nil {
		printlnFn("Sign in to register for this event.")
	}
	return nil
}

func (a *App) Join(ctx context.Context, args []string) error {
	r, err := a.events.Join(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Registered for event %s.", r.EventID))
	return nil
}

func (a *App) Leave(ctx context.Context, args []string) error {
	if err := a.events.Leave(ctx, args[0]); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Registration for event %s cancelled.", args[0]))
	return nil
}
