// Package registrations persists user sign-ups for events.
package registrations

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	// Create returns common.ErrorAlreadyExists when the user is already registered.
	Create(ctx context.Context, r *models.Registration) (*models.Registration, error)
	// Delete returns common.ErrorNotFound when there was nothing to cancel.
	Delete(ctx context.Context, userID, eventID string) error
	// ListByUser returns the user's registrations with Event populated.
	ListByUser(ctx context.Context, userID string) ([]*models.Registration, error)
	// ListByEvent returns an event's registrations with Profile populated.
	ListByEvent(ctx context.Context, eventID string) ([]*models.Registration, error)
	Count(ctx context.Context) (int64, error)
}
