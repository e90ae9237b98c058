// Package events persists event listings.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	// List returns one page of events matching f ordered by date ascending.
	List(ctx context.Context, f models.EventFilter) ([]*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	Update(ctx context.Context, e *models.Event) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	// Count returns the number of events dated on or after since; a zero
	// since counts every event.
	Count(ctx context.Context, since time.Time) (int64, error)
}
