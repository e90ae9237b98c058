// Package profiles persists per-user profile rows.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, id string, role string) error
	// Get returns common.ErrorNotFound when the user has no profile.
	Get(ctx context.Context, id string) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) (*models.Profile, error)
	// List matches search against email and full name, case-insensitively.
	List(ctx context.Context, search string) ([]*models.Profile, error)
	SetRole(ctx context.Context, id string, role string) error
}
