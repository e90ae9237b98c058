package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/client/client"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
)

// ProfileService reads and edits profiles. List and SetRole are admin only;
// the server enforces that.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, fullName, phone, bio string) (*models.Profile, error)
	List(ctx context.Context, search string) ([]*models.Profile, error)
	SetRole(ctx context.Context, userID, role string) (*models.Profile, error)
}

type profileService struct {
	client client.Client
}

func NewProfileService(client client.Client) ProfileService {
	return &profileService{client: client}
}

// Get returns client.ErrNotFound when the user has no profile.
func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.client.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	if p == nil {
		return nil, client.ErrNotFound
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, fullName, phone, bio string) (*models.Profile, error) {
	p, err := s.client.UpdateProfile(ctx, strings.TrimSpace(fullName), strings.TrimSpace(phone), strings.TrimSpace(bio))
	if err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return p, nil
}

func (s *profileService) List(ctx context.Context, search string) ([]*models.Profile, error) {
	ps, err := s.client.ListProfiles(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	return ps, nil
}

func (s *profileService) SetRole(ctx context.Context, userID, role string) (*models.Profile, error) {
	if !common.IsValidRole(role) {
		return nil, fmt.Errorf("%w: role must be %s or %s", common.ErrorValidation, common.RoleUser, common.RoleAdmin)
	}
	p, err := s.client.SetRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("error changing role: %w", err)
	}
	return p, nil
}
