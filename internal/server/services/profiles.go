package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/repomanager"
)

const (
	maxFullNameLen = 120
	maxPhoneLen    = 32
	maxBioLen      = 2000
)

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ProfileService {
	return &ProfileService{db: db, repomanager: m, logger: logger.With("module", "profiles")}
}

// Get returns the profile of userID, or nil when it does not exist.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		s.logger.Error(ctx, "profile lookup failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return p, nil
}

// IsAdmin reports whether userID holds the admin role.
func (s *ProfileService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return p != nil && p.Role == common.RoleAdmin, nil
}

// Update changes the editable fields of the caller's own profile.
func (s *ProfileService) Update(ctx context.Context, userID, fullName, phone, bio string) (*models.Profile, error) {
	p := &models.Profile{
		ID:       userID,
		FullName: strings.TrimSpace(fullName),
		Phone:    strings.TrimSpace(phone),
		Bio:      strings.TrimSpace(bio),
	}
	switch {
	case len(p.FullName) > maxFullNameLen:
		return nil, fmt.Errorf("%w: full name is too long", common.ErrorValidation)
	case len(p.Phone) > maxPhoneLen:
		return nil, fmt.Errorf("%w: phone is too long", common.ErrorValidation)
	case len(p.Bio) > maxBioLen:
		return nil, fmt.Errorf("%w: bio is too long", common.ErrorValidation)
	}

	updated, err := s.repomanager.Profiles(s.db).Update(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "profile update failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return updated, nil
}

// List returns all profiles matching search. Admin only.
func (s *ProfileService) List(ctx context.Context, search string) ([]*models.Profile, error) {
	list, err := s.repomanager.Profiles(s.db).List(ctx, strings.TrimSpace(search))
	if err != nil {
		s.logger.Error(ctx, "profile list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

// SetRole changes the role of userID. Admins cannot demote themselves so
// the system always keeps the admin who made the change.
func (s *ProfileService) SetRole(ctx context.Context, actorID, userID, role string) error {
	if !common.IsValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}
	if actorID == userID && role != common.RoleAdmin {
		return fmt.Errorf("%w: cannot remove your own admin role", common.ErrorValidation)
	}
	if err := s.repomanager.Profiles(s.db).SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		s.logger.Error(ctx, "set role failed", "user_id", userID, "error", err)
		return common.ErrorInternal
	}
	s.logger.Info(ctx, "role changed", "actor_id", actorID, "user_id", userID, "role", role)
	return nil
}
