package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *RegistrationService {
	return &RegistrationService{db: db, repomanager: m, logger: logger.With("module", "registrations")}
}

// Register signs userID up for eventID.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID string) (*models.Registration, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, common.ErrorNotFound
	}
	event, err := s.repomanager.Events(s.db).Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	reg, err := s.repomanager.Registrations(s.db).Create(ctx, &models.Registration{
		ID:      uuid.NewString(),
		UserID:  userID,
		EventID: eventID,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.logger.Error(ctx, "registration failed", "event_id", eventID, "error", err)
		return nil, common.ErrorInternal
	}
	reg.Event = event
	return reg, nil
}

// Cancel removes the registration of userID for eventID.
func (s *RegistrationService) Cancel(ctx context.Context, userID, eventID string) error {
	if _, err := uuid.Parse(eventID); err != nil {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Registrations(s.db).Delete(ctx, userID, eventID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		s.logger.Error(ctx, "cancel registration failed", "event_id", eventID, "error", err)
		return common.ErrorInternal
	}
	return nil
}

// ListMine returns the caller's registrations with their events.
func (s *RegistrationService) ListMine(ctx context.Context, userID string) ([]*models.Registration, error) {
	list, err := s.repomanager.Registrations(s.db).ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "list registrations failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

// ListForEvent returns who registered for eventID. Admin only.
func (s *RegistrationService) ListForEvent(ctx context.Context, eventID string) ([]*models.Registration, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, common.ErrorNotFound
	}
	list, err := s.repomanager.Registrations(s.db).ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error(ctx, "list event registrations failed", "event_id", eventID, "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}
