package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const maxPageSize = 50

// today is a seam for tests.
var today = func() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type EventService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *EventService {
	return &EventService{db: db, repomanager: m, logger: logger.With("module", "events")}
}

// List returns one page of events. Page defaults to 1 and limit to
// common.DefaultPageSize.
func (s *EventService) List(ctx context.Context, f models.EventFilter) ([]*models.Event, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = common.DefaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	f.Search = strings.TrimSpace(f.Search)

	list, err := s.repomanager.Events(s.db).List(ctx, f)
	if err != nil {
		s.logger.Error(ctx, "event list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	e, err := s.repomanager.Events(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "event lookup failed", "event_id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return e, nil
}

func validateEvent(e *models.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	switch {
	case e.Title == "":
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	case e.Date.IsZero():
		return fmt.Errorf("%w: date is required", common.ErrorValidation)
	case e.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", common.ErrorValidation)
	case e.ImageURL != "" && !common.IsValidImageURL(e.ImageURL):
		return fmt.Errorf("%w: invalid image URL, use a .jpg, .jpeg, .png or .webp link", common.ErrorValidation)
	}
	return nil
}

// Create stores a new event under a fresh id. Admin only.
func (s *EventService) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	if err := validateEvent(e); err != nil {
		return nil, err
	}
	e.ID = uuid.NewString()

	created, err := s.repomanager.Events(s.db).Create(ctx, e)
	if err != nil {
		s.logger.Error(ctx, "event create failed", "error", err)
		return nil, common.ErrorInternal
	}
	s.logger.Info(ctx, "event created", "event_id", created.ID)
	return created, nil
}

// Update replaces every field of an existing event. Admin only.
func (s *EventService) Update(ctx context.Context, e *models.Event) (*models.Event, error) {
	if _, err := uuid.Parse(e.ID); err != nil {
		return nil, common.ErrorNotFound
	}
	if err := validateEvent(e); err != nil {
		return nil, err
	}
	updated, err := s.repomanager.Events(s.db).Update(ctx, e)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "event update failed", "event_id", e.ID, "error", err)
		return nil, common.ErrorInternal
	}
	return updated, nil
}

// Delete removes an event together with its registrations. Admin only.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Events(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		s.logger.Error(ctx, "event delete failed", "event_id", id, "error", err)
		return common.ErrorInternal
	}
	s.logger.Info(ctx, "event deleted", "event_id", id)
	return nil
}

// Stats gathers the admin dashboard counters.
func (s *EventService) Stats(ctx context.Context) (*models.Stats, error) {
	var (
		st  models.Stats
		err error
	)
	events := s.repomanager.Events(s.db)

	if st.TotalEvents, err = events.Count(ctx, time.Time{}); err != nil {
		return nil, s.statsError(ctx, err)
	}
	if st.UpcomingEvents, err = events.Count(ctx, today()); err != nil {
		return nil, s.statsError(ctx, err)
	}
	if st.TotalUsers, err = s.repomanager.Users(s.db).Count(ctx); err != nil {
		return nil, s.statsError(ctx, err)
	}
	if st.TotalRegistrations, err = s.repomanager.Registrations(s.db).Count(ctx); err != nil {
		return nil, s.statsError(ctx, err)
	}
	return &st, nil
}

func (s *EventService) statsError(ctx context.Context, err error) error {
	s.logger.Error(ctx, "stats query failed", "error", err)
	return common.ErrorInternal
}
