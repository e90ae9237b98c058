package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/client/client"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
)

// EventService covers browsing events, registering for them and the admin
// event management screens.
type EventService interface {
	List(ctx context.Context, f models.EventFilter) ([]*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, e *models.Event, image string) (*models.Event, error)
	Update(ctx context.Context, e *models.Event, image string) (*models.Event, error)
	Delete(ctx context.Context, id string) error

	Join(ctx context.Context, eventID string) (*models.Registration, error)
	Leave(ctx context.Context, eventID string) error
	MyRegistrations(ctx context.Context) ([]*models.Registration, error)
	Attendees(ctx context.Context, eventID string) ([]*models.Registration, error)

	Stats(ctx context.Context) (*models.Stats, error)
	UploadImage(ctx context.Context, path string) (*models.ImageUpload, error)
}

type eventService struct {
	client   client.Client
	pageSize int
}

// NewEventService builds an EventService listing pageSize events per page.
func NewEventService(client client.Client, pageSize int) EventService {
	if pageSize <= 0 {
		pageSize = common.DefaultPageSize
	}
	return &eventService{client: client, pageSize: pageSize}
}

func (s *eventService) List(ctx context.Context, f models.EventFilter) ([]*models.Event, error) {
	if f.Limit <= 0 {
		f.Limit = s.pageSize
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	events, err := s.client.ListEvents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return events, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	e, err := s.client.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return e, nil
}

// isURL reports whether image names a remote picture rather than a local
// file to upload.
func isURL(image string) bool {
	lower := strings.ToLower(image)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// prepare validates e and resolves image: an image URL is used as is, a
// local file is uploaded first and its public URL becomes the event image.
func (s *eventService) prepare(ctx context.Context, e *models.Event, image string) error {
	if err := validateEvent(e); err != nil {
		return err
	}

	switch {
	case image == "":
	case isURL(image):
		if !common.IsValidImageURL(image) {
			return fmt.Errorf("%w: image URL must point to a jpg, jpeg, png or webp file", common.ErrorValidation)
		}
		e.ImageURL = image
	default:
		upload, err := s.UploadImage(ctx, image)
		if err != nil {
			return err
		}
		e.ImageURL = upload.PublicURL
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, e *models.Event, image string) (*models.Event, error) {
	if err := s.prepare(ctx, e, image); err != nil {
		return nil, err
	}
	created, err := s.client.CreateEvent(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	return created, nil
}

// Update replaces every field of the event e.ID. An empty image keeps
// e.ImageURL.
func (s *eventService) Update(ctx context.Context, e *models.Event, image string) (*models.Event, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("%w: event id is required", common.ErrorValidation)
	}
	if err := s.prepare(ctx, e, image); err != nil {
		return nil, err
	}
	updated, err := s.client.UpdateEvent(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	return updated, nil
}

func validateEvent(e *models.Event) error {
	var missing []string
	if strings.TrimSpace(e.Title) == "" {
		missing = append(missing, "title")
	}
	if e.Date.IsZero() {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(e.Location) == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", common.ErrorValidation, strings.Join(missing, ", "))
	}
	if e.Category != "" && !slices.Contains(common.Categories, e.Category) {
		return fmt.Errorf("%w: unknown category %q", common.ErrorValidation, e.Category)
	}
	if e.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrorValidation)
	}
	return nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	return nil
}

func (s *eventService) Join(ctx context.Context, eventID string) (*models.Registration, error) {
	r, err := s.client.RegisterForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error registering for event: %w", err)
	}
	return r, nil
}

func (s *eventService) Leave(ctx context.Context, eventID string) error {
	if err := s.client.CancelRegistration(ctx, eventID); err != nil {
		return fmt.Errorf("error cancelling registration: %w", err)
	}
	return nil
}

func (s *eventService) MyRegistrations(ctx context.Context) ([]*models.Registration, error) {
	rs, err := s.client.ListMyRegistrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	return rs, nil
}

func (s *eventService) Attendees(ctx context.Context, eventID string) ([]*models.Registration, error) {
	rs, err := s.client.ListEventRegistrations(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendees: %w", err)
	}
	return rs, nil
}

func (s *eventService) Stats(ctx context.Context) (*models.Stats, error) {
	st, err := s.client.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving stats: %w", err)
	}
	return st, nil
}

func (s *eventService) UploadImage(ctx context.Context, path string) (*models.ImageUpload, error) {
	u, err := s.client.UploadImage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error uploading image: %w", err)
	}
	return u, nil
}
