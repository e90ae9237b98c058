package grpc

import (
	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
)

func toAPIUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toAPISession(s *services.Session) *api.Session {
	return &api.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		User:         toAPIUser(s.User),
	}
}

func toAPIProfile(p *models.Profile) *api.Profile {
	if p == nil {
		return nil
	}
	return &api.Profile{
		ID:        p.ID,
		Email:     p.Email,
		Role:      p.Role,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Bio:       p.Bio,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toAPIEvent(e *models.Event) *api.Event {
	if e == nil {
		return nil
	}
	return &api.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Organizer:   e.Organizer,
		Price:       e.Price,
		ImageURL:    e.ImageURL,
		CreatedAt:   e.CreatedAt,
	}
}

func fromAPIEvent(e *api.Event) *models.Event {
	if e == nil {
		return &models.Event{}
	}
	return &models.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Organizer:   e.Organizer,
		Price:       e.Price,
		ImageURL:    e.ImageURL,
	}
}

func toAPIRegistration(r *models.Registration) *api.Registration {
	return &api.Registration{
		ID:        r.ID,
		UserID:    r.UserID,
		EventID:   r.EventID,
		CreatedAt: r.CreatedAt,
		Event:     toAPIEvent(r.Event),
		Profile:   toAPIProfile(r.Profile),
	}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
