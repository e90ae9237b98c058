package client

import (
	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

func fromAPIUser(u *api.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func fromAPISession(s *api.Session) *models.Session {
	if s == nil {
		return nil
	}
	return &models.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		User:         fromAPIUser(s.User),
	}
}

func fromAPIProfile(p *api.Profile) *models.Profile {
	if p == nil {
		return nil
	}
	return &models.Profile{
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

func fromAPIEvent(e *api.Event) *models.Event {
	if e == nil {
		return nil
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
		CreatedAt:   e.CreatedAt,
	}
}

func toAPIEvent(e *models.Event) *api.Event {
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
	}
}

func fromAPIRegistration(r *api.Registration) *models.Registration {
	return &models.Registration{
		ID:        r.ID,
		UserID:    r.UserID,
		EventID:   r.EventID,
		CreatedAt: r.CreatedAt,
		Event:     fromAPIEvent(r.Event),
		Profile:   fromAPIProfile(r.Profile),
	}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
