package models

import "time"

// Event is a public listing users can register for.
type Event struct {
	ID          string
	Title       string
	Description string
	Category    string
	Date        time.Time
	Time        string
	Location    string
	Organizer   string
	Price       float64
	ImageURL    string
	CreatedAt   time.Time
}

// EventFilter narrows an event listing. Zero values disable a criterion.
type EventFilter struct {
	// Category is matched exactly.
	Category string
	// Search is a case-insensitive substring of the title.
	Search string
	// From keeps events dated on or after it.
	From time.Time
	// Page is 1-based.
	Page  int
	Limit int
}

// Offset returns the row offset of the filter's page.
func (f EventFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// Registration links a user to an event. Event and Profile are populated
// by listing queries only.
type Registration struct {
	ID        string
	UserID    string
	EventID   string
	CreatedAt time.Time
	Event     *Event
	Profile   *Profile
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalEvents        int64
	UpcomingEvents     int64
	TotalUsers         int64
	TotalRegistrations int64
}
