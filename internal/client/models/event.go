package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is how event dates are typed and printed.
const DateLayout = "2006-01-02"

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

// PriceLabel renders the price, "Free" for zero.
func (e *Event) PriceLabel() string {
	if e.Price == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", e.Price)
}

type Registration struct {
	ID        string
	UserID    string
	EventID   string
	CreatedAt time.Time
	Event     *Event
	Profile   *Profile
}

type Stats struct {
	TotalEvents        int64
	UpcomingEvents     int64
	TotalUsers         int64
	TotalRegistrations int64
}

type ImageUpload struct {
	Key       string
	UploadURL string
	PublicURL string
}

// EventFilter narrows an event listing. Zero values mean "no filter".
type EventFilter struct {
	Category string
	Search   string
	From     time.Time
	Page     int
	Limit    int
}

var ErrIncorrectFilter = errors.New("filter must be a page number or name=value with name category, search or from")

// FilterFromArgs parses listing arguments such as
// "2 category=Workshop search=go from=2026-01-31".
func FilterFromArgs(args []string) (EventFilter, error) {
	f := EventFilter{Page: 1}
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 1 {
				return EventFilter{}, ErrIncorrectFilter
			}
			f.Page = n
			continue
		}

		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return EventFilter{}, ErrIncorrectFilter
		}
		switch name {
		case "category":
			f.Category = value
		case "search":
			f.Search = value
		case "from":
			d, err := time.Parse(DateLayout, value)
			if err != nil {
				return EventFilter{}, fmt.Errorf("%w: %v", ErrIncorrectFilter, err)
			}
			f.From = d
		default:
			return EventFilter{}, ErrIncorrectFilter
		}
	}
	return f, nil
}
