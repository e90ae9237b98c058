// Package api is the wire contract between the EventHub CLI and the EventHub
// backend: message types, the gRPC service description, a client stub and
// the server registration helper. Messages are JSON encoded through a codec
// registered with grpc-go under the "json" content-subtype.
package api

import "time"

// User is the authenticated principal owned by the backend.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the application record attached 1:1 to a user.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is what sign-in and refresh hand out.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Organizer   string    `json:"organizer"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Registration links a user to an event. Event is filled when listing the
// caller's registrations, Profile when listing an event's attendees.
type Registration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
	Event     *Event    `json:"event,omitempty"`
	Profile   *Profile  `json:"profile,omitempty"`
}

type Stats struct {
	TotalEvents        int64 `json:"total_events"`
	UpcomingEvents     int64 `json:"upcoming_events"`
	TotalUsers         int64 `json:"total_users"`
	TotalRegistrations int64 `json:"total_registrations"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	User *User `json:"user"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Session *Session `json:"session"`
}

type RefreshSessionRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshSessionResponse struct {
	Session *Session `json:"session"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutResponse struct{}

type GetUserRequest struct{}

type GetUserResponse struct {
	User *User `json:"user"`
}

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

type GetProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
}

type UpdateProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type ListProfilesRequest struct {
	Search string `json:"search"`
}

type ListProfilesResponse struct {
	Profiles []*Profile `json:"profiles"`
}

type SetRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type SetRoleResponse struct {
	Profile *Profile `json:"profile"`
}

// ListEventsRequest filters are optional; Page is 1-based and Limit falls
// back to the default page size when zero.
type ListEventsRequest struct {
	Category string    `json:"category,omitempty"`
	Search   string    `json:"search,omitempty"`
	From     time.Time `json:"from,omitempty"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

type ListEventsResponse struct {
	Events []*Event `json:"events"`
}

type GetEventRequest struct {
	ID string `json:"id"`
}

type GetEventResponse struct {
	Event *Event `json:"event"`
}

type CreateEventRequest struct {
	Event *Event `json:"event"`
}

type CreateEventResponse struct {
	Event *Event `json:"event"`
}

type UpdateEventRequest struct {
	Event *Event `json:"event"`
}

type UpdateEventResponse struct {
	Event *Event `json:"event"`
}

type DeleteEventRequest struct {
	ID string `json:"id"`
}

type DeleteEventResponse struct{}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Stats *Stats `json:"stats"`
}

type RegisterForEventRequest struct {
	EventID string `json:"event_id"`
}

type RegisterForEventResponse struct {
	Registration *Registration `json:"registration"`
}

type CancelRegistrationRequest struct {
	EventID string `json:"event_id"`
}

type CancelRegistrationResponse struct{}

type ListMyRegistrationsRequest struct{}

type ListMyRegistrationsResponse struct {
	Registrations []*Registration `json:"registrations"`
}

type ListEventRegistrationsRequest struct {
	EventID string `json:"event_id"`
}

type ListEventRegistrationsResponse struct {
	Registrations []*Registration `json:"registrations"`
}

type CreateImageUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type CreateImageUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
