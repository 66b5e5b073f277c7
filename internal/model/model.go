// Package model defines the wire-level entities exchanged with the
// CampShare backend. All structs mirror the server's JSON shapes; the
// client reads them, it never mutates them locally.
package model

import "time"

// RelationshipStatus is computed server-side per search result, relative
// to the querying user.
type RelationshipStatus string

const (
	RelationshipNone            RelationshipStatus = "none"
	RelationshipFriends         RelationshipStatus = "friends"
	RelationshipRequestSent     RelationshipStatus = "request_sent"
	RelationshipRequestReceived RelationshipStatus = "request_received"
)

// Profile is the authenticated user's account snapshot, fetched once per
// session.
type Profile struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Credentials is a login form payload (sent form-encoded, not JSON).
type Credentials struct {
	Username string
	Password string
}

// Registration creates a new account.
type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// TokenResponse is the login reply.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Campground is read-only reference data; the client only searches and
// selects it. Amenities arrive as a JSON list serialized into a string.
type Campground struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Amenities    string    `json:"amenities"`
	MaxCapacity  *int      `json:"max_capacity"`
	Electricity  *bool     `json:"has_electricity"`
	Water        *bool     `json:"has_water"`
	Showers      *bool     `json:"has_showers"`
	WiFi         *bool     `json:"has_wifi"`
	PetFriendly  *bool     `json:"pet_friendly"`
	RVFriendly   *bool     `json:"rv_friendly"`
	TentFriendly *bool     `json:"tent_friendly"`
	ExternalID   string    `json:"external_id"`
	SourceAPI    string    `json:"source_api"`
	CreatedAt    time.Time `json:"created_at"`
}

// Trip is a logged camping trip owned by its creating user.
// Dates are calendar dates (YYYY-MM-DD), not timestamps.
type Trip struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	Notes             *string    `json:"notes"`
	WeatherConditions *string    `json:"weather_conditions"`
	GroupSize         int        `json:"group_size"`
	UserID            int64      `json:"user_id"`
	CampgroundID      int64      `json:"campground_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// NewTrip is the create-trip request body: a Trip minus the server-owned
// id/user/timestamp fields.
type NewTrip struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Notes             *string `json:"trip_notes"`
	WeatherConditions *string `json:"weather_conditions"`
	GroupSize         int     `json:"group_size"`
	CampgroundID      int64   `json:"campground_id"`
}

// TripPatch carries partial updates for an existing trip. Nil fields are
// omitted from the request body.
type TripPatch struct {
	Title             *string `json:"title,omitempty"`
	Description       *string `json:"description,omitempty"`
	StartDate         *string `json:"start_date,omitempty"`
	EndDate           *string `json:"end_date,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	WeatherConditions *string `json:"weather_conditions,omitempty"`
	GroupSize         *int    `json:"group_size,omitempty"`
}

// TripUser is the denormalized trip-owner summary inside TripWithDetails.
type TripUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// TripCampground is the denormalized campground summary inside
// TripWithDetails.
type TripCampground struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Amenities   string  `json:"amenities"`
}

// TripWithDetails is the map-display projection of a trip joined with its
// owner and campground. Read-only; never written back.
type TripWithDetails struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	StartDate         string         `json:"start_date"`
	EndDate           string         `json:"end_date"`
	Notes             *string        `json:"notes"`
	WeatherConditions *string        `json:"weather_conditions"`
	GroupSize         int            `json:"group_size"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         *time.Time     `json:"updated_at"`
	IsOwnTrip         bool           `json:"is_own_trip"`
	User              TripUser       `json:"user"`
	Campground        TripCampground `json:"campground"`
}

// Friend is an accepted relationship edge seen from the current user.
type Friend struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	FriendID       int64     `json:"friend_id"`
	IsAccepted     bool      `json:"is_accepted"`
	CreatedAt      time.Time `json:"created_at"`
	FriendUsername string    `json:"friend_username"`
	FriendFullName string    `json:"friend_full_name"`
}

// FriendRequest is a pending edge seen from the receiving side; the
// sender_* fields identify who asked.
type FriendRequest struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	FriendID       int64     `json:"friend_id"`
	IsAccepted     bool      `json:"is_accepted"`
	CreatedAt      time.Time `json:"created_at"`
	SenderUsername string    `json:"sender_username"`
	SenderFullName string    `json:"sender_full_name"`
}

// UserSearchResult is one row of a user search, with the relationship
// already resolved relative to the searcher.
type UserSearchResult struct {
	ID                 int64              `json:"id"`
	Username           string             `json:"username"`
	FullName           string             `json:"full_name"`
	RelationshipStatus RelationshipStatus `json:"relationship_status"`
}

// SendRequestResponse acknowledges a sent friend request.
type SendRequestResponse struct {
	Message         string `json:"message"`
	FriendRequestID int64  `json:"friend_request_id"`
}

// MessageResponse is the generic acknowledgement body for friend
// mutations (respond, remove).
type MessageResponse struct {
	Message string `json:"message"`
}
