package waypoint

import "time"

// Waypoint is a shared point of interest. Every authenticated user can read it;
// only the owner may edit name/description or delete it. Coordinates and
// ownership are fixed at creation.
type Waypoint struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"user_id"`
	Name        string     `json:"name"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Description string     `json:"description"`
	CreatedBy   string     `json:"created_by"`
	Visits      int        `json:"visits"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	// Reserved for group outings; not persisted yet.
	Attendees []string `json:"attendees,omitempty"`
}

// Patch carries the owner-editable fields. Nil leaves a field unchanged.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Result reports the outcome of an ownership-checked mutation. Transport
// failures travel separately as errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Event is broadcast on the live feed after a successful mutation.
type Event struct {
	Type     string   `json:"type"`
	Waypoint Waypoint `json:"waypoint"`
}

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)
