package checkin

import "time"

type CheckIn struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	WaypointID string    `json:"waypoint_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Response echoes the check-in outcome: points awarded to the user and the
// waypoint's running visit count.
type Response struct {
	CheckIn CheckIn `json:"checkin"`
	Points  int     `json:"points"`
	Visits  int     `json:"visits"`
}

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Points int    `json:"points"`
}
