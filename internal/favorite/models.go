package favorite

import "time"

type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	WaypointID string    `json:"waypoint_id"`
	CreatedAt  time.Time `json:"created_at"`
}
