package favorite

import (
	"context"

	"backend-wayfinder/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Add marks a waypoint as a favorite. Favoriting twice returns the existing row.
func (s *Service) Add(ctx context.Context, userID, waypointID string) (Favorite, error) {
	fav := Favorite{
		ID:         uuid.NewString(),
		UserID:     userID,
		WaypointID: waypointID,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO favorites (id, user_id, waypoint_id)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, waypoint_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, created_at
	`, fav.ID, fav.UserID, fav.WaypointID)
	if err := row.Scan(&fav.ID, &fav.CreatedAt); err != nil {
		return Favorite{}, err
	}
	return fav, nil
}

func (s *Service) Remove(ctx context.Context, userID, waypointID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM favorites WHERE user_id=$1 AND waypoint_id=$2
	`, userID, waypointID)
	return err
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, waypoint_id, created_at
		FROM favorites WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.WaypointID, &f.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, nil
}
