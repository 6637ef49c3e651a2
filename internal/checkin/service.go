package checkin

import (
	"context"
	"errors"

	"backend-wayfinder/internal/db"
	"backend-wayfinder/internal/shared/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// A check-in must be reported from within this distance of the waypoint.
	maxCheckInDistanceM = 500.0

	pointsPerCheckIn = 10
)

var (
	ErrWaypointNotFound = errors.New("waypoint not found")
	ErrTooFar           = errors.New("too far from waypoint to check in")
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// CheckIn records a visit, bumps the waypoint's visit counter and awards
// points to the visitor.
func (s *Service) CheckIn(ctx context.Context, userID, waypointID string, lat, lng float64) (Response, error) {
	var wpLat, wpLng float64
	err := s.db.QueryRow(ctx, `
		SELECT latitude, longitude FROM waypoints WHERE id=$1
	`, waypointID).Scan(&wpLat, &wpLng)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Response{}, ErrWaypointNotFound
		}
		return Response{}, err
	}

	if geo.HaversineKm(lat, lng, wpLat, wpLng)*1000 > maxCheckInDistanceM {
		return Response{}, ErrTooFar
	}

	ci := CheckIn{
		ID:         uuid.NewString(),
		UserID:     userID,
		WaypointID: waypointID,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO checkins (id, user_id, waypoint_id)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, ci.ID, ci.UserID, ci.WaypointID)
	if err := row.Scan(&ci.CreatedAt); err != nil {
		return Response{}, err
	}

	var visits int
	if err := s.db.QueryRow(ctx, `
		UPDATE waypoints SET visits = visits + 1 WHERE id=$1
		RETURNING visits
	`, waypointID).Scan(&visits); err != nil {
		return Response{}, err
	}

	var points int
	if err := s.db.QueryRow(ctx, `
		UPDATE users SET points = points + $2 WHERE id=$1
		RETURNING points
	`, userID, pointsPerCheckIn).Scan(&points); err != nil {
		return Response{}, err
	}

	return Response{CheckIn: ci, Points: points, Visits: visits}, nil
}

func (s *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, email, points FROM users
		ORDER BY points DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Email, &e.Points); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]CheckIn, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, waypoint_id, created_at
		FROM checkins WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []CheckIn
	for rows.Next() {
		var ci CheckIn
		if err := rows.Scan(&ci.ID, &ci.UserID, &ci.WaypointID, &ci.CreatedAt); err != nil {
			return nil, err
		}
		checkins = append(checkins, ci)
	}
	return checkins, nil
}
