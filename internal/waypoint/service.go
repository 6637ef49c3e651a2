package waypoint

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"backend-wayfinder/internal/db"
	"backend-wayfinder/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	msgNotFound        = "waypoint not found"
	msgForbiddenEdit   = "you can only edit your own waypoints"
	msgForbiddenDelete = "you can only delete your own waypoints"
	msgNameRequired    = "name is required"
	msgUpdated         = "waypoint updated"
	msgDeleted         = "waypoint deleted"
)

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(q db.Querier, hub *stream.Hub) *Service {
	return &Service{db: q, hub: hub}
}

func (s *Service) Create(ctx context.Context, input Waypoint) (Waypoint, error) {
	if input.OwnerID == "" {
		return Waypoint{}, errors.New("owner required")
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return Waypoint{}, errors.New(msgNameRequired)
	}

	input.ID = uuid.NewString()
	input.Description = strings.TrimSpace(input.Description)
	row := s.db.QueryRow(ctx, `
		INSERT INTO waypoints (id, user_id, name, latitude, longitude, description, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.OwnerID, input.Name, input.Latitude, input.Longitude, input.Description, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Waypoint{}, err
	}

	s.publish(EventCreated, input)
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Waypoint, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, latitude, longitude, description, created_by, visits, created_at, updated_at
		FROM waypoints WHERE id=$1
	`, id)
	var wp Waypoint
	if err := row.Scan(&wp.ID, &wp.OwnerID, &wp.Name, &wp.Latitude, &wp.Longitude, &wp.Description, &wp.CreatedBy, &wp.Visits, &wp.CreatedAt, &wp.UpdatedAt); err != nil {
		return Waypoint{}, err
	}
	return wp, nil
}

// ListAll fetches the whole collection and orders it newest-first in memory.
// There is no filtering or pagination; cost grows with the global waypoint
// count.
func (s *Service) ListAll(ctx context.Context) ([]Waypoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, latitude, longitude, description, created_by, visits, created_at, updated_at
		FROM waypoints
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waypoints []Waypoint
	for rows.Next() {
		var wp Waypoint
		if err := rows.Scan(&wp.ID, &wp.OwnerID, &wp.Name, &wp.Latitude, &wp.Longitude, &wp.Description, &wp.CreatedBy, &wp.Visits, &wp.CreatedAt, &wp.UpdatedAt); err != nil {
			return nil, err
		}
		waypoints = append(waypoints, wp)
	}

	sort.Slice(waypoints, func(i, j int) bool {
		return waypoints[i].CreatedAt.After(waypoints[j].CreatedAt)
	})
	return waypoints, nil
}

// Update applies name/description changes after an ownership check. The
// read-check-write sequence is not atomic; concurrent owner updates are
// last-write-wins.
func (s *Service) Update(ctx context.Context, id, requesterID string, patch Patch) (Result, error) {
	wp, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Result{Success: false, Message: msgNotFound}, nil
		}
		return Result{}, err
	}
	if wp.OwnerID != requesterID {
		return Result{Success: false, Message: msgForbiddenEdit}, nil
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return Result{Success: false, Message: msgNameRequired}, nil
		}
		wp.Name = name
	}
	if patch.Description != nil {
		wp.Description = strings.TrimSpace(*patch.Description)
	}

	row := s.db.QueryRow(ctx, `
		UPDATE waypoints
		SET name=$2, description=$3, updated_at=now()
		WHERE id=$1
		RETURNING updated_at
	`, wp.ID, wp.Name, wp.Description)
	if err := row.Scan(&wp.UpdatedAt); err != nil {
		return Result{}, err
	}

	s.publish(EventUpdated, wp)
	return Result{Success: true, Message: msgUpdated}, nil
}

// Remove hard-deletes a waypoint after the same ownership check as Update.
func (s *Service) Remove(ctx context.Context, id, requesterID string) (Result, error) {
	wp, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Result{Success: false, Message: msgNotFound}, nil
		}
		return Result{}, err
	}
	if wp.OwnerID != requesterID {
		return Result{Success: false, Message: msgForbiddenDelete}, nil
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM waypoints WHERE id=$1`, id); err != nil {
		return Result{}, err
	}

	s.publish(EventDeleted, wp)
	return Result{Success: true, Message: msgDeleted}, nil
}

func (s *Service) publish(eventType string, wp Waypoint) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(Event{Type: eventType, Waypoint: wp})
	s.hub.Broadcast(stream.FeedTopic, payload)
}
