package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"backend-wayfinder/internal/waypoint"
)

// Pin colors: the user's own waypoints render blue, everyone else's red.
const (
	PinColorOwn   = "blue"
	PinColorOther = "red"
)

var ErrNameRequired = errors.New("waypoint name is required")

// Repository is the slice of the backend client the controller depends on.
type Repository interface {
	ListWaypoints(ctx context.Context) ([]waypoint.Waypoint, error)
	CreateWaypoint(ctx context.Context, name string, lat, lng float64, description string) (waypoint.Waypoint, error)
	UpdateWaypoint(ctx context.Context, id string, patch waypoint.Patch) (waypoint.Result, error)
	DeleteWaypoint(ctx context.Context, id string) (waypoint.Result, error)
}

// Controller holds the in-memory waypoint collection. Every successful
// mutation is followed by a full refetch; there are no optimistic updates.
type Controller struct {
	repo          Repository
	currentUserID func() string

	mu        sync.RWMutex
	waypoints []waypoint.Waypoint
	selected  *waypoint.Waypoint
}

func NewController(repo Repository, currentUserID func() string) *Controller {
	return &Controller{
		repo:          repo,
		currentUserID: currentUserID,
	}
}

// Reload replaces the whole collection from the repository.
func (c *Controller) Reload(ctx context.Context) error {
	waypoints, err := c.repo.ListWaypoints(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.waypoints = waypoints
	c.mu.Unlock()
	return nil
}

func (c *Controller) Waypoints() []waypoint.Waypoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]waypoint.Waypoint, len(c.waypoints))
	copy(out, c.waypoints)
	return out
}

func (c *Controller) Select(w *waypoint.Waypoint) {
	c.mu.Lock()
	c.selected = w
	c.mu.Unlock()
}

func (c *Controller) Selected() *waypoint.Waypoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// Add creates a waypoint at the tapped coordinate. Blank names never reach
// the repository.
func (c *Controller) Add(ctx context.Context, name string, lat, lng float64, description string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	_, err := c.repo.CreateWaypoint(ctx, strings.TrimSpace(name), lat, lng, strings.TrimSpace(description))
	if err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Update edits name/description of an existing waypoint and refetches on
// success. The server answers with a Result the caller can show verbatim.
func (c *Controller) Update(ctx context.Context, id, name, description string) (waypoint.Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return waypoint.Result{}, ErrNameRequired
	}
	description = strings.TrimSpace(description)

	res, err := c.repo.UpdateWaypoint(ctx, id, waypoint.Patch{Name: &name, Description: &description})
	if err != nil {
		return waypoint.Result{}, err
	}
	if res.Success {
		if err := c.Reload(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Delete removes a waypoint and refetches on success.
func (c *Controller) Delete(ctx context.Context, id string) (waypoint.Result, error) {
	res, err := c.repo.DeleteWaypoint(ctx, id)
	if err != nil {
		return waypoint.Result{}, err
	}
	if res.Success {
		c.mu.Lock()
		if c.selected != nil && c.selected.ID == id {
			c.selected = nil
		}
		c.mu.Unlock()
		if err := c.Reload(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// DeleteWithConfirm prompts before deleting. When the user declines, the
// repository is never invoked.
func (c *Controller) DeleteWithConfirm(ctx context.Context, w waypoint.Waypoint, confirm func(title, message string) bool) (waypoint.Result, error) {
	message := fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", w.Name)
	if !confirm("Delete Waypoint", message) {
		return waypoint.Result{Success: false, Message: "delete cancelled"}, nil
	}
	return c.Delete(ctx, w.ID)
}

// PinColor returns the marker color for a waypoint based on ownership.
func (c *Controller) PinColor(w waypoint.Waypoint) string {
	userID := c.currentUserID()
	if userID == "" {
		return PinColorOther
	}
	if w.OwnerID == userID {
		return PinColorOwn
	}
	return PinColorOther
}
