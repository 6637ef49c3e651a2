package checkin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			WaypointID string  `json:"waypoint_id"`
			Latitude   float64 `json:"latitude"`
			Longitude  float64 `json:"longitude"`
		}
		if err := c.BodyParser(&body); err != nil || body.WaypointID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "waypoint_id required")
		}

		resp, err := svc.CheckIn(c.Context(), userID(c), body.WaypointID, body.Latitude, body.Longitude)
		if err != nil {
			switch {
			case errors.Is(err, ErrWaypointNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.Is(err, ErrTooFar):
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	})

	r.Get("/leaderboard", func(c *fiber.Ctx) error {
		entries, err := svc.Leaderboard(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if entries == nil {
			entries = []LeaderboardEntry{}
		}
		return c.JSON(entries)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		checkins, err := svc.History(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if checkins == nil {
			checkins = []CheckIn{}
		}
		return c.JSON(checkins)
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
