package favorite

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			WaypointID string `json:"waypoint_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.WaypointID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "waypoint_id required")
		}
		fav, err := svc.Add(c.Context(), userID(c), body.WaypointID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fav)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		favorites, err := svc.ListByUser(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if favorites == nil {
			favorites = []Favorite{}
		}
		return c.JSON(favorites)
	})

	r.Delete("/:waypointID", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Remove(c.Context(), userID(c), c.Params("waypointID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
