package waypoint

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Name        string  `json:"name"`
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Description string  `json:"description"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		wp, err := svc.Create(c.Context(), Waypoint{
			OwnerID:     userID(c),
			Name:        req.Name,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			Description: req.Description,
			CreatedBy:   userEmail(c),
		})
		if err != nil {
			if err.Error() == msgNameRequired {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(wp)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		waypoints, err := svc.ListAll(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if waypoints == nil {
			waypoints = []Waypoint{}
		}
		return c.JSON(waypoints)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		wp, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}
		return c.JSON(wp)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var patch Patch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		res, err := svc.Update(c.Context(), c.Params("id"), userID(c), patch)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(resultStatus(res)).JSON(res)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		res, err := svc.Remove(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(resultStatus(res)).JSON(res)
	})
}

func resultStatus(res Result) int {
	if res.Success {
		return fiber.StatusOK
	}
	switch res.Message {
	case msgNotFound:
		return fiber.StatusNotFound
	case msgForbiddenEdit, msgForbiddenDelete:
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

func userEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}
