package trail

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the read-only catalog under one router and the
// per-user saved trails under another, mirroring the original API split.
func RegisterRoutes(catalog, saved fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	catalog.Get("/list", func(c *fiber.Ctx) error {
		trails, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(trails)
	})

	catalog.Get("/details/:id", func(c *fiber.Ctx) error {
		trail, err := svc.Detail(c.Context(), c.Params("id"))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "trail not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(trail)
	})

	saved.Post("/user-check", func(c *fiber.Ctx) error {
		var body struct {
			UserID  string `json:"userID"`
			RouteID string `json:"routeID"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.RouteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userID and routeID required")
		}
		isSaved, err := svc.IsSaved(c.Context(), body.UserID, body.RouteID)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(fiber.Map{"saved": isSaved})
	})

	saved.Post("/save", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID  string `json:"userID"`
			RouteID string `json:"routeID"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.RouteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userID and routeID required")
		}
		savedTrail, err := svc.Save(c.Context(), body.UserID, body.RouteID)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(savedTrail)
	})

	saved.Post("/delete", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID  string `json:"userID"`
			RouteID string `json:"routeID"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.RouteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userID and routeID required")
		}
		remaining, err := svc.Remove(c.Context(), body.UserID, body.RouteID)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(remaining)
	})

	saved.Post("/user-trails", func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"userID"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userID required")
		}
		savedTrails, err := svc.SavedByOwner(c.Context(), body.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(savedTrails)
	})
}
