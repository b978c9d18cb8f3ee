package review

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/list", func(c *fiber.Ctx) error {
		reviews, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(reviews)
	})

	r.Post("/getByRoute", func(c *fiber.Ctx) error {
		var body struct {
			RouteID string `json:"routeID"`
		}
		if err := c.BodyParser(&body); err != nil || body.RouteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "routeID required")
		}
		reviews, err := svc.ByTrail(c.Context(), body.RouteID)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(reviews)
	})

	r.Post("/create", authMiddleware, func(c *fiber.Ctx) error {
		var req Review
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		created, err := svc.Create(c.Context(), req)
		if errors.Is(err, ErrValidation) {
			return fiber.NewError(fiber.StatusBadRequest, "userID, routeID and rating 1-5 required")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})
}
