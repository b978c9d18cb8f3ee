package challenge

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/list", func(c *fiber.Ctx) error {
		catalog, err := svc.Catalog(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(catalog)
	})

	r.Post("/user", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"userID"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userID required")
		}
		enrollments, err := svc.OwnerEnrollments(c.Context(), body.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(enrollments)
	})

	r.Post("/start", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID      string `json:"userID"`
			ChallengeID string `json:"challengeID"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.ChallengeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userID and challengeID required")
		}
		enrollment, err := svc.Enroll(c.Context(), body.UserID, body.ChallengeID)
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "challenge not found")
		case errors.Is(err, ErrEnrolled):
			return fiber.NewError(fiber.StatusConflict, "already enrolled")
		case err != nil:
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(enrollment)
	})
}
