package profile

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.BodyParser(&body); err != nil || body.ID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id required")
		}
		overview, err := svc.Overview(c.Context(), body.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(overview)
	})
}
