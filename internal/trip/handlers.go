package trip

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/new", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"userID"`
			Name   string `json:"name"`
			Trips  []Day  `json:"trips"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userID and name required")
		}
		trip, err := svc.CreateTrip(c.Context(), body.UserID, body.Name, body.Trips)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(trip)
	})

	r.Post("/getTrips", func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"userID"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userID required")
		}
		trips, err := svc.Trips(c.Context(), body.UserID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(trips)
	})

	r.Post("/getById", func(c *fiber.Ctx) error {
		var body struct {
			TripID string `json:"tripID"`
		}
		if err := c.BodyParser(&body); err != nil || body.TripID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tripID required")
		}
		trip, err := svc.TripByID(c.Context(), body.TripID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(trip)
	})

	r.Post("/startRoute", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			TripID     string `json:"tripID"`
			DayIndex   int    `json:"dayIndex"`
			RouteIndex int    `json:"routeIndex"`
		}
		if err := c.BodyParser(&body); err != nil || body.TripID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tripID required")
		}
		trip, err := svc.StartRoute(c.Context(), body.TripID, body.DayIndex, body.RouteIndex)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(trip)
	})

	r.Post("/endRoute", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			TripID     string     `json:"tripID"`
			UserID     string     `json:"userID"`
			DayIndex   int        `json:"dayIndex"`
			RouteIndex int        `json:"routeIndex"`
			UserTime   string     `json:"userTime"`
			TimeStart  *time.Time `json:"timeStart"`
			TimeEnd    *time.Time `json:"timeEnd"`
		}
		if err := c.BodyParser(&body); err != nil || body.TripID == "" || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tripID and userID required")
		}
		trip, err := svc.EndRoute(c.Context(), EndRouteInput{
			TripID:          body.TripID,
			OwnerID:         body.UserID,
			DayIndex:        body.DayIndex,
			RouteIndex:      body.RouteIndex,
			ElapsedUserTime: body.UserTime,
			TimeStart:       body.TimeStart,
			TimeEnd:         body.TimeEnd,
		})
		if err != nil {
			return httpError(err)
		}
		return c.JSON(trip)
	})

	r.Post("/update", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			TripID string `json:"tripID"`
			UserID string `json:"userID"`
			Name   string `json:"name"`
			Trips  []Day  `json:"trips"`
		}
		if err := c.BodyParser(&body); err != nil || body.TripID == "" || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tripID and userID required")
		}
		trip, err := svc.UpdateTrip(c.Context(), UpdateInput{
			TripID:  body.TripID,
			OwnerID: body.UserID,
			Name:    body.Name,
			Days:    body.Trips,
		})
		if err != nil {
			return httpError(err)
		}
		return c.JSON(trip)
	})

	r.Post("/delete", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			TripID string `json:"tripID"`
			UserID string `json:"userID"`
		}
		if err := c.BodyParser(&body); err != nil || body.TripID == "" || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tripID and userID required")
		}
		if err := svc.DeleteTrip(c.Context(), body.TripID, body.UserID); err != nil {
			return httpError(err)
		}
		return c.JSON(fiber.Map{"message": "Trip deleted successfully"})
	})
}

// httpError maps domain failures to response codes: rejected operations keep
// their meaning, everything else is a retryable storage failure.
func httpError(err error) *fiber.Error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "trip not found")
	case errors.Is(err, ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, "segment not in required state")
	case errors.Is(err, ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, "invalid trip data")
	default:
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
}
