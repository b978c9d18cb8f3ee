package server

import (
	"github.com/Slowiczeq/Tatra-Guide/internal/auth"
	"github.com/Slowiczeq/Tatra-Guide/internal/challenge"
	"github.com/Slowiczeq/Tatra-Guide/internal/config"
	"github.com/Slowiczeq/Tatra-Guide/internal/profile"
	"github.com/Slowiczeq/Tatra-Guide/internal/review"
	"github.com/Slowiczeq/Tatra-Guide/internal/trail"
	"github.com/Slowiczeq/Tatra-Guide/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	trailSvc := trail.NewService(s.DB, s.Redis, s.Cfg.TrailCacheTTL)
	reviewSvc := review.NewService(s.DB)
	challengeSvc := challenge.NewService(s.DB)
	tripSvc := trip.NewService(s.DB)
	profileSvc := profile.NewService(tripSvc, challengeSvc, trailSvc, reviewSvc)

	api := s.App.Group("/api")
	auth.RegisterRoutes(api.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	trail.RegisterRoutes(api.Group("/hiking-trails"), api.Group("/trails"), trailSvc, jwtMiddleware)
	review.RegisterRoutes(api.Group("/reviews"), reviewSvc, jwtMiddleware)
	challenge.RegisterRoutes(api.Group("/challenges"), challengeSvc, jwtMiddleware)
	trip.RegisterRoutes(api.Group("/trip"), tripSvc, jwtMiddleware)
	profile.RegisterRoutes(api.Group("/user-info"), profileSvc, jwtMiddleware)
}
