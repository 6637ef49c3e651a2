package server

import (
	"backend-wayfinder/internal/auth"
	"backend-wayfinder/internal/checkin"
	"backend-wayfinder/internal/config"
	"backend-wayfinder/internal/favorite"
	"backend-wayfinder/internal/stream"
	"backend-wayfinder/internal/waypoint"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	waypoint.RegisterRoutes(s.App.Group("/waypoints"), waypoint.NewService(s.DB, s.Stream), jwtMiddleware)
	favorite.RegisterRoutes(s.App.Group("/favorites"), favorite.NewService(s.DB), jwtMiddleware)
	checkin.RegisterRoutes(s.App.Group("/checkins"), checkin.NewService(s.DB), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
