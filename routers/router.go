package routers

import (
	"educa/config"
	"educa/database"
	"educa/middleware"
	apiRoutes "educa/routers/apiRoutes"
	authRoutes "educa/routers/authRoutes"
	courseRoutes "educa/routers/courseRoutes"
	"educa/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber app with every middleware and route mounted
func NewApp() *fiber.App {
	cfg := config.AppConfig

	app := fiber.New(fiber.Config{
		AppName:      "educa",
		Views:        views.Engine(),
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    32 << 20,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	if cfg.AppEnv != "test" {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	app.Use(middleware.BasicAuth())
	app.Use(middleware.CSRF())

	app.Use("/static", filesystem.New(filesystem.Config{Root: views.Static()}))

	// Uploaded item files of the local storage backend
	if cfg.StorageBackend == "" || cfg.StorageBackend == "local" {
		app.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := database.Database.Db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Database unavailable!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	apiRoutes.SetupAPIRoutes(app)

	return app
}
