// Package app assembles the HTTP application from its parts.
package app

import (
	"slices"
	"strings"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/handlers"
	"taskhub/internal/repositories"
	"taskhub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps are the long-lived resources the app is built on.
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *gorm.DB
	// Events may be nil, in which case nothing is published.
	Events *services.Events
}

// New wires repositories, services and handlers into a Fiber app.
func New(d Deps) (*fiber.App, error) {
	cfg := d.Config
	sessions := database.NewProvider(d.DB)

	// --- Services ---
	hasher := services.NewHasher(cfg.BcryptCost)
	userRepo := repositories.NewGORMUserRepository()
	authService, err := services.NewAuthService(userRepo, hasher, cfg.SecretKey, cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	userService := services.NewUserService(userRepo, hasher, d.Events)
	itemService := services.NewItemService(repositories.NewGORMItemRepository(), d.Events)
	taskService := services.NewTaskService(repositories.NewGORMTaskRepository(), d.Events)

	// --- Fiber ---
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: handlers.ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: d.Log,
	}))
	app.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to " + cfg.AppName})
	})
	app.Get("/health", healthHandler(d))

	// /users/me has to be registered ahead of /users/:id.
	handlers.NewAuthHandler(authService, sessions).RegisterRoutes(app)
	handlers.NewUserHandler(userService, sessions).RegisterRoutes(app)
	handlers.NewItemHandler(itemService, sessions).RegisterRoutes(app)
	handlers.NewTaskHandler(taskService, sessions).RegisterRoutes(app)

	return app, nil
}

// corsConfig allows credentials only for an explicit origin list; browsers reject
// credentials with a wildcard origin.
func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return cors.Config{AllowOrigins: "*"}
	}
	return cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowCredentials: true,
	}
}

func healthHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.Ping(c.UserContext(), d.DB); err != nil {
			d.Log.Warn().Err(err).Msg("health check: database unreachable")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "unreachable",
			})
		}
		events := "disabled"
		if d.Events != nil {
			events = "enabled"
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"version":  d.Config.AppVersion,
			"database": "connected",
			"events":   events,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}
