package handlers

import (
	"taskhub/internal/database"
	"taskhub/internal/models"
	"taskhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service  *services.UserService
	sessions *database.Provider
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, sessions *database.Provider) *UserHandler {
	return &UserHandler{
		service:  service,
		sessions: sessions,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Patch("/:id", h.HandleUpdateUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleCreateUser registers a new account. The response never carries the password hash.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var in models.UserCreate
	if err := bindBody(c, h.validate, &in); err != nil {
		return err
	}

	var out *models.UserPublic
	err := h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Create(s, in)
		return err
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HandleGetUsers lists accounts.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var out []models.UserPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.List(s, page)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// HandleGetUserByID retrieves a single account by its ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var out *models.UserPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Get(s, id)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// HandleUpdateUser updates an account; a new password is hashed before storage.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch models.UserUpdate
	if err := bindBody(c, h.validate, &patch); err != nil {
		return err
	}

	var out *models.UserPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Update(s, id, patch)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// HandleDeleteUser deletes an account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) error {
		return h.service.Delete(s, id)
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}
