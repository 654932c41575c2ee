package handlers

import (
	"taskhub/internal/database"
	"taskhub/internal/models"
	"taskhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	service  *services.TaskService
	sessions *database.Provider
	validate *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service *services.TaskService, sessions *database.Provider) *TaskHandler {
	return &TaskHandler{
		service:  service,
		sessions: sessions,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the task routes with the Fiber app.
func (h *TaskHandler) RegisterRoutes(router fiber.Router) {
	taskRoutes := router.Group("/tasks")
	taskRoutes.Post("/", h.HandleCreateTask)
	taskRoutes.Get("/", h.HandleGetTasks)
	taskRoutes.Get("/:id", h.HandleGetTaskByID)
	taskRoutes.Patch("/:id", h.HandleUpdateTask)
	taskRoutes.Put("/:id", h.HandleUpdateTask)
	taskRoutes.Delete("/:id", h.HandleDeleteTask)
}

// HandleCreateTask creates a new task.
func (h *TaskHandler) HandleCreateTask(c *fiber.Ctx) error {
	var in models.TaskCreate
	if err := bindBody(c, h.validate, &in); err != nil {
		return err
	}

	var out *models.TaskPublic
	err := h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Create(s, in)
		return err
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HandleGetTasks lists tasks in insertion order.
func (h *TaskHandler) HandleGetTasks(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var out []models.TaskPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.List(s, page)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *TaskHandler) HandleGetTaskByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var out *models.TaskPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Get(s, id)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// HandleUpdateTask applies a partial update. PUT and PATCH behave the same.
func (h *TaskHandler) HandleUpdateTask(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch models.TaskUpdate
	if err := bindBody(c, h.validate, &patch); err != nil {
		return err
	}

	var out *models.TaskPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Update(s, id, patch)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *TaskHandler) HandleDeleteTask(c *fiber.Ctx) error {
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
