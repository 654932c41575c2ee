package handlers

import (
	"taskhub/internal/database"
	"taskhub/internal/models"
	"taskhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for items.
type ItemHandler struct {
	service  *services.ItemService
	sessions *database.Provider
	validate *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService, sessions *database.Provider) *ItemHandler {
	return &ItemHandler{
		service:  service,
		sessions: sessions,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the item routes with the Fiber app.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
	itemRoutes.Patch("/:id", h.HandleUpdateItem)
	itemRoutes.Put("/:id", h.HandleUpdateItem)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleCreateItem creates a new item.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var in models.ItemCreate
	if err := bindBody(c, h.validate, &in); err != nil {
		return err
	}

	var out *models.ItemPublic
	err := h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Create(s, in)
		return err
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HandleGetItems lists items one page at a time.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	var out []models.ItemPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.List(s, page)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// HandleGetItemByID retrieves a single item by its ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var out *models.ItemPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Get(s, id)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// HandleUpdateItem applies a partial update. PUT and PATCH behave the same.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var patch models.ItemUpdate
	if err := bindBody(c, h.validate, &patch); err != nil {
		return err
	}

	var out *models.ItemPublic
	err = h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		out, err = h.service.Update(s, id, patch)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// HandleDeleteItem deletes an item.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
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
