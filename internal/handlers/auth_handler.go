package handlers

import (
	"taskhub/internal/database"
	"taskhub/internal/errs"
	"taskhub/internal/middleware"
	"taskhub/internal/models"
	"taskhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *database.Provider
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *database.Provider) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the token endpoint and /users/me. It must run before the
// user routes so that "me" is not taken for an id.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/token", h.HandleLogin)
	router.Get("/users/me", middleware.AuthRequired(h.authService), h.HandleMe)
}

// LoginRequest is the password-grant form body.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleLogin exchanges a username and password for a bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	var token string
	err := h.sessions.WithSession(c.UserContext(), func(s *database.Session) (err error) {
		token, err = h.authService.Login(s, req.Username, req.Password)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// HandleMe returns the account the bearer token was issued to.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return errs.Auth("Not authenticated")
	}

	var out models.UserPublic
	err := h.sessions.WithSession(c.UserContext(), func(s *database.Session) error {
		user, err := h.authService.CurrentUser(s, claims)
		if err != nil {
			return err
		}
		out = user.Public()
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}
