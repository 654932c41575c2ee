package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/internal/errs"
	"taskhub/internal/middleware"
	"taskhub/internal/models"
	"taskhub/internal/repositories"
	"taskhub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupApp(t *testing.T) (*fiber.App, *services.AuthService) {
	t.Helper()
	authService, err := services.NewAuthService(repositories.NewGORMUserRepository(), services.NewHasher(bcrypt.MinCost), "secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if errs.Is(err, errs.KindAuth) {
				status = fiber.StatusUnauthorized
			}
			return c.Status(status).SendString(err.Error())
		},
	})
	app.Get("/private", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(claims.Subject)
	})
	return app, authService
}

func TestAuthRequired(t *testing.T) {
	app, authService := setupApp(t)
	token, err := authService.IssueToken(&models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
