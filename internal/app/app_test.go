package app_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/internal/app"
	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/database/dbtest"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig(origins ...string) *config.Config {
	return &config.Config{
		AppName:          "Task Management API",
		AppVersion:       "1.0.0",
		AppPort:          ":0",
		LogLevel:         "info",
		DatabaseURL:      "sqlite:///:memory:",
		SecretKey:        "test_jwt_secret",
		AccessTokenTTL:   30 * time.Minute,
		BcryptCost:       bcrypt.MinCost,
		CORSAllowOrigins: origins,
	}
}

func newApp(t *testing.T, cfg *config.Config) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t)
	application, err := app.New(app.Deps{Config: cfg, Log: zerolog.Nop(), DB: db})
	require.NoError(t, err)
	return application, db
}

func getJSON(t *testing.T, application *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := application.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestWelcomeAndHealth(t *testing.T) {
	application, db := newApp(t, testConfig())

	status, body := getJSON(t, application, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Welcome to Task Management API", body["message"])

	status, body = getJSON(t, application, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "disabled", body["events"])

	require.NoError(t, database.Close(db))
	status, body = getJSON(t, application, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])
}

func TestMeIsNotAnID(t *testing.T) {
	application, _ := newApp(t, testConfig())

	status, body := getJSON(t, application, "/users/me")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not authenticated", body["message"])
}

func TestRequestIDAndCORS(t *testing.T) {
	application, _ := newApp(t, testConfig("http://localhost:3000"))

	req := httptest.NewRequest(http.MethodOptions, "/items/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := application.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	resp, err = application.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestWildcardOriginDropsCredentials(t *testing.T) {
	application, _ := newApp(t, testConfig("*"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	resp, err := application.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestServerStartupAndShutdown(t *testing.T) {
	application, _ := newApp(t, testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- application.Listener(ln) }()

	url := fmt.Sprintf("http://%s/health", ln.Addr().String())
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"status":"healthy"`)

	require.NoError(t, application.Shutdown())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
