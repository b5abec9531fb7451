package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/starwars-api/internal/config"
	"github.com/localnerve/starwars-api/internal/database"
	"github.com/localnerve/starwars-api/internal/handlers"
	"github.com/localnerve/starwars-api/internal/testutil"
	"github.com/localnerve/starwars-api/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:              "3000",
		CORSOrigins:       "*",
		RateLimitWindow:   time.Minute,
		DatabaseURL:       "sqlite:///:memory:",
		DBConnectionLimit: 1,
		LogLevel:          "error",
		LogFormat:         "text",
		BcryptCost:        bcrypt.MinCost,
	}
}

func setupServer(t *testing.T, cfg *config.Config) (*Server, *bytes.Buffer) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)
	log.SetFormatter(&logrus.JSONFormatter{})

	return New(cfg, db, log), &logs
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	srv, _ := setupServer(t, testConfig())

	resp := testutil.Do(t, srv.App, "GET", "/starships", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	body := testutil.JSONMap(t, resp)
	assert.Equal(t, "[404] Resource Not Found", body["message"])
	assert.Equal(t, "not_found", body["type"])
	assert.Equal(t, false, body["ok"])
}

func TestMiddlewareHeaders(t *testing.T) {
	srv, _ := setupServer(t, testConfig())

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Origin", "https://rebels.example")
	resp, err := srv.App.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, APIVersion, resp.Header.Get("X-Api-Version"))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "nosniff", resp.Header.Get(fiber.HeaderXContentTypeOptions))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := setupServer(t, testConfig())

	testutil.AssertStatus(t, testutil.Do(t, srv.App, "POST", "/planets", map[string]string{"name": "Naboo"}), http.StatusCreated)
	testutil.AssertStatus(t, testutil.Do(t, srv.App, "GET", "/planets/9", nil), http.StatusNotFound)

	resp := testutil.Do(t, srv.App, "GET", "/metrics", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, `starwars_records_created_total{entity="planet"} 1`)
	assert.Contains(t, text, `starwars_not_found_total{entity="planet"} 1`)
	assert.Contains(t, text, "http_requests_total")
}

func TestSeparateServersKeepSeparateMetrics(t *testing.T) {
	first, _ := setupServer(t, testConfig())
	second, _ := setupServer(t, testConfig())
	assert.NotSame(t, first.Metrics.Registry, second.Metrics.Registry)
}

func TestSwaggerDoc(t *testing.T) {
	srv, _ := setupServer(t, testConfig())

	resp := testutil.Do(t, srv.App, "GET", "/swagger/doc.json", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	doc := testutil.JSONMap(t, resp)
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/favorite-lists")
	assert.Contains(t, paths, "/users/{id}")
}

// Every API route must be described in docs/api, including the generic catalog routes
func TestSwaggerDocCoversRoutes(t *testing.T) {
	srv, _ := setupServer(t, testConfig())

	resp := testutil.Do(t, srv.App, "GET", "/swagger/doc.json", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	paths, ok := testutil.JSONMap(t, resp)["paths"].(map[string]interface{})
	require.True(t, ok)

	param := regexp.MustCompile(`:(\w+)`)
	for _, ep := range handlers.Endpoints(srv.App) {
		if strings.HasPrefix(ep.Path, "/swagger") || ep.Path == "/metrics" {
			continue
		}
		path := param.ReplaceAllString(ep.Path, "{$1}")
		ops, ok := paths[path].(map[string]interface{})
		if !assert.True(t, ok, "undocumented path %s", path) {
			continue
		}
		assert.Contains(t, ops, strings.ToLower(ep.Method), "undocumented %s %s", ep.Method, path)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 2
	srv, _ := setupServer(t, cfg)

	for i := 0; i < 2; i++ {
		testutil.AssertStatus(t, testutil.Do(t, srv.App, "GET", "/planets", nil), http.StatusOK)
	}
	resp := testutil.Do(t, srv.App, "GET", "/planets", nil)
	testutil.AssertStatus(t, resp, http.StatusTooManyRequests)
	assert.Equal(t, "rate_limit", testutil.JSONMap(t, resp)["type"])
}

func TestJSONAccessLog(t *testing.T) {
	cfg := testConfig()
	cfg.LogFormat = "json"
	srv, logs := setupServer(t, cfg)

	testutil.AssertStatus(t, testutil.Do(t, srv.App, "GET", "/vehicles/3", nil), http.StatusNotFound)

	assert.Contains(t, logs.String(), `"path":"/vehicles/3"`)
	assert.Contains(t, logs.String(), `"status":404`)
	assert.Contains(t, logs.String(), `"request_id"`)
}

func TestErrorHandler(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	app.Get("/api-error", func(c *fiber.Ctx) error {
		return types.NewAPIError(http.StatusConflict, "Record already exists", "conflict").
			WithPayload(map[string]interface{}{"field": "email"})
	})
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return fmt.Errorf("creating user: %w", types.NotFound("User not found"))
	})
	app.Get("/fiber-error", func(c *fiber.Ctx) error {
		return fiber.ErrMethodNotAllowed
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return errors.New("connection reset by peer")
	})

	resp := testutil.Do(t, app, "GET", "/api-error", nil)
	testutil.AssertStatus(t, resp, http.StatusConflict)
	body := testutil.JSONMap(t, resp)
	assert.Equal(t, "Record already exists", body["message"])
	assert.Equal(t, "conflict", body["type"])
	assert.Equal(t, "email", body["field"])

	resp = testutil.Do(t, app, "GET", "/wrapped", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "User not found", testutil.JSONMap(t, resp)["message"])

	resp = testutil.Do(t, app, "GET", "/fiber-error", nil)
	testutil.AssertStatus(t, resp, http.StatusMethodNotAllowed)

	resp = testutil.Do(t, app, "GET", "/internal", nil)
	testutil.AssertStatus(t, resp, http.StatusInternalServerError)
	assert.Equal(t, "Internal Server Error", testutil.JSONMap(t, resp)["message"])
}

func TestListenAndShutdown(t *testing.T) {
	srv, _ := setupServer(t, testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.App.Listener(ln) }()

	url := fmt.Sprintf("http://%s/", ln.Addr().String())
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.App.ShutdownWithTimeout(ShutdownTimeout))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
