package utils

import (
	"encoding/json"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseWithPayload(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return ErrorResponseWithPayload(c, "Invalid input", fiber.StatusBadRequest, "validation", map[string]interface{}{
			"field":  "name",
			"status": "ignored",
		})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom?x=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid input", body["message"])
	assert.Equal(t, float64(400), body["status"])
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "/boom?x=1", body["url"])
	assert.Equal(t, "validation", body["type"])
	assert.Equal(t, "name", body["field"])
}

func TestMessageAndListResponses(t *testing.T) {
	app := fiber.New()
	app.Post("/things", func(c *fiber.Ctx) error {
		return MessageResponse(c, fiber.StatusCreated, "Thing created successfully", "thing", fiber.Map{"id": 1})
	})
	app.Delete("/things", func(c *fiber.Ctx) error {
		return MessageResponse(c, fiber.StatusOK, "Thing deleted successfully", "", nil)
	})
	app.Get("/things", func(c *fiber.Ctx) error {
		return ListResponse(c, "things", []int{1, 2})
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/things", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Thing created successfully", created["message"])
	assert.NotNil(t, created["thing"])

	resp, err = app.Test(httptest.NewRequest("DELETE", "/things", nil))
	require.NoError(t, err)
	var deleted map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	assert.Len(t, deleted, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/things", nil))
	require.NoError(t, err)
	var list map[string][]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, []int{1, 2}, list["things"])
}

func TestPingService(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	assert.NoError(t, PingService(addr, time.Second))

	ln.Close()
	assert.Error(t, PingService(addr, 200*time.Millisecond))
	assert.Error(t, PingService("no-port", time.Second))
}
