package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return ErrorResponseWithPayload(c, message, status, errorType, nil)
}

// ErrorResponseWithPayload sends a standard error response with extra fields merged in
func ErrorResponseWithPayload(c *fiber.Ctx, message string, status int, errorType string, payload map[string]interface{}) error {
	body := fiber.Map{}
	for k, v := range payload {
		body[k] = v
	}
	body["status"] = status
	body["message"] = message
	body["ok"] = false
	body["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	body["url"] = c.OriginalURL()
	if errorType != "" {
		body["type"] = errorType
	}
	return c.Status(status).JSON(body)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "not_found")
}

// MessageResponse sends a fixed success message, with the record under key when key is set
func MessageResponse(c *fiber.Ctx, status int, message, key string, record interface{}) error {
	body := fiber.Map{"message": message}
	if key != "" {
		body[key] = record
	}
	return c.Status(status).JSON(body)
}

// ListResponse sends a list wrapped in an object under key, e.g. {"planets": [...]}
func ListResponse(c *fiber.Ctx, key string, items interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{key: items})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// MessageResponseStruct defines the schema for mutation success responses
type MessageResponseStruct struct {
	Message string `json:"message"`
}
