package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID middleware: propaga el X-Request-ID entrante o genera uno nuevo,
// y lo refleja en la respuesta para correlacionar logs.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals("request_id", reqID)
		c.Set(fiber.HeaderXRequestID, reqID)
		return c.Next()
	}
}

// GetRequestID devuelve el request id asignado por el middleware.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("request_id").(string); ok {
		return id
	}
	return ""
}
