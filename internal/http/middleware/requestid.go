package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the header used to propagate request IDs end to end.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the context-locals key the request ID is stored
	// under. The request logger and the JSON error envelope both read it, so
	// a failed submission can be matched to its log lines.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an ID: the caller's X-Request-ID when
// present, a fresh UUID otherwise. The ID is stored in context locals and
// echoed on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
