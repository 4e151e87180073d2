package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const contextRequestIDKey = "request_id"

// RequestIDMiddleware keeps an inbound X-Request-ID or assigns a new one and
// echoes it on the response.
func RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: contextRequestIDKey,
	})
}

func currentRequestID(c *fiber.Ctx) string {
	requestID, _ := c.Locals(contextRequestIDKey).(string)
	if requestID == "" {
		return "-"
	}
	return requestID
}
