package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP resolves the caller's address, preferring proxy headers over the
// socket peer: first entry of X-Forwarded-For, then X-Real-IP, then the
// connection's remote address.
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return c.IP()
}
