package utils

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a success JSON response. Extra fields from data are
// merged into the envelope next to "success" and "message" so responses keep
// the flat shape the frontend expects.
func SuccessResponse(c *fiber.Ctx, data fiber.Map, message string, code ...int) error {
	statusCode := fiber.StatusOK
	if len(code) > 0 {
		statusCode = code[0]
	}

	body := fiber.Map{
		"success": true,
		"message": message,
	}
	for k, v := range data {
		body[k] = v
	}

	return c.Status(statusCode).JSON(body)
}

// ErrorResponse sends an error JSON response with a failure flag and message.
// If an explicit HTTP status code is provided it is used; otherwise 500 is sent.
func ErrorResponse(c *fiber.Ctx, message string, code ...int) error {
	statusCode := fiber.StatusInternalServerError
	if len(code) > 0 {
		statusCode = code[0]
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
