package user

import (
	"errors"
	"strconv"

	"dentapp/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the staff account endpoints
type Handler struct {
	userService Service
}

// NewHandler creates a new user handler
func NewHandler(s Service) *Handler {
	return &Handler{userService: s}
}

// SignUp handles POST /user/signup (public)
func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	if req.Username == "" || req.Email == "" || req.Password == "" ||
		req.FirstName == "" || req.LastName == "" || req.Role == "" {
		return utils.ErrorResponse(c, "Missing required fields", fiber.StatusBadRequest)
	}

	res, err := h.userService.SignUp(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameExists):
			return utils.ErrorResponse(c, "Username already exists", fiber.StatusBadRequest)
		case errors.Is(err, ErrEmailExists):
			return utils.ErrorResponse(c, "Email already exists", fiber.StatusBadRequest)
		case errors.Is(err, ErrUnknownRole):
			return utils.ErrorResponse(c, "Invalid role", fiber.StatusBadRequest)
		default:
			return utils.ErrorResponse(c, "Failed to create user")
		}
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// Profile handles GET /user/profile for the authenticated user.
// The username comes from the request identity set by the authenticator.
func (h *Handler) Profile(username func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := username(c)
		if name == "" {
			return utils.ErrorResponse(c, "User not authenticated", fiber.StatusUnauthorized)
		}

		res, err := h.userService.GetByUsername(name)
		if err != nil {
			return utils.ErrorResponse(c, "User profile not found", fiber.StatusNotFound)
		}

		return c.Status(fiber.StatusOK).JSON(res)
	}
}

// GetByID handles GET /user/:id
func (h *Handler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user id", fiber.StatusBadRequest)
	}

	res, err := h.userService.GetByID(uint(id))
	if err != nil {
		return utils.ErrorResponse(c, "User not found", fiber.StatusNotFound)
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetByUsername handles GET /user/username/:username
func (h *Handler) GetByUsername(c *fiber.Ctx) error {
	res, err := h.userService.GetByUsername(c.Params("username"))
	if err != nil {
		return utils.ErrorResponse(c, "User not found", fiber.StatusNotFound)
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetAll handles GET /user/all (admin only)
func (h *Handler) GetAll(c *fiber.Ctx) error {
	res, err := h.userService.GetAll()
	if err != nil {
		return utils.ErrorResponse(c, "Error retrieving users")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetActive handles GET /user/active (admin only)
func (h *Handler) GetActive(c *fiber.Ctx) error {
	res, err := h.userService.GetActive()
	if err != nil {
		return utils.ErrorResponse(c, "Error retrieving users")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// GetByRole handles GET /user/role/:role (admin only)
func (h *Handler) GetByRole(c *fiber.Ctx) error {
	role, err := ParseRole(c.Params("role"))
	if err != nil {
		return utils.ErrorResponse(c, "Invalid role", fiber.StatusBadRequest)
	}

	res, err := h.userService.GetByRole(role)
	if err != nil {
		return utils.ErrorResponse(c, "Error retrieving users")
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// Update handles PUT /user/:id (admin only)
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user id", fiber.StatusBadRequest)
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	res, err := h.userService.Update(uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return utils.ErrorResponse(c, "User not found", fiber.StatusNotFound)
		case errors.Is(err, ErrEmailExists):
			return utils.ErrorResponse(c, "Email already exists", fiber.StatusBadRequest)
		case errors.Is(err, ErrUnknownRole):
			return utils.ErrorResponse(c, "Invalid role", fiber.StatusBadRequest)
		default:
			return utils.ErrorResponse(c, "Failed to update user")
		}
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// Deactivate handles DELETE /user/:id (admin only): a soft delete
func (h *Handler) Deactivate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid user id", fiber.StatusBadRequest)
	}

	if err := h.userService.Deactivate(uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return utils.ErrorResponse(c, "User not found", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, "Failed to deactivate user")
	}

	return utils.SuccessResponse(c, nil, "User deactivated successfully")
}
