package auth

import (
	"errors"
	"log/slog"
	"time"

	"dentapp/internal/config"
	"dentapp/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the login body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenRequest is the body for the refresh-token variant that does
// not rely on the cookie
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Handler exposes the authentication endpoints
type Handler struct {
	authService Service
	codec       *TokenCodec
	authConfig  config.AuthConfig
}

// NewHandler creates a new auth handler
func NewHandler(s Service, codec *TokenCodec, authConfig config.AuthConfig) *Handler {
	return &Handler{authService: s, codec: codec, authConfig: authConfig}
}

// Login handles POST /auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	if req.Username == "" || req.Password == "" {
		return utils.ErrorResponse(c, "Username and password are required", fiber.StatusBadRequest)
	}

	res, err := h.authService.Login(req.Username, req.Password, utils.ClientIP(c), c.Get("User-Agent"))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid username or password", fiber.StatusUnauthorized)
		}
		return utils.ErrorResponse(c, "Authentication failed")
	}

	h.setAccessTokenCookie(c, res.AccessToken)
	h.setRefreshTokenCookie(c, res.RefreshToken)

	return utils.SuccessResponse(c, fiber.Map{
		"user":                  res.User,
		"sessionId":             res.SessionID,
		"accessTokenExpiresIn":  res.AccessTokenExpiresIn,
		"refreshTokenExpiresIn": res.RefreshTokenExpiresIn,
	}, "Login successful")
}

// Refresh handles POST /auth/refresh, reading the refresh cookie
func (h *Handler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(RefreshTokenCookie)
	if refreshToken == "" {
		return utils.ErrorResponse(c, "Refresh token not found", fiber.StatusUnauthorized)
	}

	return h.refresh(c, refreshToken)
}

// RefreshFromBody handles POST /auth/refresh-token, accepting the token in
// the request body instead of the cookie
func (h *Handler) RefreshFromBody(c *fiber.Ctx) error {
	var req RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	if req.RefreshToken == "" {
		return utils.ErrorResponse(c, "Refresh token is required", fiber.StatusUnauthorized)
	}

	return h.refresh(c, req.RefreshToken)
}

func (h *Handler) refresh(c *fiber.Ctx, refreshToken string) error {
	res, err := h.authService.Refresh(refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			return utils.ErrorResponse(c, "Invalid refresh token", fiber.StatusUnauthorized)
		case errors.Is(err, ErrSessionNotFound):
			return utils.ErrorResponse(c, "Session not found or expired", fiber.StatusUnauthorized)
		case errors.Is(err, ErrSessionExpired):
			return utils.ErrorResponse(c, "Session expired", fiber.StatusUnauthorized)
		default:
			return utils.ErrorResponse(c, "Token refresh failed")
		}
	}

	h.setAccessTokenCookie(c, res.AccessToken)

	return utils.SuccessResponse(c, fiber.Map{
		"accessTokenExpiresIn": res.AccessTokenExpiresIn,
		"sessionId":            res.SessionID,
	}, "Access token refreshed successfully")
}

// Logout handles POST /auth/logout. Both credential cookies are cleared no
// matter whether a session was found; repeating a logout still succeeds.
func (h *Handler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies(RefreshTokenCookie)

	err := h.authService.Logout(refreshToken)

	h.clearAuthCookies(c)

	if err != nil {
		return utils.ErrorResponse(c, "Logout failed")
	}

	return utils.SuccessResponse(c, nil, "Logged out successfully")
}

// LogoutAll handles POST /auth/logout-all, revoking every session of the
// authenticated user
func (h *Handler) LogoutAll(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if identity == nil {
		return utils.ErrorResponse(c, "User not authenticated", fiber.StatusUnauthorized)
	}

	err := h.authService.LogoutAll(identity.UserID)

	h.clearAuthCookies(c)

	if err != nil {
		return utils.ErrorResponse(c, "Logout all failed")
	}

	return utils.SuccessResponse(c, nil, "All sessions logged out successfully")
}

// Me handles GET /auth/me, returning the current user's profile
func (h *Handler) Me(c *fiber.Ctx) error {
	accessToken := c.Cookies(AccessTokenCookie)
	if accessToken == "" {
		return utils.ErrorResponse(c, "Access token not found", fiber.StatusUnauthorized)
	}

	profile, err := h.authService.CurrentUser(accessToken)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid or expired token", fiber.StatusUnauthorized)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

// Validate handles GET /auth/validate, a lightweight token liveness check
func (h *Handler) Validate(c *fiber.Ctx) error {
	accessToken := c.Cookies(AccessTokenCookie)
	if accessToken == "" {
		return utils.ErrorResponse(c, "Access token not found", fiber.StatusUnauthorized)
	}

	if !h.authService.ValidateAccessToken(accessToken) {
		return utils.ErrorResponse(c, "Token is invalid or expired", fiber.StatusUnauthorized)
	}

	return utils.SuccessResponse(c, nil, "Token is valid")
}

// ShouldRefresh handles GET /auth/should-refresh, hinting clients to refresh
// preemptively when the access token is close to expiry
func (h *Handler) ShouldRefresh(c *fiber.Ctx) error {
	accessToken := c.Cookies(AccessTokenCookie)
	if accessToken == "" {
		return utils.ErrorResponse(c, "Access token not found", fiber.StatusUnauthorized)
	}

	shouldRefresh, remaining, err := h.codec.ShouldRefresh(accessToken)
	if err != nil {
		return utils.ErrorResponse(c, "Token is invalid or expired", fiber.StatusUnauthorized)
	}

	return utils.SuccessResponse(c, fiber.Map{
		"shouldRefresh":       shouldRefresh,
		"timeUntilExpiration": remaining.Milliseconds(),
	}, "Token refresh check completed")
}

// CleanupSessions handles POST /auth/cleanup-sessions (admin only)
func (h *Handler) CleanupSessions(c *fiber.Ctx) error {
	count, err := h.authService.CleanupSessions()
	if err != nil {
		return utils.ErrorResponse(c, "Session cleanup failed")
	}

	slog.Info("Expired sessions cleaned up", "deleted", count)
	return utils.SuccessResponse(c, nil, "Expired sessions cleaned up successfully")
}

func (h *Handler) setAccessTokenCookie(c *fiber.Ctx, token string) {
	h.setCookie(c, AccessTokenCookie, token, h.codec.AccessTTL())
}

func (h *Handler) setRefreshTokenCookie(c *fiber.Ctx, token string) {
	h.setCookie(c, RefreshTokenCookie, token, h.codec.RefreshTTL())
}

func (h *Handler) setCookie(c *fiber.Ctx, name, value string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   h.authConfig.CookieSecure,
		Domain:   h.authConfig.CookieDomain,
		Path:     "/",
		SameSite: "Lax",
		MaxAge:   int(maxAge.Seconds()),
	})
}

// clearAuthCookies re-sets both credential cookies with an immediate expiry
func (h *Handler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   h.authConfig.CookieSecure,
			Domain:   h.authConfig.CookieDomain,
			Path:     "/",
			SameSite: "Lax",
			MaxAge:   -1,
			Expires:  time.Now().Add(-time.Hour),
		})
	}
}
