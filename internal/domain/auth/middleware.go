package auth

import (
	"slices"
	"strings"

	"dentapp/internal/domain/user"
	"dentapp/internal/utils"
	"github.com/gofiber/fiber/v2"
)

const (
	// IdentityKey is the key used to store the identity in Fiber context
	IdentityKey = "identity"

	// AccessTokenCookie and RefreshTokenCookie are the credential cookie names
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Identity is the request-scoped result of a successful authentication,
// consumed by the authorization gates below
type Identity struct {
	UserID   uint
	Username string
	Role     user.Role
}

// publicPathPrefixes name the routes the authenticator skips entirely
var publicPathPrefixes = []string{
	"/auth/login",
	"/auth/refresh",
	"/auth/refresh-token",
	"/user/signup",
	"/health",
	"/docs",
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Authenticate is the per-request gate. It extracts the access token cookie,
// verifies it and attaches the derived identity to the request. It never
// terminates the request: a missing, malformed or expired token just leaves
// the request unauthenticated and lets downstream authorization reject it.
func Authenticate(codec *TokenCodec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isPublicPath(c.Path()) {
			return c.Next()
		}

		if c.Locals(IdentityKey) != nil {
			return c.Next()
		}

		raw := c.Cookies(AccessTokenCookie)
		if raw == "" {
			return c.Next()
		}

		claims, err := codec.Verify(raw)
		if err != nil {
			return c.Next()
		}

		if claims.TokenType() != TokenTypeAccess || claims.IsExpired() || claims.Subject() == "" {
			return c.Next()
		}

		role, err := claims.Role()
		if err != nil {
			return c.Next()
		}

		c.Locals(IdentityKey, &Identity{
			UserID:   claims.UserID(),
			Username: claims.Subject(),
			Role:     role,
		})

		return c.Next()
	}
}

// GetIdentity extracts the identity from Fiber context; nil when the request
// is unauthenticated
func GetIdentity(c *fiber.Ctx) *Identity {
	identity, ok := c.Locals(IdentityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// RequireAuth rejects unauthenticated requests with 401
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetIdentity(c) == nil {
			return utils.ErrorResponse(c, "User not authenticated", fiber.StatusUnauthorized)
		}
		return c.Next()
	}
}

// RequireRole rejects requests whose identity does not carry one of the
// allowed roles: 401 when unauthenticated, 403 when authenticated but
// insufficient
func RequireRole(allowed ...user.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return utils.ErrorResponse(c, "User not authenticated", fiber.StatusUnauthorized)
		}

		if !identity.Role.Valid() || !slices.Contains(allowed, identity.Role) {
			return utils.ErrorResponse(c, "Insufficient privileges", fiber.StatusForbidden)
		}

		return c.Next()
	}
}
