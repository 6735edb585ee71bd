package auth

import (
	"errors"
	"fmt"
	"time"

	"dentapp/internal/domain/user"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenType tags a token with its intended use. A token presented for the
// wrong use is invalid for that use even when its signature verifies.
type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

// refreshThreshold is how close to expiry an access token has to be before
// clients are hinted to refresh it preemptively
const refreshThreshold = 2 * time.Minute

// TokenCodec mints and verifies the signed credentials. It is stateless:
// verification is signature plus structure only, expiry and token-type
// checks are separate, explicit calls on the returned claims.
type TokenCodec struct {
	key        jwk.Key
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenCodec builds a codec around a single shared HMAC secret. The
// secret comes from startup configuration; there is no ambient lookup later.
func NewTokenCodec(secret string, accessTTL, refreshTTL time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}

	key, err := jwk.Import([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to import signing secret: %w", err)
	}

	return &TokenCodec{
		key:        key,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// AccessTTL returns the access token lifetime
func (tc *TokenCodec) AccessTTL() time.Duration { return tc.accessTTL }

// RefreshTTL returns the refresh token lifetime
func (tc *TokenCodec) RefreshTTL() time.Duration { return tc.refreshTTL }

// MintAccessToken produces a short-lived access credential carrying the
// user's identity and role
func (tc *TokenCodec) MintAccessToken(username string, role user.Role, userID uint) (string, error) {
	return tc.mint(username, tc.accessTTL, map[string]any{
		"role":      role.String(),
		"userId":    userID,
		"tokenType": string(TokenTypeAccess),
	})
}

// MintRefreshToken produces a refresh credential bound to a session id
func (tc *TokenCodec) MintRefreshToken(username string, userID uint, sessionID string) (string, error) {
	return tc.mint(username, tc.refreshTTL, map[string]any{
		"userId":    userID,
		"sessionId": sessionID,
		"tokenType": string(TokenTypeRefresh),
	})
}

func (tc *TokenCodec) mint(subject string, ttl time.Duration, claims map[string]any) (string, error) {
	now := time.Now()

	builder := jwt.NewBuilder().
		Subject(subject).
		IssuedAt(now).
		Expiration(now.Add(ttl))

	for name, value := range claims {
		builder = builder.Claim(name, value)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS512(), tc.key))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// Verify checks the token's structure and signature and returns its claims.
// It does NOT check expiry or token type; callers apply Claims.IsExpired and
// Claims.TokenType explicitly for a "valid for this purpose" answer.
// Failures are distinct: ErrMalformedToken when the encoding cannot be
// decoded, ErrInvalidSignature when it decodes but the signature is wrong.
func (tc *TokenCodec) Verify(tokenString string) (*Claims, error) {
	if _, err := jwt.ParseInsecure([]byte(tokenString)); err != nil {
		return nil, ErrMalformedToken
	}

	verified, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS512(), tc.key),
		jwt.WithValidate(false),
	)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	return &Claims{Token: verified}, nil
}

// ShouldRefresh reports whether the access token's remaining lifetime is
// under the refresh threshold. A hint for clients, not enforced server-side.
func (tc *TokenCodec) ShouldRefresh(accessToken string) (bool, time.Duration, error) {
	claims, err := tc.Verify(accessToken)
	if err != nil {
		return false, 0, err
	}

	remaining := claims.TimeUntilExpiration()
	return remaining < refreshThreshold, remaining, nil
}

// Claims wraps a verified token and exposes its embedded facts
type Claims struct {
	Token jwt.Token
}

// Subject returns the username the token was issued to
func (c *Claims) Subject() string {
	sub, _ := c.Token.Subject()
	return sub
}

// IssuedAt returns when the token was minted
func (c *Claims) IssuedAt() time.Time {
	iat, _ := c.Token.IssuedAt()
	return iat
}

// Expiration returns the token's embedded expiry
func (c *Claims) Expiration() time.Time {
	exp, _ := c.Token.Expiration()
	return exp
}

// TokenType returns the token's declared use
func (c *Claims) TokenType() TokenType {
	var v any
	if c.Token.Get("tokenType", &v) == nil {
		if s, ok := v.(string); ok {
			return TokenType(s)
		}
	}
	return ""
}

// Role returns the role claim carried by access tokens
func (c *Claims) Role() (user.Role, error) {
	var v any
	if err := c.Token.Get("role", &v); err != nil {
		return "", ErrInvalidToken
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return user.ParseRole(s)
}

// UserID returns the numeric user id claim
func (c *Claims) UserID() uint {
	var v any
	if c.Token.Get("userId", &v) != nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return uint(n)
	case int64:
		return uint(n)
	case uint64:
		return uint(n)
	case int:
		return uint(n)
	case uint:
		return n
	default:
		return 0
	}
}

// SessionID returns the session id claim carried by refresh tokens
func (c *Claims) SessionID() string {
	var v any
	if c.Token.Get("sessionId", &v) == nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsExpired reports whether the token's embedded expiry has passed
func (c *Claims) IsExpired() bool {
	exp := c.Expiration()
	return exp.IsZero() || time.Now().After(exp)
}

// TimeUntilExpiration returns the token's remaining lifetime; negative once
// expired
func (c *Claims) TimeUntilExpiration() time.Duration {
	return time.Until(c.Expiration())
}
