package auth

import (
	"log/slog"
	"strings"
	"time"

	"dentapp/internal/domain/session"
	"dentapp/internal/domain/user"
	"github.com/google/uuid"
)

// LoginResult is everything a successful login hands back to the transport
type LoginResult struct {
	User                  *user.Response
	SessionID             string
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresIn  int64 // milliseconds
	RefreshTokenExpiresIn int64 // milliseconds
}

// RefreshResult carries the newly minted access token and its expiry
type RefreshResult struct {
	SessionID            string
	AccessToken          string
	AccessTokenExpiresIn int64 // milliseconds
}

// Service coordinates login, refresh, logout and session cleanup across the
// credential verifier, the token codec and the session store
type Service interface {
	Login(username, password, ip, userAgent string) (*LoginResult, error)
	Refresh(refreshToken string) (*RefreshResult, error)
	Logout(refreshToken string) error
	LogoutAll(userID uint) error
	CurrentUser(accessToken string) (*user.Response, error)
	ValidateAccessToken(accessToken string) bool
	CleanupSessions() (int64, error)
}

type service struct {
	users    user.Repository
	sessions session.Service
	codec    *TokenCodec
}

// NewService creates a new authentication service
func NewService(users user.Repository, sessions session.Service, codec *TokenCodec) Service {
	return &service{
		users:    users,
		sessions: sessions,
		codec:    codec,
	}
}

// Login verifies the credentials, mints an access/refresh token pair and
// persists a new session. Unknown username and wrong password produce the
// same failure so callers cannot probe which accounts exist.
func (s *service) Login(username, password, ip, userAgent string) (*LoginResult, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.VerifyPassword(password, u.Password) {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()

	refreshToken, err := s.codec.MintRefreshToken(u.Username, u.UserID, sessionID)
	if err != nil {
		slog.Error("Failed to mint refresh token", "error", err, "user_id", u.UserID)
		return nil, ErrInternal
	}

	accessToken, err := s.codec.MintAccessToken(u.Username, u.Role, u.UserID)
	if err != nil {
		slog.Error("Failed to mint access token", "error", err, "user_id", u.UserID)
		return nil, ErrInternal
	}

	if _, err := s.sessions.Create(sessionID, u.UserID, refreshToken, ip, userAgent, s.codec.RefreshTTL()); err != nil {
		slog.Error("Failed to persist session", "error", err, "user_id", u.UserID)
		return nil, ErrInternal
	}

	return &LoginResult{
		User:                  u.ToResponse(),
		SessionID:             sessionID,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresIn:  s.codec.AccessTTL().Milliseconds(),
		RefreshTokenExpiresIn: s.codec.RefreshTTL().Milliseconds(),
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The session row
// is authoritative: a cryptographically valid token whose session is revoked
// or expired does not refresh. The refresh token itself is not rotated.
func (s *service) Refresh(refreshToken string) (*RefreshResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType() != TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	sess, err := s.sessions.FindActiveByRefreshToken(refreshToken)
	if err != nil {
		if err == session.ErrNotFound {
			return nil, ErrSessionNotFound
		}
		slog.Error("Session lookup failed during refresh", "error", err)
		return nil, ErrInternal
	}

	if sess.IsExpired() {
		if err := s.sessions.Revoke(sess.SessionID); err != nil {
			slog.Error("Failed to deactivate expired session", "error", err, "session_id", sess.SessionID)
		}
		return nil, ErrSessionExpired
	}

	u, err := s.users.FindByID(sess.UserID)
	if err != nil {
		slog.Error("Session owner lookup failed during refresh", "error", err, "user_id", sess.UserID)
		return nil, ErrInternal
	}

	accessToken, err := s.codec.MintAccessToken(u.Username, u.Role, u.UserID)
	if err != nil {
		slog.Error("Failed to mint access token during refresh", "error", err, "user_id", u.UserID)
		return nil, ErrInternal
	}

	if err := s.sessions.Touch(sess.SessionID); err != nil {
		slog.Error("Failed to touch session", "error", err, "session_id", sess.SessionID)
		return nil, ErrInternal
	}

	return &RefreshResult{
		SessionID:            sess.SessionID,
		AccessToken:          accessToken,
		AccessTokenExpiresIn: s.codec.AccessTTL().Milliseconds(),
	}, nil
}

// Logout revokes the session behind the refresh token, if there is one.
// Logging out with a blank, unknown or already-revoked token succeeds.
func (s *service) Logout(refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}

	sess, err := s.sessions.FindActiveByRefreshToken(refreshToken)
	if err != nil {
		if err == session.ErrNotFound {
			return nil
		}
		slog.Error("Session lookup failed during logout", "error", err)
		return ErrInternal
	}

	if err := s.sessions.Revoke(sess.SessionID); err != nil {
		slog.Error("Failed to revoke session", "error", err, "session_id", sess.SessionID)
		return ErrInternal
	}

	return nil
}

// LogoutAll revokes every active session belonging to the user
func (s *service) LogoutAll(userID uint) error {
	if err := s.sessions.RevokeAll(userID); err != nil {
		slog.Error("Failed to revoke user sessions", "error", err, "user_id", userID)
		return ErrInternal
	}
	return nil
}

// CurrentUser resolves an access token to the owning profile. Any
// verification failure yields ErrUnauthenticated rather than the underlying
// cause.
func (s *service) CurrentUser(accessToken string) (*user.Response, error) {
	claims, ok := s.verifyAccess(accessToken)
	if !ok {
		return nil, ErrUnauthenticated
	}

	u, err := s.users.FindByUsername(claims.Subject())
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return u.ToResponse(), nil
}

// ValidateAccessToken reports whether the access token would be accepted,
// without resolving the profile
func (s *service) ValidateAccessToken(accessToken string) bool {
	_, ok := s.verifyAccess(accessToken)
	return ok
}

// CleanupSessions removes expired and inactive session rows
func (s *service) CleanupSessions() (int64, error) {
	count, err := s.sessions.CleanupExpired(time.Now().UTC())
	if err != nil {
		slog.Error("Session cleanup failed", "error", err)
		return 0, ErrInternal
	}
	return count, nil
}

// verifyAccess applies the full "valid access token" check: signature,
// token type, expiry and a present subject
func (s *service) verifyAccess(accessToken string) (*Claims, bool) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, false
	}

	claims, err := s.codec.Verify(accessToken)
	if err != nil {
		return nil, false
	}

	if claims.TokenType() != TokenTypeAccess || claims.IsExpired() || claims.Subject() == "" {
		return nil, false
	}

	return claims, true
}
