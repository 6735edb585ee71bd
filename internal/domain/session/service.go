package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dentapp/internal/cache"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no active session matches the lookup
	ErrNotFound = errors.New("session not found")
)

// Service interface for session operations
type Service interface {
	Create(sessionID string, userID uint, refreshToken, ip, userAgent string, ttl time.Duration) (*Session, error)
	FindActiveByRefreshToken(refreshToken string) (*Session, error)
	FindActiveByUserID(userID uint) ([]Session, error)
	Touch(sessionID string) error
	Revoke(sessionID string) error
	RevokeAll(userID uint) error
	CleanupExpired(now time.Time) (int64, error)
}

type service struct {
	repo            Repository
	revocationCache *cache.SessionRevocationCache
}

// NewService creates a session Service without a revocation cache
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// NewServiceWithCache creates a Service that additionally writes revocations
// through to the given cache. A nil cache is the same as NewService.
func NewServiceWithCache(repo Repository, revocationCache *cache.SessionRevocationCache) Service {
	return &service{repo: repo, revocationCache: revocationCache}
}

// Create inserts a new active session row. CreatedAt and LastAccessed are
// set to now; ExpiresAt is fixed at now+ttl and never extended afterwards.
func (s *service) Create(sessionID string, userID uint, refreshToken, ip, userAgent string, ttl time.Duration) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		SessionID:    sessionID,
		UserID:       userID,
		RefreshToken: refreshToken,
		IPAddress:    ip,
		UserAgent:    userAgent,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		LastAccessed: now,
		IsActive:     true,
	}

	if err := s.repo.Create(sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// FindActiveByRefreshToken looks up the session bound to the exact refresh
// token string, restricted to active rows
func (s *service) FindActiveByRefreshToken(refreshToken string) (*Session, error) {
	sess, err := s.repo.FindActiveByRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *service) FindActiveByUserID(userID uint) ([]Session, error) {
	return s.repo.FindActiveByUserID(userID)
}

// Touch updates the session's last-accessed timestamp. Concurrent touches
// are last-writer-wins; nothing depends on their ordering.
func (s *service) Touch(sessionID string) error {
	return s.repo.UpdateLastAccessed(sessionID, time.Now().UTC())
}

// Revoke marks one session inactive. Revoking an already-inactive session
// is a no-op success.
func (s *service) Revoke(sessionID string) error {
	sess, err := s.repo.FindActiveByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.Deactivate(sessionID); err != nil {
		return err
	}

	s.cacheRevocation(sess)
	return nil
}

// RevokeAll marks every active session of the user inactive
func (s *service) RevokeAll(userID uint) error {
	sessions, err := s.repo.FindActiveByUserID(userID)
	if err != nil {
		return err
	}

	if err := s.repo.DeactivateAllForUser(userID); err != nil {
		return err
	}

	for i := range sessions {
		s.cacheRevocation(&sessions[i])
	}
	return nil
}

// CleanupExpired deletes rows that are expired or inactive and reports
// how many were removed
func (s *service) CleanupExpired(now time.Time) (int64, error) {
	return s.repo.DeleteExpiredAndInactive(now)
}

// cacheRevocation records the revocation in Redis when a cache is configured.
// Failures are logged and swallowed: the database row is authoritative.
func (s *service) cacheRevocation(sess *Session) {
	if s.revocationCache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := s.revocationCache.RevokeSession(ctx, sess.SessionID, ttl); err != nil {
		slog.Warn("Failed to record session revocation in Redis",
			"error", err, "session_id", sess.SessionID)
	}
}
