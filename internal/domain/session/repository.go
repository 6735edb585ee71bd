package session

import (
	"time"

	"gorm.io/gorm"
)

// Repository interface for session persistence
type Repository interface {
	Create(sess *Session) error
	FindActiveByID(sessionID string) (*Session, error)
	FindActiveByRefreshToken(refreshToken string) (*Session, error)
	FindActiveByUserID(userID uint) ([]Session, error)
	CountActiveByUserID(userID uint) (int64, error)
	UpdateLastAccessed(sessionID string, t time.Time) error
	Deactivate(sessionID string) error
	DeactivateAllForUser(userID uint) error
	DeleteExpiredAndInactive(now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new session repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(sess *Session) error {
	return r.db.Create(sess).Error
}

func (r *repository) FindActiveByID(sessionID string) (*Session, error) {
	var sess Session
	err := r.db.Where("session_id = ? AND is_active = true", sessionID).First(&sess).Error
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *repository) FindActiveByRefreshToken(refreshToken string) (*Session, error) {
	var sess Session
	err := r.db.Where("refresh_token = ? AND is_active = true", refreshToken).First(&sess).Error
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *repository) FindActiveByUserID(userID uint) ([]Session, error) {
	var sessions []Session
	err := r.db.Where("user_id = ? AND is_active = true", userID).
		Order("created_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) CountActiveByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Session{}).
		Where("user_id = ? AND is_active = true", userID).Count(&count).Error
	return count, err
}

func (r *repository) UpdateLastAccessed(sessionID string, t time.Time) error {
	return r.db.Model(&Session{}).
		Where("session_id = ?", sessionID).
		Update("last_accessed", t).Error
}

// Deactivate is a no-op for rows already inactive
func (r *repository) Deactivate(sessionID string) error {
	return r.db.Model(&Session{}).
		Where("session_id = ? AND is_active = true", sessionID).
		Update("is_active", false).Error
}

func (r *repository) DeactivateAllForUser(userID uint) error {
	return r.db.Model(&Session{}).
		Where("user_id = ? AND is_active = true", userID).
		Update("is_active", false).Error
}

// DeleteExpiredAndInactive removes rows that are past their expiry or have
// been revoked, and reports how many were deleted. The predicate-scoped
// delete never locks live rows.
func (r *repository) DeleteExpiredAndInactive(now time.Time) (int64, error) {
	res := r.db.Where("expires_at < ? OR is_active = false", now).Delete(&Session{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
