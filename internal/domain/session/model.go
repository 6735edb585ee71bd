package session

import "time"

// Session is the persistent record tying a refresh token to a user. It has
// its own expiry and revocation flag, independent of the token's embedded
// expiry: the row is authoritative.
type Session struct {
	SessionID    string    `gorm:"column:session_id;primaryKey"`
	UserID       uint      `gorm:"column:user_id;not null;index"`
	RefreshToken string    `gorm:"column:refresh_token;size:1000;not null;uniqueIndex"`
	IPAddress    string    `gorm:"column:ip_address"`
	UserAgent    string    `gorm:"column:user_agent;size:500"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null"`
	LastAccessed time.Time `gorm:"column:last_accessed;not null"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
}

func (Session) TableName() string {
	return "user_sessions"
}

// IsExpired reports whether the session's own expiry has passed
func (s *Session) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// Usable reports whether the session can still back a refresh:
// active and not yet expired
func (s *Session) Usable() bool {
	return s.IsActive && !s.IsExpired()
}
