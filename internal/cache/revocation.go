package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionRevocationPrefix = "revoked:session:"

// SessionRevocationCache records revoked session ids in Redis so sibling
// services can observe revocations without hitting the session table.
// The database stays authoritative; this cache is write-through only.
type SessionRevocationCache struct {
	client *redis.Client
}

// NewSessionRevocationCache creates a revocation cache backed by the given client
func NewSessionRevocationCache(client *redis.Client) *SessionRevocationCache {
	return &SessionRevocationCache{client: client}
}

// RevokeSession marks a session id revoked for ttl. The ttl should be the
// session's remaining lifetime; after that the database row is expired anyway.
func (c *SessionRevocationCache) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	key := sessionRevocationPrefix + sessionID
	if err := c.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to record session revocation: %w", err)
	}
	return nil
}

// IsSessionRevoked reports whether a session id has been recorded as revoked
func (c *SessionRevocationCache) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	key := sessionRevocationPrefix + sessionID
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
