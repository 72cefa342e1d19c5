package models

import "time"

type Session struct {
	ID        SessionID `bson:"_id,omitempty" json:"id"`
	UserID    UserID    `bson:"userId" json:"user_id"`
	Email     string    `bson:"email" json:"email"`
	Role      Role      `bson:"role" json:"role"`
	Token     string    `bson:"token" json:"token"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	// ExpiresAt is epoch milliseconds; nil means the session never expires.
	ExpiresAt *int64    `bson:"expiresAt,omitempty" json:"expires_at,omitempty"`
}

// IsActiveAt reports whether the session is still valid at now.
func (s *Session) IsActiveAt(now time.Time) bool {
	if s.ExpiresAt == nil {
		return true
	}
	return *s.ExpiresAt > now.UnixMilli()
}
