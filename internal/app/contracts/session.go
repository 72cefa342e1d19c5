package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"time"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, userID models.UserID, email string, role models.Role, token string, expiresAt *int64) (models.SessionID, error)
	FindSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID models.SessionID) error
	DeleteSessionsForEmail(ctx context.Context, email string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
