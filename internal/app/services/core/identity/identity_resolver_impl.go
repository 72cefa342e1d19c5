package identity

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

type identityResolver struct {
	SessionRepository contracts.SessionRepository
	UserRepository    contracts.UserRepository
	Log               *zap.Logger
	Now               func() time.Time
}

func NewIdentityResolver(
	sessionRepository contracts.SessionRepository,
	userRepository contracts.UserRepository,
	logger *zap.Logger,
) contracts.IdentityResolver {
	return &identityResolver{
		SessionRepository: sessionRepository,
		UserRepository:    userRepository,
		Log:               logger,
		Now:               time.Now,
	}
}

// ResolveCaller prefers the native identity email over the session token.
// A token only resolves while its session has no expiresAt or expiresAt is
// strictly after now; the email must belong to an active user.
func (r *identityResolver) ResolveCaller(ctx context.Context, nativeEmail, token string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	email := strings.ToLower(strings.TrimSpace(nativeEmail))
	if email == "" {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, nil
		}

		session, err := r.SessionRepository.FindSessionByToken(ctx, token)
		if err != nil {
			r.Log.Error("identityResolver.ResolveCaller error finding session",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		if session == nil || !session.IsActiveAt(r.Now()) {
			return nil, nil
		}
		email = session.Email
	}

	user, err := r.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		r.Log.Error("identityResolver.ResolveCaller error finding user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil || !user.IsActive || !user.Role.IsValid() {
		return nil, nil
	}

	return user, nil
}
