package sessions

import (
	"context"
	"fmt"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// cachedSessionRepository is a read-through Redis cache in front of the
// session store. Token lookups are cached; every delete path evicts the
// affected tokens. A cache fill is confirmed against the store afterwards so
// a delete racing with the fill cannot leave the token cached.
type cachedSessionRepository struct {
	SessionRepository contracts.SessionRepository
	RedisRepository   contracts.RedisRepository
	Log               *zap.Logger
	TTL               time.Duration
	Now               func() time.Time
}

func NewCachedSessionRepository(
	sessionRepository contracts.SessionRepository,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
	ttl time.Duration,
) contracts.SessionRepository {
	return &cachedSessionRepository{
		SessionRepository: sessionRepository,
		RedisRepository:   redisRepository,
		Log:               logger,
		TTL:               ttl,
		Now:               time.Now,
	}
}

func (r *cachedSessionRepository) EnsureIndexes(ctx context.Context) error {
	return r.SessionRepository.EnsureIndexes(ctx)
}

func (r *cachedSessionRepository) CreateSession(ctx context.Context, userID models.UserID, email string, role models.Role, token string, expiresAt *int64) (models.SessionID, error) {
	return r.SessionRepository.CreateSession(ctx, userID, email, role, token, expiresAt)
}

func (r *cachedSessionRepository) FindSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	tokenKey := fmt.Sprintf(constvars.RedisKeySessionTokenFormat, token)

	cached, err := r.RedisRepository.Get(ctx, tokenKey)
	if err != nil {
		r.logCacheError(ctx, "cachedSessionRepository.FindSessionByToken error reading cache", tokenKey, err)
	} else if cached != "" {
		session := new(models.Session)
		err = json.Unmarshal([]byte(cached), session)
		if err == nil {
			return session, nil
		}
		r.logCacheError(ctx, "cachedSessionRepository.FindSessionByToken error parsing cached session", tokenKey, exceptions.ErrCannotParseJSON(err))
	}

	session, err := r.SessionRepository.FindSessionByToken(ctx, token)
	if err != nil || session == nil {
		return session, err
	}

	if !r.cache(ctx, session) {
		return session, nil
	}

	current, err := r.SessionRepository.FindSessionByToken(ctx, token)
	if err != nil || current == nil || current.ID != session.ID {
		r.evict(ctx, session)
		return current, err
	}
	return session, nil
}

func (r *cachedSessionRepository) DeleteSession(ctx context.Context, sessionID models.SessionID) error {
	err := r.SessionRepository.DeleteSession(ctx, sessionID)
	if err != nil {
		return err
	}

	idKey := fmt.Sprintf(constvars.RedisKeySessionIDFormat, sessionID)
	token, err := r.RedisRepository.Get(ctx, idKey)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	var tokenValue string
	err = json.Unmarshal([]byte(token), &tokenValue)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return r.RedisRepository.Delete(ctx, idKey, fmt.Sprintf(constvars.RedisKeySessionTokenFormat, tokenValue))
}

func (r *cachedSessionRepository) DeleteSessionsForEmail(ctx context.Context, email string) error {
	err := r.SessionRepository.DeleteSessionsForEmail(ctx, email)
	if err != nil {
		return err
	}

	emailKey := fmt.Sprintf(constvars.RedisKeySessionEmailFormat, email)
	tokens, err := r.RedisRepository.GetSetMembers(ctx, emailKey)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, fmt.Sprintf(constvars.RedisKeySessionTokenFormat, token))
	}
	keys = append(keys, emailKey)
	return r.RedisRepository.Delete(ctx, keys...)
}

// DeleteExpiredSessions needs no eviction, cached entries never outlive
// their session's expiresAt.
func (r *cachedSessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return r.SessionRepository.DeleteExpiredSessions(ctx, now)
}

// cache reports whether the token entry was written. Partial writes are
// rolled back, a token entry without its id and email entries could not be
// evicted on logout.
func (r *cachedSessionRepository) cache(ctx context.Context, session *models.Session) bool {
	ttl := r.TTL
	if session.ExpiresAt != nil {
		remaining := time.UnixMilli(*session.ExpiresAt).Sub(r.Now())
		if remaining <= 0 {
			return false
		}
		if remaining < ttl {
			ttl = remaining
		}
	}
	if ttl <= 0 {
		return false
	}

	tokenKey := fmt.Sprintf(constvars.RedisKeySessionTokenFormat, session.Token)
	err := r.RedisRepository.Set(ctx, tokenKey, session, ttl)
	if err != nil {
		r.logCacheError(ctx, "cachedSessionRepository.cache error caching session", tokenKey, err)
		return false
	}

	idKey := fmt.Sprintf(constvars.RedisKeySessionIDFormat, session.ID)
	err = r.RedisRepository.Set(ctx, idKey, session.Token, ttl)
	if err != nil {
		r.logCacheError(ctx, "cachedSessionRepository.cache error caching session id", idKey, err)
		r.evict(ctx, session)
		return false
	}

	emailKey := fmt.Sprintf(constvars.RedisKeySessionEmailFormat, session.Email)
	err = r.RedisRepository.AddToSet(ctx, emailKey, r.TTL, session.Token)
	if err != nil {
		r.logCacheError(ctx, "cachedSessionRepository.cache error indexing session by email", emailKey, err)
		r.evict(ctx, session)
		return false
	}
	return true
}

func (r *cachedSessionRepository) evict(ctx context.Context, session *models.Session) {
	tokenKey := fmt.Sprintf(constvars.RedisKeySessionTokenFormat, session.Token)
	idKey := fmt.Sprintf(constvars.RedisKeySessionIDFormat, session.ID)
	err := r.RedisRepository.Delete(ctx, tokenKey, idKey)
	if err != nil {
		r.logCacheError(ctx, "cachedSessionRepository.evict error evicting session", tokenKey, err)
	}
}

func (r *cachedSessionRepository) logCacheError(ctx context.Context, message, key string, err error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Warn(message,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Error(err),
	)
}
