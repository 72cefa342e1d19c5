package auth

import (
	"context"
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/shared/auditlog"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/dto/responses"
	"sleepclinic-service/internal/pkg/exceptions"
	"sleepclinic-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository    contracts.UserRepository
	SessionRepository contracts.SessionRepository
	AttemptLimiter    contracts.AttemptLimiter
	AuditRecorder     *auditlog.Recorder
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
	Now               func() time.Time
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	sessionRepository contracts.SessionRepository,
	attemptLimiter contracts.AttemptLimiter,
	auditRecorder *auditlog.Recorder,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository:    userRepository,
		SessionRepository: sessionRepository,
		AttemptLimiter:    attemptLimiter,
		AuditRecorder:     auditRecorder,
		InternalConfig:    internalConfig,
		Log:               logger,
		Now:               time.Now,
	}
}

func (uc *authUsecase) RegisterMainHead(ctx context.Context, request *requests.RegisterMainHead) (*responses.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterMainHead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existingUser, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	mainHead := &models.User{
		Email:    request.Email,
		Password: hashedPassword,
		Role:     models.RoleMainHead,
		Name:     request.Name,
		IsActive: true,
	}
	mainHead.SetCreatedAtUpdatedAt(uc.Now())

	mainHeadID, err := uc.UserRepository.CreateUser(ctx, mainHead)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterMainHead error creating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	mainHead.ID = mainHeadID

	uc.AuditRecorder.Record(ctx, mainHead, constvars.AuditActionRegister, constvars.AuditEntityUser, mainHeadID.String())

	uc.Log.Info("authUsecase.RegisterMainHead succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCallerIDKey, mainHeadID.String()),
	)
	response := mainHead.ConvertIntoResponse()
	return &response, nil
}

// Login verifies the password before looking at the account status, so the
// inactive message is only ever shown to someone holding valid credentials.
func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.checkLoginAttempt(ctx, request.Email)
	if err != nil {
		return nil, err
	}

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		uc.Log.Warn("authUsecase.Login invalid credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}
	if !user.IsActive {
		uc.Log.Warn("authUsecase.Login inactive account",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, user.ID.String()),
		)
		if uc.InternalConfig.App.LoginRevealInactiveAccount {
			return nil, exceptions.ErrAccountInactive(nil, constvars.ErrClientAccountInactive)
		}
		return nil, exceptions.ErrAccountInactive(nil, constvars.ErrClientInvalidEmailOrPassword)
	}

	token, err := utils.GenerateSessionToken(constvars.SessionTokenLength)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}

	sessionDuration := time.Duration(uc.InternalConfig.App.LoginSessionExpiredTimeInHours) * time.Hour
	expiresAt := utils.ToEpochMillis(uc.Now().Add(sessionDuration))

	sessionID, err := uc.SessionRepository.CreateSession(ctx, user.ID, user.Email, user.Role, token, &expiresAt)
	if err != nil {
		uc.Log.Error("authUsecase.Login error creating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, user.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, user, constvars.AuditActionLogin, constvars.AuditEntitySession, sessionID.String())

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCallerIDKey, user.ID.String()),
	)
	return &responses.Login{
		User:      user.ConvertIntoResponse(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// checkLoginAttempt lets the attempt through when the limiter itself fails.
func (uc *authUsecase) checkLoginAttempt(ctx context.Context, email string) error {
	if uc.AttemptLimiter == nil {
		return nil
	}

	window := time.Duration(uc.InternalConfig.App.LoginAttemptWindowInMinutes) * time.Minute
	allowed, retryAfter, err := uc.AttemptLimiter.Allow(ctx, constvars.LimiterGroupLoginAttempt, email, uc.InternalConfig.App.LoginMaxAttemptsPerEmail, window)
	if err != nil {
		return nil
	}
	if !allowed {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("authUsecase.Login too many attempts",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration("retry_after", retryAfter),
		)
		return exceptions.ErrTooManyRequests(nil)
	}
	return nil
}

// Logout ends the session named by token, or every session of the native
// identity when no token is given.
func (uc *authUsecase) Logout(ctx context.Context, nativeEmail, token string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	switch {
	case token != "":
		session, err := uc.SessionRepository.FindSessionByToken(ctx, token)
		if err != nil {
			return err
		}
		if session == nil {
			return nil
		}

		err = uc.SessionRepository.DeleteSession(ctx, session.ID)
		if err != nil {
			uc.Log.Error("authUsecase.Logout error deleting session",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return err
		}

		actor := &models.User{ID: session.UserID, Email: session.Email, Role: session.Role}
		uc.AuditRecorder.Record(ctx, actor, constvars.AuditActionLogout, constvars.AuditEntitySession, session.ID.String())
	case nativeEmail != "":
		err := uc.SessionRepository.DeleteSessionsForEmail(ctx, nativeEmail)
		if err != nil {
			uc.Log.Error("authUsecase.Logout error deleting sessions for email",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return err
		}

		user, err := uc.UserRepository.FindByEmail(ctx, nativeEmail)
		if err == nil && user != nil {
			uc.AuditRecorder.Record(ctx, user, constvars.AuditActionLogout, constvars.AuditEntityUser, user.ID.String())
		}
	default:
		return exceptions.ErrNotAuthenticated(nil)
	}

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *authUsecase) CurrentCaller(ctx context.Context, caller *models.User) *responses.User {
	if caller == nil {
		return nil
	}
	response := caller.ConvertIntoResponse()
	return &response
}
