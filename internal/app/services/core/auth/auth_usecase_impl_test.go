package auth

import (
	"context"
	"errors"
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/core/inmemory"
	"sleepclinic-service/internal/app/services/shared/auditlog"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (l *stubLimiter) Allow(ctx context.Context, group, resource string, maxAttempts int, window time.Duration) (bool, time.Duration, error) {
	l.calls++
	return l.allowed, time.Minute, l.err
}

type authFixture struct {
	usecase   *authUsecase
	users     *inmemory.UserRepository
	sessions  *inmemory.SessionRepository
	publisher *inmemory.AuditPublisher
	now       time.Time
}

func newAuthFixture(t *testing.T, limiter *stubLimiter) *authFixture {
	t.Helper()

	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	users := inmemory.NewUserRepository()
	sessions := inmemory.NewSessionRepository()
	publisher := &inmemory.AuditPublisher{}
	recorder := auditlog.NewRecorder(publisher, zap.NewNop())

	internalConfig := &config.InternalConfig{
		App: config.App{
			LoginSessionExpiredTimeInHours: 24,
			LoginMaxAttemptsPerEmail:       5,
			LoginAttemptWindowInMinutes:    15,
		},
	}

	usecase := NewAuthUsecase(users, sessions, nil, recorder, internalConfig, zap.NewNop()).(*authUsecase)
	if limiter != nil {
		usecase.AttemptLimiter = limiter
	}
	usecase.Now = func() time.Time { return now }

	return &authFixture{
		usecase:   usecase,
		users:     users,
		sessions:  sessions,
		publisher: publisher,
		now:       now,
	}
}

func (f *authFixture) register(t *testing.T, email, password string) {
	t.Helper()
	_, err := f.usecase.RegisterMainHead(context.Background(), &requests.RegisterMainHead{
		Name:     "Main Head",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected *exceptions.CustomError, got %v", err)
	return customErr.StatusCode
}

func TestRegisterMainHead(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates an active MainHead with a hashed password", func(t *testing.T) {
		f := newAuthFixture(t, nil)

		response, err := f.usecase.RegisterMainHead(ctx, &requests.RegisterMainHead{
			Name:     "Dr. Head",
			Email:    "head@clinic.test",
			Password: "Secret#123",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleMainHead.String(), response.Role)
		assert.True(t, response.IsActive)

		stored, err := f.users.FindByEmail(ctx, "head@clinic.test")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "Secret#123", stored.Password)
		assert.Nil(t, stored.CreatedBy)
		assert.Equal(t, []string{constvars.AuditActionRegister}, f.publisher.Actions())
	})

	t.Run("Duplicate email conflicts", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		f.register(t, "head@clinic.test", "Secret#123")

		_, err := f.usecase.RegisterMainHead(ctx, &requests.RegisterMainHead{
			Name:     "Another",
			Email:    "head@clinic.test",
			Password: "Secret#456",
		})
		require.Error(t, err)
		assert.Equal(t, constvars.StatusConflict, statusCode(t, err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid credentials create a session", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		f.register(t, "head@clinic.test", "Secret#123")

		response, err := f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "Secret#123"})
		require.NoError(t, err)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, f.now.Add(24*time.Hour).UnixMilli(), response.ExpiresAt)
		assert.Equal(t, 1, f.sessions.Len())

		session, err := f.sessions.FindSessionByToken(ctx, response.Token)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "head@clinic.test", session.Email)
		assert.Equal(t, models.RoleMainHead, session.Role)
		assert.Contains(t, f.publisher.Actions(), constvars.AuditActionLogin)
	})

	t.Run("Wrong password creates no session", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		f.register(t, "head@clinic.test", "Secret#123")

		response, err := f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "wrong"})
		require.Error(t, err)
		assert.Nil(t, response)
		assert.Equal(t, constvars.StatusUnauthorized, statusCode(t, err))
		assert.Equal(t, 0, f.sessions.Len())
	})

	t.Run("Unknown email reads like a wrong password", func(t *testing.T) {
		f := newAuthFixture(t, nil)

		_, err := f.usecase.Login(ctx, &requests.Login{Email: "ghost@clinic.test", Password: "whatever"})
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientInvalidEmailOrPassword, customErr.ClientMessage)
	})

	t.Run("Inactive account message depends on config", func(t *testing.T) {
		for _, reveal := range []bool{false, true} {
			f := newAuthFixture(t, nil)
			f.usecase.InternalConfig.App.LoginRevealInactiveAccount = reveal
			f.register(t, "head@clinic.test", "Secret#123")

			stored, err := f.users.FindByEmail(ctx, "head@clinic.test")
			require.NoError(t, err)
			require.NoError(t, f.users.UpdateActiveStatus(ctx, stored.ID, false, f.now))

			_, err = f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "Secret#123"})
			require.Error(t, err)

			var customErr *exceptions.CustomError
			require.ErrorAs(t, err, &customErr)
			assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
			if reveal {
				assert.Equal(t, constvars.ErrClientAccountInactive, customErr.ClientMessage)
			} else {
				assert.Equal(t, constvars.ErrClientInvalidEmailOrPassword, customErr.ClientMessage)
			}
			assert.Equal(t, 0, f.sessions.Len())
		}
	})

	t.Run("Inactive account with wrong password never reveals status", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		f.usecase.InternalConfig.App.LoginRevealInactiveAccount = true
		f.register(t, "head@clinic.test", "Secret#123")

		stored, err := f.users.FindByEmail(ctx, "head@clinic.test")
		require.NoError(t, err)
		require.NoError(t, f.users.UpdateActiveStatus(ctx, stored.ID, false, f.now))

		_, err = f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "wrong"})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientInvalidEmailOrPassword, customErr.ClientMessage)
	})

	t.Run("Throttled email is rejected before the lookup", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false}
		f := newAuthFixture(t, limiter)
		f.register(t, "head@clinic.test", "Secret#123")

		_, err := f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "Secret#123"})
		require.Error(t, err)
		assert.Equal(t, constvars.StatusTooManyRequests, statusCode(t, err))
		assert.Equal(t, 1, limiter.calls)
		assert.Equal(t, 0, f.sessions.Len())
	})

	t.Run("Limiter failure lets the attempt through", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false, err: assert.AnError}
		f := newAuthFixture(t, limiter)
		f.register(t, "head@clinic.test", "Secret#123")

		_, err := f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "Secret#123"})
		require.NoError(t, err)
		assert.Equal(t, 1, f.sessions.Len())
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Token logout removes only that session", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		f.register(t, "head@clinic.test", "Secret#123")

		first, err := f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "Secret#123"})
		require.NoError(t, err)
		_, err = f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "Secret#123"})
		require.NoError(t, err)
		require.Equal(t, 2, f.sessions.Len())

		require.NoError(t, f.usecase.Logout(ctx, "", first.Token))
		assert.Equal(t, 1, f.sessions.Len())

		session, err := f.sessions.FindSessionByToken(ctx, first.Token)
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Contains(t, f.publisher.Actions(), constvars.AuditActionLogout)
	})

	t.Run("Unknown token is a no-op", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		assert.NoError(t, f.usecase.Logout(ctx, "", "missing"))
	})

	t.Run("Native identity logout removes every session", func(t *testing.T) {
		f := newAuthFixture(t, nil)
		f.register(t, "head@clinic.test", "Secret#123")

		for i := 0; i < 3; i++ {
			_, err := f.usecase.Login(ctx, &requests.Login{Email: "head@clinic.test", Password: "Secret#123"})
			require.NoError(t, err)
		}

		require.NoError(t, f.usecase.Logout(ctx, "head@clinic.test", ""))
		assert.Equal(t, 0, f.sessions.Len())
	})

	t.Run("No credentials is unauthenticated", func(t *testing.T) {
		f := newAuthFixture(t, nil)

		err := f.usecase.Logout(ctx, "", "")
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnauthorized, statusCode(t, err))
	})
}

func TestCurrentCaller(t *testing.T) {
	f := newAuthFixture(t, nil)

	assert.Nil(t, f.usecase.CurrentCaller(context.Background(), nil))

	caller := &models.User{ID: "u1", Email: "d1@clinic.test", Role: models.RoleDoctor, IsActive: true}
	response := f.usecase.CurrentCaller(context.Background(), caller)
	require.NotNil(t, response)
	assert.Equal(t, "u1", response.ID)
	assert.Equal(t, "doctor", response.Role)
}
