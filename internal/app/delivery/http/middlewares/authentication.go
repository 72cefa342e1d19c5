package middlewares

import (
	"net/http"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/exceptions"
	"sleepclinic-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the caller once per request and stores it on the
// context. An unresolved caller is not an error here; queries answer with
// empty results and mutations reject with 401.
//
// A bearer token that fails verification is rejected outright.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		nativeEmail := ""
		if bearer := utils.BearerToken(r.Header.Get(constvars.HeaderAuthorization)); bearer != "" {
			email, err := utils.ParseNativeIdentity(bearer, m.InternalConfig.NativeIdentity.JWTSecret)
			if err != nil {
				m.Log.Warn("Middlewares.Authenticate invalid native identity",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrNativeIdentityInvalid(err))
				return
			}
			nativeEmail = email
		}

		token := strings.TrimSpace(r.URL.Query().Get(constvars.QueryParamsToken))
		if token == "" {
			token = strings.TrimSpace(r.Header.Get(constvars.HeaderSessionToken))
		}

		caller, err := m.IdentityResolver.ResolveCaller(ctx, nativeEmail, token)
		if err != nil {
			m.Log.Error("Middlewares.Authenticate error resolving caller",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		if caller != nil {
			m.Log.Debug("Middlewares.Authenticate caller resolved",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCallerIDKey, caller.ID.String()),
				zap.String(constvars.LoggingCallerRoleKey, caller.Role.String()),
			)
		}

		next.ServeHTTP(w, r.WithContext(withCaller(ctx, caller, nativeEmail, token)))
	})
}
