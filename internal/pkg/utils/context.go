package utils

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
)

// CallerFromContext returns the resolved caller, or nil when the request is
// unauthenticated.
func CallerFromContext(ctx context.Context) *models.User {
	caller, _ := ctx.Value(constvars.CONTEXT_CALLER_KEY).(*models.User)
	return caller
}

func NativeEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(constvars.CONTEXT_NATIVE_EMAIL_KEY).(string)
	return email
}

func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(constvars.CONTEXT_SESSION_TOKEN_KEY).(string)
	return token
}
