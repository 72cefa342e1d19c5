package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
)

// IdentityResolver never reports authorization failures; an unresolvable
// caller is a nil user with a nil error.
type IdentityResolver interface {
	ResolveCaller(ctx context.Context, nativeEmail, token string) (*models.User, error)
}
