package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterMainHead(ctx context.Context, request *requests.RegisterMainHead) (*responses.User, error)
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, nativeEmail, token string) error
	CurrentCaller(ctx context.Context, caller *models.User) *responses.User
}
