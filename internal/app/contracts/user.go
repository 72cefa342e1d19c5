package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"time"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (models.UserID, error)
	FindByID(ctx context.Context, userID models.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindDoctorsCreatedBy(ctx context.Context, mainHeadID models.UserID) ([]models.User, error)
	UpdateActiveStatus(ctx context.Context, userID models.UserID, isActive bool, updatedAt time.Time) error
	EnsureIndexes(ctx context.Context) error
}
