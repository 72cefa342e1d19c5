package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/dto/responses"
)

type DoctorUsecase interface {
	ListDoctorsWithPatientCounts(ctx context.Context, caller *models.User) ([]responses.DoctorWithPatientCount, error)
	CreateDoctor(ctx context.Context, caller *models.User, request *requests.CreateDoctor) (*responses.User, error)
	ToggleDoctorStatus(ctx context.Context, caller *models.User, doctorID models.UserID, isActive bool) (*responses.User, error)
}
