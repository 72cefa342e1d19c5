package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/dto/responses"
)

type ReportUsecase interface {
	GetPatientStatistics(ctx context.Context, caller *models.User) (*responses.PatientStatistics, error)
	// GetMonthlyPatientTrends uses the current year when year is zero and
	// the caller's whole scope when doctorID is empty.
	GetMonthlyPatientTrends(ctx context.Context, caller *models.User, year int, doctorID models.UserID) (*responses.MonthlyTrends, error)
}
