package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/dto/requests"
	"time"
)

type PatientUsecase interface {
	ListPatientsForCaller(ctx context.Context, caller *models.User) ([]models.Patient, error)
	ListPatientsByDoctor(ctx context.Context, caller *models.User, doctorID models.UserID) ([]models.Patient, error)
	GetPatientByID(ctx context.Context, caller *models.User, patientID models.PatientID) (*models.Patient, error)
	CreatePatient(ctx context.Context, caller *models.User, request *requests.CreatePatient) (*models.Patient, error)
	UpdatePatient(ctx context.Context, caller *models.User, patientID models.PatientID, request *requests.UpdatePatient) (*models.Patient, error)
	DeletePatient(ctx context.Context, caller *models.User, patientID models.PatientID) error
}

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (models.PatientID, error)
	FindByID(ctx context.Context, patientID models.PatientID) (*models.Patient, error)
	FindByScope(ctx context.Context, scope *models.PatientScope) ([]models.Patient, error)
	UpdatePatient(ctx context.Context, patientID models.PatientID, patch *models.PatientPatch, updatedAt time.Time) error
	DeleteByID(ctx context.Context, patientID models.PatientID) error
	CountByDoctorIDs(ctx context.Context, doctorIDs []models.UserID) (map[models.UserID]int64, error)
	EnsureIndexes(ctx context.Context) error
}
