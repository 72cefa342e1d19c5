package contracts

import (
	"context"
	"sleepclinic-service/internal/app/models"
)

type AuthorizationEngine interface {
	CanReadPatient(ctx context.Context, user *models.User, patient *models.Patient) (bool, error)
	CanWritePatient(ctx context.Context, user *models.User, patient *models.Patient) (bool, error)
	CanDeletePatient(ctx context.Context, user *models.User, patient *models.Patient) (bool, error)
	CanAssignDoctor(ctx context.Context, user *models.User, doctorID models.UserID) (bool, error)
	CanManageDoctor(ctx context.Context, user *models.User, doctorID models.UserID) (bool, error)
	NetworkDoctorIDs(ctx context.Context, mainHead *models.User) ([]models.UserID, error)
	PatientScopeFor(ctx context.Context, user *models.User) (*models.PatientScope, error)
}

// RolePolicy answers role level questions that do not depend on a specific
// record.
type RolePolicy interface {
	Allows(role models.Role, permission string) bool
	Permissions(role models.Role) []string
}
