package authorization

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
)

// authorizationEngine decides visibility over the MainHead -> Doctors ->
// Patients hierarchy. Read, write and delete share one rule.
type authorizationEngine struct {
	UserRepository contracts.UserRepository
}

func NewAuthorizationEngine(userRepository contracts.UserRepository) contracts.AuthorizationEngine {
	return &authorizationEngine{
		UserRepository: userRepository,
	}
}

func (e *authorizationEngine) CanReadPatient(ctx context.Context, user *models.User, patient *models.Patient) (bool, error) {
	return e.canAccessPatient(ctx, user, patient)
}

func (e *authorizationEngine) CanWritePatient(ctx context.Context, user *models.User, patient *models.Patient) (bool, error) {
	return e.canAccessPatient(ctx, user, patient)
}

func (e *authorizationEngine) CanDeletePatient(ctx context.Context, user *models.User, patient *models.Patient) (bool, error) {
	return e.canAccessPatient(ctx, user, patient)
}

func (e *authorizationEngine) canAccessPatient(ctx context.Context, user *models.User, patient *models.Patient) (bool, error) {
	if user == nil || patient == nil {
		return false, nil
	}

	switch user.Role {
	case models.RoleDoctor:
		return patient.CreatedBy == user.ID || patient.IsAssignedTo(user.ID), nil
	case models.RoleMainHead:
		scope, err := e.PatientScopeFor(ctx, user)
		if err != nil {
			return false, err
		}
		return scope.Matches(patient), nil
	default:
		return false, nil
	}
}

func (e *authorizationEngine) CanAssignDoctor(ctx context.Context, user *models.User, doctorID models.UserID) (bool, error) {
	return e.ownsDoctor(ctx, user, doctorID)
}

func (e *authorizationEngine) CanManageDoctor(ctx context.Context, user *models.User, doctorID models.UserID) (bool, error) {
	return e.ownsDoctor(ctx, user, doctorID)
}

func (e *authorizationEngine) ownsDoctor(ctx context.Context, user *models.User, doctorID models.UserID) (bool, error) {
	if user == nil || doctorID.IsZero() {
		return false, nil
	}

	switch user.Role {
	case models.RoleMainHead:
		doctor, err := e.UserRepository.FindByID(ctx, doctorID)
		if err != nil {
			return false, err
		}
		return doctor != nil && doctor.IsDoctorOf(user.ID), nil
	case models.RoleDoctor:
		return false, nil
	default:
		return false, nil
	}
}

func (e *authorizationEngine) NetworkDoctorIDs(ctx context.Context, mainHead *models.User) ([]models.UserID, error) {
	if !mainHead.IsMainHead() {
		return []models.UserID{}, nil
	}

	doctors, err := e.UserRepository.FindDoctorsCreatedBy(ctx, mainHead.ID)
	if err != nil {
		return nil, err
	}

	doctorIDs := make([]models.UserID, 0, len(doctors))
	for _, doctor := range doctors {
		if doctor.IsDoctorOf(mainHead.ID) {
			doctorIDs = append(doctorIDs, doctor.ID)
		}
	}
	return doctorIDs, nil
}

// PatientScopeFor returns the filter matching exactly the patients user may
// read. A nil user gets an empty scope.
func (e *authorizationEngine) PatientScopeFor(ctx context.Context, user *models.User) (*models.PatientScope, error) {
	if user == nil {
		return &models.PatientScope{}, nil
	}

	switch user.Role {
	case models.RoleDoctor:
		return &models.PatientScope{
			DoctorIDIn:  []models.UserID{user.ID},
			CreatedByIn: []models.UserID{user.ID},
		}, nil
	case models.RoleMainHead:
		doctorIDs, err := e.NetworkDoctorIDs(ctx, user)
		if err != nil {
			return nil, err
		}
		network := make([]models.UserID, 0, len(doctorIDs)+1)
		network = append(network, user.ID)
		network = append(network, doctorIDs...)
		return &models.PatientScope{
			DoctorIDIn:     doctorIDs,
			CreatedByIn:    network,
			UnassignedOnly: true,
		}, nil
	default:
		return &models.PatientScope{}, nil
	}
}
