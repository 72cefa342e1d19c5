package patients

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/shared/auditlog"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository   contracts.PatientRepository
	AuthorizationEngine contracts.AuthorizationEngine
	RolePolicy          contracts.RolePolicy
	AuditRecorder       *auditlog.Recorder
	Log                 *zap.Logger
	Now                 func() time.Time
}

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	authorizationEngine contracts.AuthorizationEngine,
	rolePolicy contracts.RolePolicy,
	auditRecorder *auditlog.Recorder,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		PatientRepository:   patientRepository,
		AuthorizationEngine: authorizationEngine,
		RolePolicy:          rolePolicy,
		AuditRecorder:       auditRecorder,
		Log:                 logger,
		Now:                 time.Now,
	}
}

func (uc *patientUsecase) ListPatientsForCaller(ctx context.Context, caller *models.User) ([]models.Patient, error) {
	if caller == nil {
		return []models.Patient{}, nil
	}

	scope, err := uc.AuthorizationEngine.PatientScopeFor(ctx, caller)
	if err != nil {
		return nil, err
	}
	return uc.PatientRepository.FindByScope(ctx, scope)
}

// ListPatientsByDoctor narrows a MainHead's view to one of its doctors.
// Doctors always get their own scope whatever doctorID they pass, and a
// doctor outside the MainHead's network yields an empty list.
func (uc *patientUsecase) ListPatientsByDoctor(ctx context.Context, caller *models.User, doctorID models.UserID) ([]models.Patient, error) {
	if caller == nil {
		return []models.Patient{}, nil
	}

	switch caller.Role {
	case models.RoleDoctor:
		return uc.PatientRepository.FindByScope(ctx, doctorScope(caller.ID))
	case models.RoleMainHead:
		if doctorID.IsZero() {
			return uc.ListPatientsForCaller(ctx, caller)
		}

		allowed, err := uc.AuthorizationEngine.CanManageDoctor(ctx, caller, doctorID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return []models.Patient{}, nil
		}
		return uc.PatientRepository.FindByScope(ctx, doctorScope(doctorID))
	default:
		return []models.Patient{}, nil
	}
}

func (uc *patientUsecase) GetPatientByID(ctx context.Context, caller *models.User, patientID models.PatientID) (*models.Patient, error) {
	if caller == nil {
		return nil, nil
	}

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil || patient == nil {
		return nil, err
	}

	allowed, err := uc.AuthorizationEngine.CanReadPatient(ctx, caller, patient)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, nil
	}
	return patient, nil
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, caller *models.User, request *requests.CreatePatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if caller == nil {
		return nil, exceptions.ErrNotAuthenticated(nil)
	}

	if !uc.RolePolicy.Allows(caller.Role, constvars.PermissionPatientCreate) {
		return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedCreatePatient)
	}

	doctorID := models.UserID(request.DoctorID)
	switch caller.Role {
	case models.RoleMainHead:
		if !doctorID.IsZero() {
			allowed, err := uc.AuthorizationEngine.CanAssignDoctor(ctx, caller, doctorID)
			if err != nil {
				return nil, err
			}
			if !allowed {
				return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedAssignDoctor)
			}
		}
	case models.RoleDoctor:
		if !doctorID.IsZero() && doctorID != caller.ID {
			return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedAssignDoctor)
		}
	default:
		return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedCreatePatient)
	}

	patient := &models.Patient{
		IpdOpdNo:                 request.IpdOpdNo,
		Date:                     request.Date,
		Demographics:             request.Demographics,
		ClinicalProfile:          request.ClinicalProfile,
		MedicalHistory:           request.MedicalHistory,
		AnthropometricParameters: request.AnthropometricParameters,
		LabResults:               request.LabResults,
		Lifestyle:                request.Lifestyle,
		SleepStudy:               request.SleepStudy,
		Treatment:                request.Treatment,
		Questionnaires:           request.Questionnaires,
		ConsentObtained:          request.ConsentObtained,
		CreatedBy:                caller.ID,
		LastModifiedBy:           caller.ID,
	}
	if !doctorID.IsZero() {
		patient.DoctorID = &doctorID
	}
	patient.SetCreatedAtUpdatedAt(uc.Now())

	patientID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		uc.Log.Error("patientUsecase.CreatePatient error creating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, caller.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	patient.ID = patientID

	uc.Log.Info("patientUsecase.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCallerIDKey, caller.ID.String()),
		zap.String(constvars.LoggingPatientIDKey, patientID.String()),
	)
	uc.AuditRecorder.Record(ctx, caller, constvars.AuditActionCreate, constvars.AuditEntityPatient, patientID.String())
	return patient, nil
}

func (uc *patientUsecase) UpdatePatient(ctx context.Context, caller *models.User, patientID models.PatientID, request *requests.UpdatePatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if caller == nil {
		return nil, exceptions.ErrNotAuthenticated(nil)
	}

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	allowed, err := uc.AuthorizationEngine.CanWritePatient(ctx, caller, patient)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedUpdatePatient)
	}

	patch := &models.PatientPatch{
		IpdOpdNo:                 request.IpdOpdNo,
		Date:                     request.Date,
		Demographics:             request.Demographics,
		ClinicalProfile:          request.ClinicalProfile,
		MedicalHistory:           request.MedicalHistory,
		AnthropometricParameters: request.AnthropometricParameters,
		LabResults:               request.LabResults,
		Lifestyle:                request.Lifestyle,
		SleepStudy:               request.SleepStudy,
		Treatment:                request.Treatment,
		Questionnaires:           request.Questionnaires,
		ConsentObtained:          request.ConsentObtained,
		LastModifiedBy:           caller.ID,
	}

	if request.DoctorID != nil {
		newDoctorID := models.UserID(*request.DoctorID)
		if newDoctorID.IsZero() {
			patch.ClearDoctor = true
		} else if !patient.IsAssignedTo(newDoctorID) {
			err = uc.checkDoctorReassignment(ctx, caller, newDoctorID)
			if err != nil {
				return nil, err
			}
			patch.DoctorID = &newDoctorID
		}
	}

	now := uc.Now()
	err = uc.PatientRepository.UpdatePatient(ctx, patientID, patch, now)
	if err != nil {
		uc.Log.Error("patientUsecase.UpdatePatient error updating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	patch.ApplyTo(patient)
	patient.SetUpdatedAt(now)

	uc.AuditRecorder.Record(ctx, caller, constvars.AuditActionUpdate, constvars.AuditEntityPatient, patientID.String())
	return patient, nil
}

func (uc *patientUsecase) checkDoctorReassignment(ctx context.Context, caller *models.User, newDoctorID models.UserID) error {
	switch caller.Role {
	case models.RoleMainHead:
		allowed, err := uc.AuthorizationEngine.CanAssignDoctor(ctx, caller, newDoctorID)
		if err != nil {
			return err
		}
		if !allowed {
			return exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedAssignDoctor)
		}
		return nil
	case models.RoleDoctor:
		if newDoctorID != caller.ID {
			return exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedAssignDoctor)
		}
		return nil
	default:
		return exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedAssignDoctor)
	}
}

func (uc *patientUsecase) DeletePatient(ctx context.Context, caller *models.User, patientID models.PatientID) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if caller == nil {
		return exceptions.ErrNotAuthenticated(nil)
	}

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return exceptions.ErrPatientNotFound(nil)
	}

	allowed, err := uc.AuthorizationEngine.CanDeletePatient(ctx, caller, patient)
	if err != nil {
		return err
	}
	if !allowed {
		return exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedDeletePatient)
	}

	err = uc.PatientRepository.DeleteByID(ctx, patientID)
	if err != nil {
		uc.Log.Error("patientUsecase.DeletePatient error deleting patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID.String()),
			zap.Error(err),
		)
		return err
	}

	uc.AuditRecorder.Record(ctx, caller, constvars.AuditActionDelete, constvars.AuditEntityPatient, patientID.String())
	return nil
}

func doctorScope(doctorID models.UserID) *models.PatientScope {
	return &models.PatientScope{
		DoctorIDIn:  []models.UserID{doctorID},
		CreatedByIn: []models.UserID{doctorID},
	}
}
