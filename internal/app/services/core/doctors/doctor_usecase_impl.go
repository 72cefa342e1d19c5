package doctors

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/shared/auditlog"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/dto/responses"
	"sleepclinic-service/internal/pkg/exceptions"
	"sleepclinic-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	UserRepository      contracts.UserRepository
	PatientRepository   contracts.PatientRepository
	SessionRepository   contracts.SessionRepository
	AuthorizationEngine contracts.AuthorizationEngine
	RolePolicy          contracts.RolePolicy
	AuditRecorder       *auditlog.Recorder
	Log                 *zap.Logger
	Now                 func() time.Time
}

func NewDoctorUsecase(
	userRepository contracts.UserRepository,
	patientRepository contracts.PatientRepository,
	sessionRepository contracts.SessionRepository,
	authorizationEngine contracts.AuthorizationEngine,
	rolePolicy contracts.RolePolicy,
	auditRecorder *auditlog.Recorder,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	return &doctorUsecase{
		UserRepository:      userRepository,
		PatientRepository:   patientRepository,
		SessionRepository:   sessionRepository,
		AuthorizationEngine: authorizationEngine,
		RolePolicy:          rolePolicy,
		AuditRecorder:       auditRecorder,
		Log:                 logger,
		Now:                 time.Now,
	}
}

// ListDoctorsWithPatientCounts counts, per doctor, only the patients assigned
// to it. Patients a doctor created without an assignment are visible to it
// but not part of its count.
func (uc *doctorUsecase) ListDoctorsWithPatientCounts(ctx context.Context, caller *models.User) ([]responses.DoctorWithPatientCount, error) {
	response := []responses.DoctorWithPatientCount{}
	if caller == nil || !uc.RolePolicy.Allows(caller.Role, constvars.PermissionDoctorList) {
		return response, nil
	}

	doctors, err := uc.UserRepository.FindDoctorsCreatedBy(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	doctorIDs := make([]models.UserID, len(doctors))
	for i, doctor := range doctors {
		doctorIDs[i] = doctor.ID
	}

	counts, err := uc.PatientRepository.CountByDoctorIDs(ctx, doctorIDs)
	if err != nil {
		return nil, err
	}

	for _, doctor := range doctors {
		response = append(response, responses.DoctorWithPatientCount{
			User:         doctor.ConvertIntoResponse(),
			PatientCount: counts[doctor.ID],
		})
	}
	return response, nil
}

func (uc *doctorUsecase) CreateDoctor(ctx context.Context, caller *models.User, request *requests.CreateDoctor) (*responses.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if caller == nil {
		return nil, exceptions.ErrNotAuthenticated(nil)
	}
	if !uc.RolePolicy.Allows(caller.Role, constvars.PermissionDoctorCreate) {
		return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedCreateDoctor)
	}

	existingUser, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	mainHeadID := caller.ID
	doctor := &models.User{
		Email:     request.Email,
		Password:  hashedPassword,
		Role:      models.RoleDoctor,
		Name:      request.Name,
		IsActive:  true,
		CreatedBy: &mainHeadID,
	}
	doctor.SetCreatedAtUpdatedAt(uc.Now())

	doctorID, err := uc.UserRepository.CreateUser(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error creating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, caller.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	doctor.ID = doctorID

	uc.Log.Info("doctorUsecase.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCallerIDKey, caller.ID.String()),
		zap.String(constvars.LoggingDoctorIDKey, doctorID.String()),
	)
	uc.AuditRecorder.Record(ctx, caller, constvars.AuditActionCreate, constvars.AuditEntityDoctor, doctorID.String())

	response := doctor.ConvertIntoResponse()
	return &response, nil
}

// ToggleDoctorStatus is idempotent. Deactivating a doctor also ends all of
// its sessions.
func (uc *doctorUsecase) ToggleDoctorStatus(ctx context.Context, caller *models.User, doctorID models.UserID, isActive bool) (*responses.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if caller == nil {
		return nil, exceptions.ErrNotAuthenticated(nil)
	}
	if !uc.RolePolicy.Allows(caller.Role, constvars.PermissionDoctorToggleStatus) {
		return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedManageDoctor)
	}

	doctor, err := uc.UserRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	allowed, err := uc.AuthorizationEngine.CanManageDoctor(ctx, caller, doctorID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedManageDoctor)
	}

	now := uc.Now()
	err = uc.UserRepository.UpdateActiveStatus(ctx, doctorID, isActive, now)
	if err != nil {
		uc.Log.Error("doctorUsecase.ToggleDoctorStatus error updating status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	doctor.IsActive = isActive
	doctor.SetUpdatedAt(now)

	// The status change is already stored. Leftover sessions of an inactive
	// doctor no longer resolve to a caller.
	if !isActive {
		err = uc.SessionRepository.DeleteSessionsForEmail(ctx, doctor.Email)
		if err != nil {
			uc.Log.Warn("doctorUsecase.ToggleDoctorStatus error deleting doctor sessions",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, doctorID.String()),
				zap.Error(err),
			)
		}
	}

	uc.AuditRecorder.Record(ctx, caller, constvars.AuditActionToggleStatus, constvars.AuditEntityDoctor, doctorID.String())

	response := doctor.ConvertIntoResponse()
	return &response, nil
}
