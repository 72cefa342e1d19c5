package consents

import (
	"bytes"
	"context"
	"sleepclinic-service/internal/app/config"
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

type consentUsecase struct {
	PatientRepository   contracts.PatientRepository
	AuthorizationEngine contracts.AuthorizationEngine
	MinioStorage        contracts.Storage
	AuditRecorder       *auditlog.Recorder
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
	Now                 func() time.Time
}

func NewConsentUsecase(
	patientRepository contracts.PatientRepository,
	authorizationEngine contracts.AuthorizationEngine,
	minioStorage contracts.Storage,
	auditRecorder *auditlog.Recorder,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConsentUsecase {
	return &consentUsecase{
		PatientRepository:   patientRepository,
		AuthorizationEngine: authorizationEngine,
		MinioStorage:        minioStorage,
		AuditRecorder:       auditRecorder,
		InternalConfig:      internalConfig,
		Log:                 logger,
		Now:                 time.Now,
	}
}

// UploadConsentDocument stores the signed consent form and marks consent as
// obtained on the patient record.
func (uc *consentUsecase) UploadConsentDocument(ctx context.Context, caller *models.User, patientID models.PatientID, document *requests.UploadConsentDocument) (*responses.ConsentDocument, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if caller == nil {
		return nil, exceptions.ErrNotAuthenticated(nil)
	}

	patient, err := uc.loadWritablePatient(ctx, caller, patientID)
	if err != nil {
		return nil, err
	}

	contentType, err := utils.ValidateConsentDocument(document.FileName, document.Content, uc.InternalConfig.App.ConsentMaxUploadSizeInMB)
	if err != nil {
		return nil, exceptions.ErrFileValidation(err)
	}

	now := uc.Now()
	objectKey := utils.GenerateConsentObjectKey(patient.ID.String(), document.FileName, now)
	bucketName := uc.InternalConfig.Minio.BucketName

	_, err = uc.MinioStorage.UploadFile(ctx, bytes.NewReader(document.Content), int64(len(document.Content)), bucketName, objectKey, contentType)
	if err != nil {
		uc.Log.Error("consentUsecase.UploadConsentDocument error uploading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID.String()),
			zap.String(constvars.LoggingObjectKey, objectKey),
			zap.Error(err),
		)
		return nil, err
	}

	consentObtained := true
	patch := &models.PatientPatch{
		ConsentObtained:    &consentObtained,
		ConsentDocumentKey: &objectKey,
		LastModifiedBy:     caller.ID,
	}
	err = uc.PatientRepository.UpdatePatient(ctx, patientID, patch, now)
	if err != nil {
		uc.Log.Error("consentUsecase.UploadConsentDocument error updating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID.String()),
			zap.Error(err),
		)
		uc.removeObject(ctx, requestID, objectKey)
		return nil, err
	}

	if patient.ConsentDocumentKey != "" && patient.ConsentDocumentKey != objectKey {
		uc.removeObject(ctx, requestID, patient.ConsentDocumentKey)
	}

	uc.AuditRecorder.Record(ctx, caller, constvars.AuditActionConsent, constvars.AuditEntityPatient, patientID.String())
	return uc.buildConsentDocument(ctx, patientID, objectKey)
}

func (uc *consentUsecase) GetConsentDocumentURL(ctx context.Context, caller *models.User, patientID models.PatientID) (*responses.ConsentDocument, error) {
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

	allowed, err := uc.AuthorizationEngine.CanReadPatient(ctx, caller, patient)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, exceptions.ErrNotAuthorized(nil, constvars.ErrClientNotAuthorizedViewPatient)
	}

	if patient.ConsentDocumentKey == "" {
		return nil, exceptions.ErrConsentDocumentNotFound(nil)
	}
	return uc.buildConsentDocument(ctx, patientID, patient.ConsentDocumentKey)
}

func (uc *consentUsecase) loadWritablePatient(ctx context.Context, caller *models.User, patientID models.PatientID) (*models.Patient, error) {
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
	return patient, nil
}

// removeObject is best effort, failures are only logged.
func (uc *consentUsecase) removeObject(ctx context.Context, requestID, objectKey string) {
	err := uc.MinioStorage.RemoveObject(ctx, uc.InternalConfig.Minio.BucketName, objectKey)
	if err != nil {
		uc.Log.Warn("consentUsecase.removeObject error removing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectKey, objectKey),
			zap.Error(err),
		)
	}
}

func (uc *consentUsecase) buildConsentDocument(ctx context.Context, patientID models.PatientID, objectKey string) (*responses.ConsentDocument, error) {
	expiry := time.Duration(uc.InternalConfig.App.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	url, err := uc.MinioStorage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, objectKey, expiry)
	if err != nil {
		return nil, err
	}

	return &responses.ConsentDocument{
		PatientID: patientID.String(),
		ObjectKey: objectKey,
		URL:       url,
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}
