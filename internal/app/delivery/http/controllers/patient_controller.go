package controllers

import (
	"context"
	"io"
	"net/http"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/exceptions"
	"sleepclinic-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
	ConsentUsecase contracts.ConsentUsecase
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase, consentUsecase contracts.ConsentUsecase) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
		ConsentUsecase: consentUsecase,
	}
}

func (ctrl *PatientController) ListPatients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.PatientUsecase.ListPatientsForCaller(ctx, utils.CallerFromContext(ctx))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientsSuccessMessage, response)
}

// GetPatient answers with null data when the patient is absent or hidden
// from the caller.
func (ctrl *PatientController) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := ctrl.patientIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.PatientUsecase.GetPatientByID(ctx, utils.CallerFromContext(ctx), patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientSuccessMessage, response)
}

func (ctrl *PatientController) CreatePatient(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.CreatePatient)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Sanitize request
	utils.SanitizeCreatePatientRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.PatientUsecase.CreatePatient(ctx, utils.CallerFromContext(ctx), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePatientSuccessMessage, response)
}

func (ctrl *PatientController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := ctrl.patientIDParam(w, r)
	if !ok {
		return
	}

	// Bind body to request
	request := new(requests.UpdatePatient)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Sanitize request
	utils.SanitizeUpdatePatientRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.PatientUsecase.UpdatePatient(ctx, utils.CallerFromContext(ctx), patientID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdatePatientSuccessMessage, response)
}

func (ctrl *PatientController) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := ctrl.patientIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	err := ctrl.PatientUsecase.DeletePatient(ctx, utils.CallerFromContext(ctx), patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeletePatientSuccessMessage, nil)
}

func (ctrl *PatientController) UploadConsentDocument(w http.ResponseWriter, r *http.Request) {
	patientID, ok := ctrl.patientIDParam(w, r)
	if !ok {
		return
	}

	// Parse multipart form
	err := r.ParseMultipartForm(constvars.ConsentMultipartMemoryInBytes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(constvars.FormFieldConsentDocument)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	request := &requests.UploadConsentDocument{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(constvars.HeaderContentType),
		Size:        fileHeader.Size,
		Content:     content,
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.ConsentUsecase.UploadConsentDocument(ctx, utils.CallerFromContext(ctx), patientID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadConsentDocumentSuccessMessage, response)
}

func (ctrl *PatientController) GetConsentDocument(w http.ResponseWriter, r *http.Request) {
	patientID, ok := ctrl.patientIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.ConsentUsecase.GetConsentDocumentURL(ctx, utils.CallerFromContext(ctx), patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConsentDocumentSuccessMessage, response)
}

func (ctrl *PatientController) patientIDParam(w http.ResponseWriter, r *http.Request) (models.PatientID, bool) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	if !utils.IsValidObjectID(patientID) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamPatientID))
		return "", false
	}
	return models.PatientID(patientID), true
}
