package controllers

import (
	"context"
	"net/http"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/exceptions"
	"sleepclinic-service/internal/pkg/utils"
	"strconv"

	"go.uber.org/zap"
)

type ReportController struct {
	Log           *zap.Logger
	ReportUsecase contracts.ReportUsecase
}

func NewReportController(logger *zap.Logger, reportUsecase contracts.ReportUsecase) *ReportController {
	return &ReportController{
		Log:           logger,
		ReportUsecase: reportUsecase,
	}
}

func (ctrl *ReportController) GetPatientStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.ReportUsecase.GetPatientStatistics(ctx, utils.CallerFromContext(ctx))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientStatisticsSuccessMessage, response)
}

func (ctrl *ReportController) GetMonthlyPatientTrends(w http.ResponseWriter, r *http.Request) {
	year := 0
	if rawYear := r.URL.Query().Get(constvars.QueryParamsYear); rawYear != "" {
		parsed, err := strconv.Atoi(rawYear)
		if err != nil || parsed < 1 || parsed > 9999 {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.QueryParamsYear))
			return
		}
		year = parsed
	}

	doctorID := r.URL.Query().Get(constvars.QueryParamsDoctorID)
	if doctorID != "" && !utils.IsValidObjectID(doctorID) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(nil, constvars.QueryParamsDoctorID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := ctrl.ReportUsecase.GetMonthlyPatientTrends(ctx, utils.CallerFromContext(ctx), year, models.UserID(doctorID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMonthlyTrendsSuccessMessage, response)
}
