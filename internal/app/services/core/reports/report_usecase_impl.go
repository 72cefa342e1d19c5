package reports

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/responses"
	"sleepclinic-service/internal/pkg/utils"
	"sort"
	"time"

	"go.uber.org/zap"
)

// reportUsecase aggregates over the same patient set the caller can list,
// so statistics never reveal records outside the caller's scope.
type reportUsecase struct {
	PatientUsecase contracts.PatientUsecase
	RolePolicy     contracts.RolePolicy
	Log            *zap.Logger
	Now            func() time.Time
}

func NewReportUsecase(patientUsecase contracts.PatientUsecase, rolePolicy contracts.RolePolicy, logger *zap.Logger) contracts.ReportUsecase {
	return &reportUsecase{
		PatientUsecase: patientUsecase,
		RolePolicy:     rolePolicy,
		Log:            logger,
		Now:            time.Now,
	}
}

func (uc *reportUsecase) canRead(caller *models.User) bool {
	return caller != nil && uc.RolePolicy.Allows(caller.Role, constvars.PermissionReportRead)
}

func (uc *reportUsecase) GetPatientStatistics(ctx context.Context, caller *models.User) (*responses.PatientStatistics, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !uc.canRead(caller) {
		return nil, nil
	}

	patients, err := uc.PatientUsecase.ListPatientsForCaller(ctx, caller)
	if err != nil {
		uc.Log.Error("reportUsecase.GetPatientStatistics error listing patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, caller.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.Now().In(time.Local)
	statistics := &responses.PatientStatistics{
		TotalPatients:      int64(len(patients)),
		GenderDistribution: map[string]int64{},
		TopDiagnoses:       []responses.DiagnosisCount{},
	}
	diagnoses := map[string]int64{}

	for i := range patients {
		patient := &patients[i]

		visitDate, ok := utils.ParseVisitDate(patient.Date)
		if ok && utils.IsSameCalendarDay(visitDate, now) {
			statistics.TodayPatients++
		}
		if patient.IsIncomplete() {
			statistics.IncompleteRecords++
		}

		gender := patient.Gender()
		if gender == "" {
			gender = constvars.GenderUnspecified
		}
		statistics.GenderDistribution[gender]++

		if diagnosis := patient.ProvisionalDiagnosis(); diagnosis != "" {
			diagnoses[diagnosis]++
		}
	}

	statistics.TopDiagnoses = topDiagnoses(diagnoses, constvars.TopDiagnosesLimit)
	return statistics, nil
}

func (uc *reportUsecase) GetMonthlyPatientTrends(ctx context.Context, caller *models.User, year int, doctorID models.UserID) (*responses.MonthlyTrends, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !uc.canRead(caller) {
		return nil, nil
	}
	if year <= 0 {
		year = uc.Now().In(time.Local).Year()
	}

	var (
		patients []models.Patient
		err      error
	)
	if doctorID.IsZero() {
		patients, err = uc.PatientUsecase.ListPatientsForCaller(ctx, caller)
	} else {
		patients, err = uc.PatientUsecase.ListPatientsByDoctor(ctx, caller, doctorID)
	}
	if err != nil {
		uc.Log.Error("reportUsecase.GetMonthlyPatientTrends error listing patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, caller.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	var counts [12]int64
	for i := range patients {
		visitDate, ok := utils.ParseVisitDate(patients[i].Date)
		if !ok || visitDate.Year() != year {
			continue
		}
		counts[visitDate.Month()-1]++
	}

	trends := &responses.MonthlyTrends{
		Year:        year,
		MonthlyData: make([]responses.MonthlyCount, 0, len(counts)),
	}
	for i, count := range counts {
		month := time.Month(i + 1)
		trends.MonthlyData = append(trends.MonthlyData, responses.MonthlyCount{
			Month:     int(month),
			MonthName: month.String(),
			Count:     count,
		})
	}
	return trends, nil
}

// topDiagnoses orders by frequency, breaking ties by diagnosis name.
func topDiagnoses(diagnoses map[string]int64, limit int) []responses.DiagnosisCount {
	result := make([]responses.DiagnosisCount, 0, len(diagnoses))
	for diagnosis, count := range diagnoses {
		result = append(result, responses.DiagnosisCount{Diagnosis: diagnosis, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Diagnosis < result[j].Diagnosis
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
