package reports

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/core/authorization"
	"sleepclinic-service/internal/app/services/core/inmemory"
	"sleepclinic-service/internal/app/services/core/patients"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/responses"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportFixture struct {
	usecase  *reportUsecase
	network  *inmemory.Network
	patients *inmemory.PatientRepository
}

func newReportFixture(now time.Time) *reportFixture {
	network := inmemory.NewNetwork()
	patientRepository := inmemory.NewPatientRepository()
	rolePolicy, err := authorization.NewRolePolicy()
	if err != nil {
		panic(err)
	}

	patientUsecase := patients.NewPatientUsecase(
		patientRepository,
		authorization.NewAuthorizationEngine(network.Users),
		rolePolicy,
		nil,
		zap.NewNop(),
	)

	usecase := NewReportUsecase(patientUsecase, rolePolicy, zap.NewNop()).(*reportUsecase)
	usecase.Now = func() time.Time { return now }

	return &reportFixture{
		usecase:  usecase,
		network:  network,
		patients: patientRepository,
	}
}

type seededPatient struct {
	creator   *models.User
	doctor    *models.User
	date      string
	gender    string
	diagnosis string
	complete  bool
}

func (f *reportFixture) seed(t *testing.T, p seededPatient) {
	t.Helper()

	patient := &models.Patient{
		Date:           p.date,
		CreatedBy:      p.creator.ID,
		LastModifiedBy: p.creator.ID,
	}
	if p.doctor != nil {
		doctorID := p.doctor.ID
		patient.DoctorID = &doctorID
	}
	if p.gender != "" || p.complete {
		patient.Demographics = &models.Demographics{Gender: p.gender}
	}
	if p.diagnosis != "" {
		patient.ClinicalProfile = &models.ClinicalProfile{ProvisionalDiagnosis: p.diagnosis}
	}
	if p.complete {
		age := 40
		patient.IpdOpdNo = "OPD"
		patient.Demographics.Age = &age
		patient.Demographics.ContactNo = "9999999999"
	}

	_, err := f.patients.CreatePatient(context.Background(), patient)
	require.NoError(t, err)
}

func TestGetPatientStatistics(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

	f := newReportFixture(now)
	m1, d1, d3 := f.network.M1, f.network.D1, f.network.D3
	f.seed(t, seededPatient{creator: m1, date: "2024-03-15", gender: "female", diagnosis: "OSA", complete: true})
	f.seed(t, seededPatient{creator: d1, date: "2024-03-15", gender: "male", diagnosis: "OSA", complete: true})
	f.seed(t, seededPatient{creator: d1, date: "2024-03-14", gender: "male", diagnosis: "Insomnia"})
	f.seed(t, seededPatient{creator: m1, doctor: d1, date: "2024-02-01", diagnosis: "Narcolepsy"})
	f.seed(t, seededPatient{creator: m1, date: "not-a-date"})
	// Outside M1's network; must never leak into its aggregates.
	f.seed(t, seededPatient{creator: d3, date: "2024-03-15", gender: "other", diagnosis: "RLS", complete: true})

	t.Run("MainHead aggregates its own scope", func(t *testing.T) {
		statistics, err := f.usecase.GetPatientStatistics(ctx, m1)
		require.NoError(t, err)

		assert.Equal(t, int64(5), statistics.TotalPatients)
		assert.Equal(t, int64(2), statistics.TodayPatients)
		assert.Equal(t, int64(3), statistics.IncompleteRecords)
		assert.Equal(t, map[string]int64{
			"female":                    1,
			"male":                      2,
			constvars.GenderUnspecified: 2,
		}, statistics.GenderDistribution)
		assert.Equal(t, []responses.DiagnosisCount{
			{Diagnosis: "OSA", Count: 2},
			{Diagnosis: "Insomnia", Count: 1},
			{Diagnosis: "Narcolepsy", Count: 1},
		}, statistics.TopDiagnoses)
	})

	t.Run("Doctor aggregates only its own patients", func(t *testing.T) {
		statistics, err := f.usecase.GetPatientStatistics(ctx, d1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), statistics.TotalPatients)
		assert.Equal(t, int64(1), statistics.TodayPatients)
	})

	t.Run("Anonymous caller gets nothing", func(t *testing.T) {
		statistics, err := f.usecase.GetPatientStatistics(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, statistics)
	})
}

func TestTopDiagnoses(t *testing.T) {
	diagnoses := map[string]int64{
		"A": 1, "B": 3, "C": 3, "D": 2, "E": 1, "F": 5, "G": 1,
	}

	top := topDiagnoses(diagnoses, constvars.TopDiagnosesLimit)
	assert.Equal(t, []responses.DiagnosisCount{
		{Diagnosis: "F", Count: 5},
		{Diagnosis: "B", Count: 3},
		{Diagnosis: "C", Count: 3},
		{Diagnosis: "D", Count: 2},
		{Diagnosis: "A", Count: 1},
	}, top)

	assert.Empty(t, topDiagnoses(map[string]int64{}, constvars.TopDiagnosesLimit))
}

func TestGetMonthlyPatientTrends(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)

	f := newReportFixture(now)
	m1, d1, d2, d3 := f.network.M1, f.network.D1, f.network.D2, f.network.D3
	f.seed(t, seededPatient{creator: m1, date: "2024-01-10"})
	f.seed(t, seededPatient{creator: d1, date: "2024-01-20"})
	f.seed(t, seededPatient{creator: m1, doctor: d2, date: "2024-03-05"})
	f.seed(t, seededPatient{creator: m1, date: "2023-12-31"})
	f.seed(t, seededPatient{creator: d3, date: "2024-01-11"})

	counts := func(trends *responses.MonthlyTrends) []int64 {
		result := make([]int64, len(trends.MonthlyData))
		for i, month := range trends.MonthlyData {
			result[i] = month.Count
		}
		return result
	}

	t.Run("Defaults to the current year", func(t *testing.T) {
		trends, err := f.usecase.GetMonthlyPatientTrends(ctx, m1, 0, "")
		require.NoError(t, err)
		assert.Equal(t, 2024, trends.Year)
		require.Len(t, trends.MonthlyData, 12)
		assert.Equal(t, "January", trends.MonthlyData[0].MonthName)
		assert.Equal(t, 12, trends.MonthlyData[11].Month)
		assert.Equal(t, []int64{2, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, counts(trends))
	})

	t.Run("Explicit year", func(t *testing.T) {
		trends, err := f.usecase.GetMonthlyPatientTrends(ctx, m1, 2023, "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), trends.MonthlyData[11].Count)
	})

	t.Run("Narrowed to a managed doctor", func(t *testing.T) {
		trends, err := f.usecase.GetMonthlyPatientTrends(ctx, m1, 2024, d2.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, counts(trends))
	})

	t.Run("Foreign doctor yields zero buckets", func(t *testing.T) {
		trends, err := f.usecase.GetMonthlyPatientTrends(ctx, m1, 2024, d3.ID)
		require.NoError(t, err)
		require.Len(t, trends.MonthlyData, 12)
		for _, month := range trends.MonthlyData {
			assert.Zero(t, month.Count)
		}
	})
}

type reportsWithheld struct {
	contracts.RolePolicy
}

func (p reportsWithheld) Allows(role models.Role, permission string) bool {
	return permission != constvars.PermissionReportRead && p.RolePolicy.Allows(role, permission)
}

func TestReportsRequireReadPermission(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	f := newReportFixture(now)
	f.seed(t, seededPatient{creator: f.network.D1, date: "2024-03-15", gender: "male", diagnosis: "OSA", complete: true})
	f.usecase.RolePolicy = reportsWithheld{RolePolicy: f.usecase.RolePolicy}

	statistics, err := f.usecase.GetPatientStatistics(ctx, f.network.D1)
	require.NoError(t, err)
	assert.Nil(t, statistics)

	trends, err := f.usecase.GetMonthlyPatientTrends(ctx, f.network.D1, 2024, "")
	require.NoError(t, err)
	assert.Nil(t, trends)
}
