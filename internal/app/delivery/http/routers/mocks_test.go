package routers

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) ResolveCaller(ctx context.Context, nativeEmail, token string) (*models.User, error) {
	args := m.Called(ctx, nativeEmail, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) RegisterMainHead(ctx context.Context, request *requests.RegisterMainHead) (*responses.User, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*responses.User)
	return response, args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*responses.Login)
	return response, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, nativeEmail, token string) error {
	args := m.Called(ctx, nativeEmail, token)
	return args.Error(0)
}

func (m *MockAuthUsecase) CurrentCaller(ctx context.Context, caller *models.User) *responses.User {
	args := m.Called(ctx, caller)
	response, _ := args.Get(0).(*responses.User)
	return response
}

type MockPatientUsecase struct {
	mock.Mock
}

func (m *MockPatientUsecase) ListPatientsForCaller(ctx context.Context, caller *models.User) ([]models.Patient, error) {
	args := m.Called(ctx, caller)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *MockPatientUsecase) ListPatientsByDoctor(ctx context.Context, caller *models.User, doctorID models.UserID) ([]models.Patient, error) {
	args := m.Called(ctx, caller, doctorID)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *MockPatientUsecase) GetPatientByID(ctx context.Context, caller *models.User, patientID models.PatientID) (*models.Patient, error) {
	args := m.Called(ctx, caller, patientID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientUsecase) CreatePatient(ctx context.Context, caller *models.User, request *requests.CreatePatient) (*models.Patient, error) {
	args := m.Called(ctx, caller, request)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientUsecase) UpdatePatient(ctx context.Context, caller *models.User, patientID models.PatientID, request *requests.UpdatePatient) (*models.Patient, error) {
	args := m.Called(ctx, caller, patientID, request)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientUsecase) DeletePatient(ctx context.Context, caller *models.User, patientID models.PatientID) error {
	args := m.Called(ctx, caller, patientID)
	return args.Error(0)
}

type MockConsentUsecase struct {
	mock.Mock
}

func (m *MockConsentUsecase) UploadConsentDocument(ctx context.Context, caller *models.User, patientID models.PatientID, document *requests.UploadConsentDocument) (*responses.ConsentDocument, error) {
	args := m.Called(ctx, caller, patientID, document)
	response, _ := args.Get(0).(*responses.ConsentDocument)
	return response, args.Error(1)
}

func (m *MockConsentUsecase) GetConsentDocumentURL(ctx context.Context, caller *models.User, patientID models.PatientID) (*responses.ConsentDocument, error) {
	args := m.Called(ctx, caller, patientID)
	response, _ := args.Get(0).(*responses.ConsentDocument)
	return response, args.Error(1)
}

type MockDoctorUsecase struct {
	mock.Mock
}

func (m *MockDoctorUsecase) ListDoctorsWithPatientCounts(ctx context.Context, caller *models.User) ([]responses.DoctorWithPatientCount, error) {
	args := m.Called(ctx, caller)
	doctors, _ := args.Get(0).([]responses.DoctorWithPatientCount)
	return doctors, args.Error(1)
}

func (m *MockDoctorUsecase) CreateDoctor(ctx context.Context, caller *models.User, request *requests.CreateDoctor) (*responses.User, error) {
	args := m.Called(ctx, caller, request)
	response, _ := args.Get(0).(*responses.User)
	return response, args.Error(1)
}

func (m *MockDoctorUsecase) ToggleDoctorStatus(ctx context.Context, caller *models.User, doctorID models.UserID, isActive bool) (*responses.User, error) {
	args := m.Called(ctx, caller, doctorID, isActive)
	response, _ := args.Get(0).(*responses.User)
	return response, args.Error(1)
}

type MockReportUsecase struct {
	mock.Mock
}

func (m *MockReportUsecase) GetPatientStatistics(ctx context.Context, caller *models.User) (*responses.PatientStatistics, error) {
	args := m.Called(ctx, caller)
	response, _ := args.Get(0).(*responses.PatientStatistics)
	return response, args.Error(1)
}

func (m *MockReportUsecase) GetMonthlyPatientTrends(ctx context.Context, caller *models.User, year int, doctorID models.UserID) (*responses.MonthlyTrends, error) {
	args := m.Called(ctx, caller, year, doctorID)
	response, _ := args.Get(0).(*responses.MonthlyTrends)
	return response, args.Error(1)
}
