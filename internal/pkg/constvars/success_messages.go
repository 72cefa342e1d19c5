package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Auth messages
	RegisterMainHeadSuccessMessage = "main head registered successfully"
	LoginSuccessMessage            = "successfully login"
	LogoutSuccessMessage           = "successfully logout"
	GetCurrentCallerSuccessMessage = "get current user successfully"

	// Patient messages
	CreatePatientSuccessMessage         = "patient created successfully"
	UpdatePatientSuccessMessage         = "patient updated successfully"
	DeletePatientSuccessMessage         = "patient deleted successfully"
	GetPatientSuccessMessage            = "get patient successfully"
	GetPatientsSuccessMessage           = "get patients successfully"
	UploadConsentDocumentSuccessMessage = "consent document uploaded successfully"
	GetConsentDocumentSuccessMessage    = "get consent document successfully"

	// Doctor messages
	CreateDoctorSuccessMessage       = "doctor created successfully"
	ToggleDoctorStatusSuccessMessage = "doctor status updated successfully"
	GetDoctorsSuccessMessage         = "get doctors successfully"

	// Report messages
	GetPatientStatisticsSuccessMessage = "get patient statistics successfully"
	GetMonthlyTrendsSuccessMessage     = "get monthly patient trends successfully"
)
