package constvars

const (
	QueryParamsToken    = "token"
	QueryParamsYear     = "year"
	QueryParamsDoctorID = "doctor_id"
)

const (
	URLParamPatientID = "patient_id"
	URLParamDoctorID  = "doctor_id"
)

const (
	FormFieldConsentDocument = "document"
)
