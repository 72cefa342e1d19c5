package requests

import "sleepclinic-service/internal/app/models"

type CreatePatient struct {
	IpdOpdNo                 string                           `json:"ipd_opd_no" validate:"max=50"`
	Date                     string                           `json:"date" validate:"required,visit_date"`
	Demographics             *models.Demographics             `json:"demographics"`
	ClinicalProfile          *models.ClinicalProfile          `json:"clinical_profile"`
	MedicalHistory           *models.MedicalHistory           `json:"medical_history"`
	AnthropometricParameters *models.AnthropometricParameters `json:"anthropometric_parameters"`
	LabResults               *models.LabResults               `json:"lab_results"`
	Lifestyle                *models.Lifestyle                `json:"lifestyle"`
	SleepStudy               *models.SleepStudy               `json:"sleep_study"`
	Treatment                *models.Treatment                `json:"treatment"`
	Questionnaires           *models.Questionnaires           `json:"questionnaires"`
	DoctorID                 string                           `json:"doctor_id" validate:"omitempty,object_id"`
	ConsentObtained          *bool                            `json:"consent_obtained"`
}

// UpdatePatient is a partial patch. An explicit empty doctor_id clears the
// assigned doctor; an absent one leaves it untouched.
type UpdatePatient struct {
	IpdOpdNo                 *string                          `json:"ipd_opd_no" validate:"omitempty,max=50"`
	Date                     *string                          `json:"date" validate:"omitempty,visit_date"`
	Demographics             *models.Demographics             `json:"demographics"`
	ClinicalProfile          *models.ClinicalProfile          `json:"clinical_profile"`
	MedicalHistory           *models.MedicalHistory           `json:"medical_history"`
	AnthropometricParameters *models.AnthropometricParameters `json:"anthropometric_parameters"`
	LabResults               *models.LabResults               `json:"lab_results"`
	Lifestyle                *models.Lifestyle                `json:"lifestyle"`
	SleepStudy               *models.SleepStudy               `json:"sleep_study"`
	Treatment                *models.Treatment                `json:"treatment"`
	Questionnaires           *models.Questionnaires           `json:"questionnaires"`
	DoctorID                 *string                          `json:"doctor_id" validate:"omitempty,object_id_or_empty"`
	ConsentObtained          *bool                            `json:"consent_obtained"`
}

type UploadConsentDocument struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}
