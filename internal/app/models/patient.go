package models

import "strings"

type Patient struct {
	ID       PatientID `json:"id" bson:"_id,omitempty"`
	IpdOpdNo string    `json:"ipd_opd_no" bson:"ipdOpdNo"`
	// Date is the visit date in YYYY-MM-DD.
	Date string `json:"date" bson:"date"`

	Demographics             *Demographics             `json:"demographics,omitempty" bson:"demographics,omitempty"`
	ClinicalProfile          *ClinicalProfile          `json:"clinical_profile,omitempty" bson:"clinicalProfile,omitempty"`
	MedicalHistory           *MedicalHistory           `json:"medical_history,omitempty" bson:"medicalHistory,omitempty"`
	AnthropometricParameters *AnthropometricParameters `json:"anthropometric_parameters,omitempty" bson:"anthropometricParameters,omitempty"`
	LabResults               *LabResults               `json:"lab_results,omitempty" bson:"labResults,omitempty"`
	Lifestyle                *Lifestyle                `json:"lifestyle,omitempty" bson:"lifestyle,omitempty"`
	SleepStudy               *SleepStudy               `json:"sleep_study,omitempty" bson:"sleepStudy,omitempty"`
	Treatment                *Treatment                `json:"treatment,omitempty" bson:"treatment,omitempty"`
	Questionnaires           *Questionnaires           `json:"questionnaires,omitempty" bson:"questionnaires,omitempty"`

	CreatedBy          UserID  `json:"created_by" bson:"createdBy"`
	DoctorID           *UserID `json:"doctor_id,omitempty" bson:"doctorId,omitempty"`
	LastModifiedBy     UserID  `json:"last_modified_by" bson:"lastModifiedBy"`
	ConsentObtained    *bool   `json:"consent_obtained,omitempty" bson:"consentObtained,omitempty"`
	ConsentDocumentKey string  `json:"consent_document_key,omitempty" bson:"consentDocumentKey,omitempty"`
	TimeModel          `bson:",inline"`
}

type Demographics struct {
	Name       string `json:"name" bson:"name" validate:"omitempty,max=200"`
	Age        *int   `json:"age,omitempty" bson:"age,omitempty" validate:"omitempty,min=0,max=130"`
	Dob        string `json:"dob,omitempty" bson:"dob,omitempty" validate:"omitempty,visit_date"`
	Gender     string `json:"gender,omitempty" bson:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	ContactNo  string `json:"contact_no,omitempty" bson:"contactNo,omitempty" validate:"omitempty,max=20"`
	Address    string `json:"address,omitempty" bson:"address,omitempty"`
	Occupation string `json:"occupation,omitempty" bson:"occupation,omitempty"`
}

type ClinicalProfile struct {
	ProvisionalDiagnosis  string   `json:"provisional_diagnosis,omitempty" bson:"provisionalDiagnosis,omitempty"`
	ChiefComplaints       []string `json:"chief_complaints,omitempty" bson:"chiefComplaints,omitempty"`
	SymptomDurationMonths *int     `json:"symptom_duration_months,omitempty" bson:"symptomDurationMonths,omitempty" validate:"omitempty,min=0"`
	ReferredBy            string   `json:"referred_by,omitempty" bson:"referredBy,omitempty"`
	Comorbidities         []string `json:"comorbidities,omitempty" bson:"comorbidities,omitempty"`
}

type MedicalHistory struct {
	Hypertension        bool     `json:"hypertension" bson:"hypertension"`
	Diabetes            bool     `json:"diabetes" bson:"diabetes"`
	Hypothyroidism      bool     `json:"hypothyroidism" bson:"hypothyroidism"`
	CardiacDisease      bool     `json:"cardiac_disease" bson:"cardiacDisease"`
	Stroke              bool     `json:"stroke" bson:"stroke"`
	Asthma              bool     `json:"asthma" bson:"asthma"`
	Copd                bool     `json:"copd" bson:"copd"`
	Gerd                bool     `json:"gerd" bson:"gerd"`
	Depression          bool     `json:"depression" bson:"depression"`
	PreviousSurgeries   []string `json:"previous_surgeries,omitempty" bson:"previousSurgeries,omitempty"`
	CurrentMedications  []string `json:"current_medications,omitempty" bson:"currentMedications,omitempty"`
	FamilyHistoryOfOsa  bool     `json:"family_history_of_osa" bson:"familyHistoryOfOsa"`
	OtherConditionsNote string   `json:"other_conditions_note,omitempty" bson:"otherConditionsNote,omitempty"`
}

type AnthropometricParameters struct {
	HeightCm               float64 `json:"height_cm" bson:"heightCm" validate:"gte=0"`
	WeightKg               float64 `json:"weight_kg" bson:"weightKg" validate:"gte=0"`
	Bmi                    float64 `json:"bmi" bson:"bmi" validate:"gte=0"`
	NeckCircumferenceCm    float64 `json:"neck_circumference_cm" bson:"neckCircumferenceCm" validate:"gte=0"`
	WaistCircumferenceCm   float64 `json:"waist_circumference_cm" bson:"waistCircumferenceCm" validate:"gte=0"`
	HipCircumferenceCm     float64 `json:"hip_circumference_cm" bson:"hipCircumferenceCm" validate:"gte=0"`
	SystolicBloodPressure  int     `json:"systolic_blood_pressure" bson:"systolicBloodPressure" validate:"gte=0"`
	DiastolicBloodPressure int     `json:"diastolic_blood_pressure" bson:"diastolicBloodPressure" validate:"gte=0"`
	MallampatiClass        int     `json:"mallampati_class,omitempty" bson:"mallampatiClass,omitempty" validate:"omitempty,min=1,max=4"`
}

type LabResults struct {
	Hemoglobin       *float64 `json:"hemoglobin,omitempty" bson:"hemoglobin,omitempty"`
	FastingGlucose   *float64 `json:"fasting_glucose,omitempty" bson:"fastingGlucose,omitempty"`
	Hba1c            *float64 `json:"hba1c,omitempty" bson:"hba1c,omitempty"`
	Tsh              *float64 `json:"tsh,omitempty" bson:"tsh,omitempty"`
	TotalCholesterol *float64 `json:"total_cholesterol,omitempty" bson:"totalCholesterol,omitempty"`
	Triglycerides    *float64 `json:"triglycerides,omitempty" bson:"triglycerides,omitempty"`
	Creatinine       *float64 `json:"creatinine,omitempty" bson:"creatinine,omitempty"`
	ArterialPco2     *float64 `json:"arterial_pco2,omitempty" bson:"arterialPco2,omitempty"`
	Notes            string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

type Lifestyle struct {
	Smoking             bool    `json:"smoking" bson:"smoking"`
	AlcoholUse          bool    `json:"alcohol_use" bson:"alcoholUse"`
	CaffeineCupsPerDay  int     `json:"caffeine_cups_per_day" bson:"caffeineCupsPerDay" validate:"gte=0"`
	ExerciseHoursWeekly float64 `json:"exercise_hours_weekly" bson:"exerciseHoursWeekly" validate:"gte=0"`
	ShiftWork           bool    `json:"shift_work" bson:"shiftWork"`
	ScreenTimeBeforeBed bool    `json:"screen_time_before_bed" bson:"screenTimeBeforeBed"`
	AverageSleepHours   float64 `json:"average_sleep_hours" bson:"averageSleepHours" validate:"gte=0,lte=24"`
}

type SleepStudy struct {
	StudyType       string   `json:"study_type" bson:"studyType" validate:"omitempty,oneof=level1 level2 level3 level4"`
	StudyDate       string   `json:"study_date,omitempty" bson:"studyDate,omitempty" validate:"omitempty,visit_date"`
	Ahi             *float64 `json:"ahi,omitempty" bson:"ahi,omitempty" validate:"omitempty,gte=0"`
	Rdi             *float64 `json:"rdi,omitempty" bson:"rdi,omitempty" validate:"omitempty,gte=0"`
	OdiPercent      *float64 `json:"odi_percent,omitempty" bson:"odiPercent,omitempty" validate:"omitempty,gte=0"`
	LowestSpo2      *float64 `json:"lowest_spo2,omitempty" bson:"lowestSpo2,omitempty" validate:"omitempty,gte=0,lte=100"`
	SleepEfficiency *float64 `json:"sleep_efficiency,omitempty" bson:"sleepEfficiency,omitempty" validate:"omitempty,gte=0,lte=100"`
	Severity        string   `json:"severity,omitempty" bson:"severity,omitempty" validate:"omitempty,oneof=normal mild moderate severe"`
}

type Treatment struct {
	Modality         string   `json:"modality,omitempty" bson:"modality,omitempty" validate:"omitempty,oneof=cpap apap bipap oral_appliance surgery positional lifestyle other"`
	PressureCmH2O    *float64 `json:"pressure_cm_h2o,omitempty" bson:"pressureCmH2O,omitempty" validate:"omitempty,gte=0"`
	MaskType         string   `json:"mask_type,omitempty" bson:"maskType,omitempty"`
	AdherencePercent *float64 `json:"adherence_percent,omitempty" bson:"adherencePercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Recommendations  []string `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
	FollowUpDate     string   `json:"follow_up_date,omitempty" bson:"followUpDate,omitempty" validate:"omitempty,visit_date"`
}

type Questionnaires struct {
	Epworth        *int  `json:"epworth,omitempty" bson:"epworth,omitempty" validate:"omitempty,min=0,max=24"`
	StopBang       *int  `json:"stop_bang,omitempty" bson:"stopBang,omitempty" validate:"omitempty,min=0,max=8"`
	BerlinHighRisk *bool `json:"berlin_high_risk,omitempty" bson:"berlinHighRisk,omitempty"`
	Psqi           *int  `json:"psqi,omitempty" bson:"psqi,omitempty" validate:"omitempty,min=0,max=21"`
	Isi            *int  `json:"isi,omitempty" bson:"isi,omitempty" validate:"omitempty,min=0,max=28"`
}

// IsIncomplete reports whether any mandatory intake field is unset. An age of
// zero counts as unset, dob then has to be present.
func (p *Patient) IsIncomplete() bool {
	if p.IpdOpdNo == "" || p.Demographics == nil {
		return true
	}
	d := p.Demographics
	if (d.Age == nil || *d.Age == 0) && d.Dob == "" {
		return true
	}
	if d.Gender == "" || d.ContactNo == "" {
		return true
	}
	return p.ClinicalProfile == nil || p.ClinicalProfile.ProvisionalDiagnosis == ""
}

func (p *Patient) Gender() string {
	if p.Demographics == nil {
		return ""
	}
	return p.Demographics.Gender
}

func (p *Patient) ProvisionalDiagnosis() string {
	if p.ClinicalProfile == nil {
		return ""
	}
	return strings.TrimSpace(p.ClinicalProfile.ProvisionalDiagnosis)
}

// IsAssignedTo reports whether doctorID is the patient's assigned doctor.
func (p *Patient) IsAssignedTo(doctorID UserID) bool {
	return p.DoctorID != nil && *p.DoctorID == doctorID
}

// PatientPatch carries a partial update; nil fields are left untouched.
// ClearDoctor removes the assignment and takes precedence over DoctorID.
type PatientPatch struct {
	IpdOpdNo                 *string
	Date                     *string
	Demographics             *Demographics
	ClinicalProfile          *ClinicalProfile
	MedicalHistory           *MedicalHistory
	AnthropometricParameters *AnthropometricParameters
	LabResults               *LabResults
	Lifestyle                *Lifestyle
	SleepStudy               *SleepStudy
	Treatment                *Treatment
	Questionnaires           *Questionnaires
	DoctorID                 *UserID
	ClearDoctor              bool
	ConsentObtained          *bool
	ConsentDocumentKey       *string
	LastModifiedBy           UserID
}

// ApplyTo copies the set fields of the patch onto p.
func (pp *PatientPatch) ApplyTo(p *Patient) {
	if pp.IpdOpdNo != nil {
		p.IpdOpdNo = *pp.IpdOpdNo
	}
	if pp.Date != nil {
		p.Date = *pp.Date
	}
	if pp.Demographics != nil {
		p.Demographics = pp.Demographics
	}
	if pp.ClinicalProfile != nil {
		p.ClinicalProfile = pp.ClinicalProfile
	}
	if pp.MedicalHistory != nil {
		p.MedicalHistory = pp.MedicalHistory
	}
	if pp.AnthropometricParameters != nil {
		p.AnthropometricParameters = pp.AnthropometricParameters
	}
	if pp.LabResults != nil {
		p.LabResults = pp.LabResults
	}
	if pp.Lifestyle != nil {
		p.Lifestyle = pp.Lifestyle
	}
	if pp.SleepStudy != nil {
		p.SleepStudy = pp.SleepStudy
	}
	if pp.Treatment != nil {
		p.Treatment = pp.Treatment
	}
	if pp.Questionnaires != nil {
		p.Questionnaires = pp.Questionnaires
	}
	if pp.ClearDoctor {
		p.DoctorID = nil
	} else if pp.DoctorID != nil {
		doctorID := *pp.DoctorID
		p.DoctorID = &doctorID
	}
	if pp.ConsentObtained != nil {
		p.ConsentObtained = pp.ConsentObtained
	}
	if pp.ConsentDocumentKey != nil {
		p.ConsentDocumentKey = *pp.ConsentDocumentKey
	}
	p.LastModifiedBy = pp.LastModifiedBy
}
