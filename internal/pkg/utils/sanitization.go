package utils

import (
	"sleepclinic-service/internal/pkg/dto/requests"
	"strings"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	if input == nil {
		return nil
	}
	sanitizedArray := make([]string, 0, len(input))
	for _, v := range input {
		v = strings.TrimSpace(v)
		if v != "" {
			sanitizedArray = append(sanitizedArray, v)
		}
	}
	return sanitizedArray
}

func sanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func SanitizeRegisterMainHeadRequest(input *requests.RegisterMainHead) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = sanitizeEmail(input.Email)
}

func SanitizeLoginRequest(input *requests.Login) {
	input.Email = sanitizeEmail(input.Email)
}

func SanitizeCreateDoctorRequest(input *requests.CreateDoctor) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = sanitizeEmail(input.Email)
}

func SanitizeCreatePatientRequest(input *requests.CreatePatient) {
	input.IpdOpdNo = strings.TrimSpace(input.IpdOpdNo)
	input.Date = strings.TrimSpace(input.Date)
	input.DoctorID = strings.TrimSpace(input.DoctorID)
	if input.Demographics != nil {
		input.Demographics.Name = strings.TrimSpace(input.Demographics.Name)
		input.Demographics.Gender = strings.ToLower(strings.TrimSpace(input.Demographics.Gender))
		input.Demographics.ContactNo = strings.TrimSpace(input.Demographics.ContactNo)
		input.Demographics.Dob = strings.TrimSpace(input.Demographics.Dob)
	}
	if input.ClinicalProfile != nil {
		input.ClinicalProfile.ProvisionalDiagnosis = strings.TrimSpace(input.ClinicalProfile.ProvisionalDiagnosis)
		input.ClinicalProfile.ChiefComplaints = cleanWhiteSpaceFromEachStringOfAnArray(input.ClinicalProfile.ChiefComplaints)
		input.ClinicalProfile.Comorbidities = cleanWhiteSpaceFromEachStringOfAnArray(input.ClinicalProfile.Comorbidities)
	}
}

func SanitizeUpdatePatientRequest(input *requests.UpdatePatient) {
	if input.IpdOpdNo != nil {
		ipdOpdNo := strings.TrimSpace(*input.IpdOpdNo)
		input.IpdOpdNo = &ipdOpdNo
	}
	if input.Date != nil {
		date := strings.TrimSpace(*input.Date)
		input.Date = &date
	}
	if input.DoctorID != nil {
		doctorID := strings.TrimSpace(*input.DoctorID)
		input.DoctorID = &doctorID
	}
	if input.Demographics != nil {
		input.Demographics.Name = strings.TrimSpace(input.Demographics.Name)
		input.Demographics.Gender = strings.ToLower(strings.TrimSpace(input.Demographics.Gender))
		input.Demographics.ContactNo = strings.TrimSpace(input.Demographics.ContactNo)
		input.Demographics.Dob = strings.TrimSpace(input.Demographics.Dob)
	}
	if input.ClinicalProfile != nil {
		input.ClinicalProfile.ProvisionalDiagnosis = strings.TrimSpace(input.ClinicalProfile.ProvisionalDiagnosis)
		input.ClinicalProfile.ChiefComplaints = cleanWhiteSpaceFromEachStringOfAnArray(input.ClinicalProfile.ChiefComplaints)
		input.ClinicalProfile.Comorbidities = cleanWhiteSpaceFromEachStringOfAnArray(input.ClinicalProfile.Comorbidities)
	}
}
