package models

// PatientScope is the visibility filter of one caller over the patients
// collection. A patient is in scope when it is assigned to a doctor in
// DoctorIDIn, or when it was created by a user in CreatedByIn. With
// UnassignedOnly the creator branch only applies to patients without an
// assigned doctor, so an assignment outside the network always hides the
// record.
type PatientScope struct {
	DoctorIDIn     []UserID
	CreatedByIn    []UserID
	UnassignedOnly bool
}

func (s *PatientScope) IsEmpty() bool {
	return s == nil || (len(s.DoctorIDIn) == 0 && len(s.CreatedByIn) == 0)
}

func (s *PatientScope) Matches(p *Patient) bool {
	if s == nil || p == nil {
		return false
	}
	if p.DoctorID != nil && containsUserID(s.DoctorIDIn, *p.DoctorID) {
		return true
	}
	if s.UnassignedOnly && p.DoctorID != nil {
		return false
	}
	return containsUserID(s.CreatedByIn, p.CreatedBy)
}

func containsUserID(ids []UserID, id UserID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
