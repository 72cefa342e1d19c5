package responses

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type DoctorWithPatientCount struct {
	User
	PatientCount int64 `json:"patient_count"`
}
