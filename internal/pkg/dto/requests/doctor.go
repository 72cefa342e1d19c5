package requests

type CreateDoctor struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"password"`
}

type ToggleDoctorStatus struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
