package models

// Role is closed: every permission check switches over all of its values.
type Role string

const (
	RoleMainHead Role = "mainHead"
	RoleDoctor   Role = "doctor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleMainHead, RoleDoctor:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
