package inmemory

import (
	"context"
	"sleepclinic-service/internal/app/models"
	"time"
)

// Network is two MainHead networks: M1 owns D1 and D2, M2 owns D3.
type Network struct {
	Users *UserRepository
	M1    *models.User
	M2    *models.User
	D1    *models.User
	D2    *models.User
	D3    *models.User
}

func NewNetwork() *Network {
	users := NewUserRepository()
	n := &Network{Users: users}

	n.M1 = users.seed("m1@clinic.test", models.RoleMainHead, nil)
	n.M2 = users.seed("m2@clinic.test", models.RoleMainHead, nil)
	n.D1 = users.seed("d1@clinic.test", models.RoleDoctor, n.M1)
	n.D2 = users.seed("d2@clinic.test", models.RoleDoctor, n.M1)
	n.D3 = users.seed("d3@clinic.test", models.RoleDoctor, n.M2)
	return n
}

func (r *UserRepository) seed(email string, role models.Role, creator *models.User) *models.User {
	user := &models.User{
		Email:    email,
		Password: "unused",
		Role:     role,
		Name:     email,
		IsActive: true,
	}
	if creator != nil {
		creatorID := creator.ID
		user.CreatedBy = &creatorID
	}
	user.SetCreatedAtUpdatedAt(time.Now())

	id, _ := r.CreateUser(context.Background(), user)
	user.ID = id
	return user
}

// SeedPatient stores a patient created by creator and optionally assigned to
// doctor.
func (r *PatientRepository) SeedPatient(creator, doctor *models.User, ipdOpdNo string) *models.Patient {
	patient := &models.Patient{
		IpdOpdNo:       ipdOpdNo,
		Date:           "2024-03-15",
		CreatedBy:      creator.ID,
		LastModifiedBy: creator.ID,
	}
	if doctor != nil {
		doctorID := doctor.ID
		patient.DoctorID = &doctorID
	}
	patient.SetCreatedAtUpdatedAt(time.Now())

	id, _ := r.CreatePatient(context.Background(), patient)
	patient.ID = id
	return patient
}
