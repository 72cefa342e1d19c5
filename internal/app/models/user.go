package models

import (
	"sleepclinic-service/internal/pkg/dto/responses"
	"time"
)

type User struct {
	ID        UserID  `bson:"_id,omitempty"`
	Email     string  `bson:"email"`
	Password  string  `bson:"password"`
	Role      Role    `bson:"role"`
	Name      string  `bson:"name"`
	IsActive  bool    `bson:"isActive"`
	CreatedBy *UserID `bson:"createdBy,omitempty"`
	TimeModel `bson:",inline"`
}

func (u *User) IsMainHead() bool {
	return u != nil && u.Role == RoleMainHead
}

func (u *User) IsDoctor() bool {
	return u != nil && u.Role == RoleDoctor
}

// IsDoctorOf reports whether u is a doctor account created by mainHeadID.
func (u *User) IsDoctorOf(mainHeadID UserID) bool {
	return u.IsDoctor() && u.CreatedBy != nil && *u.CreatedBy == mainHeadID
}

func (u *User) ConvertIntoResponse() responses.User {
	response := responses.User{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role.String(),
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
	if u.CreatedBy != nil {
		response.CreatedBy = u.CreatedBy.String()
	}
	return response
}
