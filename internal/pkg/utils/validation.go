package utils

import (
	"regexp"
	"sleepclinic-service/internal/pkg/constvars"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	specialCharRegex = regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar)
	uppercaseRegex   = regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase)
	objectIDRegex    = regexp.MustCompile(constvars.RegexObjectIDHex)
	dateRegex        = regexp.MustCompile(constvars.RegexDateYYYYMMDD)
)

func init() {
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("object_id_or_empty", validateObjectIDOrEmpty)
	validate.RegisterValidation("visit_date", validateVisitDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func IsValidObjectID(id string) bool {
	return objectIDRegex.MatchString(id)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	hasMinLen := len(password) >= 8
	return hasMinLen && specialCharRegex.MatchString(password) && uppercaseRegex.MatchString(password)
}

func validateObjectID(fl validator.FieldLevel) bool {
	return IsValidObjectID(fl.Field().String())
}

func validateObjectIDOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || IsValidObjectID(value)
}

func validateVisitDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !dateRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse(constvars.DateLayoutYYYYMMDD, value)
	return err == nil
}
