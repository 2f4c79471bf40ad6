package util

import "github.com/go-playground/validator/v10"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("group_capacity", validateGroupCapacity)
	validate.RegisterValidation("rsvp_status", validateRSVPStatus)
}

// Group size is constrained to keep circles small enough to stay personal.
func validateGroupCapacity(fl validator.FieldLevel) bool {
	size := fl.Field().Int()
	return size >= 4 && size <= 12
}

func validateRSVPStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "GOING", "MAYBE", "NOT_GOING":
		return true
	}
	return false
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
