// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("month", validateMonth)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Month inputs are calendar months in "YYYY-MM" form.
func validateMonth(fl validator.FieldLevel) bool {
	return monthRe.MatchString(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "month":
		return e.Field() + " must be a calendar month in YYYY-MM form"
	default:
		return e.Field() + " is invalid"
	}
}
