// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/policy"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("license_type", validateLicenseType)
	validate.RegisterValidation("role", validateRole)
	validate.RegisterValidation("license_status", validateLicenseStatus)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonFieldName reports fields under their JSON names so clients can map
// errors back onto form inputs.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validateLicenseType(fl validator.FieldLevel) bool {
	return licensing.IsLicenseType(fl.Field().String())
}

func validateRole(fl validator.FieldLevel) bool {
	return policy.Role(fl.Field().String()).Valid()
}

func validateLicenseStatus(fl validator.FieldLevel) bool {
	return licensing.LicenseStatus(strings.ToUpper(fl.Field().String())).Valid()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
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

// FieldValidationError builds the single-field error list for checks that
// run after struct validation, such as the region/district pairing.
func FieldValidationError(field, tag, message string) []ValidationError {
	return []ValidationError{{Field: field, Tag: tag, Message: message}}
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
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "license_type":
		return "License type must be New License or Renewal"
	case "role":
		return "Role must be one of SUPER_ADMIN, MINISTER, GENERAL_DIRECTOR, DIRECTOR, OFFICER"
	case "license_status":
		return "Status must be PENDING, APPROVED or REVOKED"
	case "eqfield":
		return e.Field() + " must match " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
