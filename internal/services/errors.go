// internal/services/errors.go
package services

import (
	"errors"

	"github.com/plmining/licensing-backend/internal/licensing"
)

var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrLastUser           = errors.New("cannot delete the last remaining user")
	ErrResetTokenInvalid  = errors.New("invalid password reset token")
	ErrResetTokenExpired  = errors.New("password reset token has expired")
	ErrSessionRevoked     = errors.New("session has been revoked")
	ErrConcurrentChange   = errors.New("record was modified concurrently")

	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
	ErrUnknownCategory    = errors.New("unknown document category")

	ErrUserNotFound     = errors.New("user not found")
	ErrLicenseNotFound  = errors.New("license not found")
	ErrSampleNotFound   = errors.New("sample analysis not found")
	ErrDistrictNotFound = errors.New("district not found")
)

// fieldError is returned for single-field business validation failures so
// handlers can report them next to the offending form input.
func fieldError(field, message string) error {
	return &licensing.FieldError{Field: field, Message: message}
}
