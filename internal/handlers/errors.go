// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

// handleServiceError maps service errors onto the response envelope. The
// not-found sentinels pick the resource named in the message.
func handleServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var fieldErr *licensing.FieldError
	var transitionErr *licensing.TransitionError

	switch {
	case errors.As(err, &fieldErr):
		utils.ValidationErrorResponse(c, utils.FieldValidationError(fieldErr.Field, "invalid", fieldErr.Message))
	case errors.As(err, &transitionErr):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyLicenseInvalidTransition, transitionErr.From, transitionErr.To))
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrLicenseNotFound):
		utils.NotFoundResponse(c, "license")
	case errors.Is(err, services.ErrSampleNotFound):
		utils.NotFoundResponse(c, "sample")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "user")
	case errors.Is(err, services.ErrDistrictNotFound):
		utils.NotFoundResponse(c, "district")
	case errors.Is(err, services.ErrConcurrentChange):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyLicenseConcurrentChange))
	case errors.Is(err, services.ErrEmailTaken):
		utils.ValidationErrorResponse(c, utils.FieldValidationError("email", "unique", i18n.T(lang, i18n.KeyUserEmailTaken)))
	case errors.Is(err, services.ErrWrongPassword):
		utils.ValidationErrorResponse(c, utils.FieldValidationError("current_password", "invalid", i18n.T(lang, i18n.KeyUserPasswordWrong)))
	case errors.Is(err, services.ErrLastUser):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyUserLastRemaining))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrResetTokenInvalid):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAuthResetTokenInvalid), nil)
	case errors.Is(err, services.ErrResetTokenExpired):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAuthResetTokenExpired), nil)
	case errors.Is(err, services.ErrFileTooLarge):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge), nil)
	case errors.Is(err, services.ErrFileTypeNotAllowed):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
	case errors.Is(err, services.ErrUnknownCategory):
		utils.ValidationErrorResponse(c, utils.FieldValidationError("category", "oneof", i18n.T(lang, i18n.KeyValidationInvalid, "category")))
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindAndValidate decodes the JSON body into req and runs struct validation,
// writing the error response itself when either step fails.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
		return uuid.Nil, false
	}
	return id, true
}

// actor returns the authenticated user id and role set by AuthRequired.
func actor(c *gin.Context) (uuid.UUID, bool) {
	id, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return id, true
}
